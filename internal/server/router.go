package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/agrofield/agrofield-backend/internal/handlers"
	"github.com/agrofield/agrofield-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler           *handlers.AuthHandler
	AuthMiddleware        *middleware.AuthMiddleware
	HealthcheckHandler    *handlers.HealthcheckHandler
	UserHandler           *handlers.UserHandler
	FieldHandler          *handlers.FieldHandler
	FieldGroupHandler     *handlers.FieldGroupHandler
	SeasonHandler         *handlers.SeasonHandler
	CropHandler           *handlers.CropHandler
	PlantingHandler       *handlers.PlantingHandler
	RecommendationHandler *handlers.RecommendationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// User
	protected.GET("/user", cfg.UserHandler.GetMe)
	// Fields
	protected.POST("/fields", cfg.FieldHandler.Create)
	protected.GET("/fields", cfg.FieldHandler.List)
	protected.GET("/fields/:fieldID", cfg.FieldHandler.Get)
	protected.PATCH("/fields/:fieldID", cfg.FieldHandler.Update)
	protected.DELETE("/fields/:fieldID", cfg.FieldHandler.Delete)
	// Soil profiles
	protected.POST("/fields/:fieldID/soil", cfg.FieldHandler.CreateSoilProfile)
	protected.GET("/fields/:fieldID/soil", cfg.FieldHandler.ListSoilProfiles)
	protected.GET("/fields/:fieldID/soil/analysis", cfg.RecommendationHandler.GetSoilAnalysis)
	// Field groups
	protected.POST("/field-groups", cfg.FieldGroupHandler.Create)
	protected.GET("/field-groups", cfg.FieldGroupHandler.List)
	protected.GET("/field-groups/:groupID", cfg.FieldGroupHandler.Get)
	protected.PATCH("/field-groups/:groupID", cfg.FieldGroupHandler.Update)
	protected.DELETE("/field-groups/:groupID", cfg.FieldGroupHandler.Delete)
	// Seasons
	protected.POST("/seasons", cfg.SeasonHandler.Create)
	protected.GET("/seasons", cfg.SeasonHandler.List)
	protected.GET("/seasons/:seasonID", cfg.SeasonHandler.Get)
	protected.PATCH("/seasons/:seasonID", cfg.SeasonHandler.Update)
	protected.DELETE("/seasons/:seasonID", cfg.SeasonHandler.Delete)
	// Crop catalog
	protected.GET("/crops", cfg.CropHandler.List)
	protected.GET("/crops/:cropID", cfg.CropHandler.Get)
	protected.GET("/crops/:cropID/compatibility", cfg.CropHandler.GetCompatibility)
	// Plantings
	protected.POST("/fields/:fieldID/plantings", cfg.PlantingHandler.Create)
	protected.GET("/fields/:fieldID/plantings", cfg.PlantingHandler.List)
	protected.PATCH("/fields/:fieldID/plantings/:plantingID", cfg.PlantingHandler.Update)
	protected.DELETE("/fields/:fieldID/plantings/:plantingID", cfg.PlantingHandler.Delete)
	// Rotation recommendations
	protected.POST("/fields/:fieldID/recommendations", cfg.RecommendationHandler.Generate)
	protected.GET("/fields/:fieldID/recommendations", cfg.RecommendationHandler.List)
	protected.POST("/fields/:fieldID/recommendations/:recommendationID/apply", cfg.RecommendationHandler.Apply)
	protected.GET("/fields/:fieldID/rotation-history", cfg.RecommendationHandler.GetHistory)
	protected.GET("/fields/:fieldID/suitable-crops", cfg.RecommendationHandler.ListSuitableCrops)
	protected.GET("/recommendations/applied", cfg.RecommendationHandler.ListApplied)

	return router
}
