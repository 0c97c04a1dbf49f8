package main

import (
	"fmt"
	"os"
	"time"

	"github.com/agrofield/agrofield-backend/internal/db"
	"github.com/agrofield/agrofield-backend/internal/handlers"
	"github.com/agrofield/agrofield-backend/internal/logger"
	"github.com/agrofield/agrofield-backend/internal/middleware"
	"github.com/agrofield/agrofield-backend/internal/repos"
	"github.com/agrofield/agrofield-backend/internal/server"
	"github.com/agrofield/agrofield-backend/internal/services"
	"github.com/agrofield/agrofield-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Seed
	log.Info("Seeding crop reference data...")
	if err := db.SeedReferenceData(thePG); err != nil {
		log.Error("Seeding reference data failed", "error", err)
		os.Exit(1)
	}

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	fieldRepo := repos.NewFieldRepo(thePG, log)
	fieldGroupRepo := repos.NewFieldGroupRepo(thePG, log)
	seasonRepo := repos.NewSeasonRepo(thePG, log)
	cropRepo := repos.NewCropRepo(thePG, log)
	ruleRepo := repos.NewCropRotationRuleRepo(thePG, log)
	plantingRepo := repos.NewPlantingRepo(thePG, log)
	soilRepo := repos.NewFieldSoilProfileRepo(thePG, log)
	recRepo := repos.NewRotationRecommendationRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	authService := services.NewAuthService(thePG, log, userRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
	userService := services.NewUserService(thePG, log, userRepo)
	fieldService := services.NewFieldService(thePG, log, fieldRepo, soilRepo)
	fieldGroupService := services.NewFieldGroupService(thePG, log, fieldGroupRepo)
	seasonService := services.NewSeasonService(thePG, log, seasonRepo)
	cropService := services.NewCropService(thePG, log, cropRepo, fieldRepo, soilRepo)
	plantingService := services.NewPlantingService(thePG, log, fieldRepo, cropRepo, seasonRepo, plantingRepo)
	rotationService := services.NewRotationService(thePG, log, fieldRepo, cropRepo, ruleRepo, plantingRepo, soilRepo, seasonRepo, recRepo)

	// Handlers
	log.Info("Setting up Handlers from main...")
	healthcheckHandler := handlers.NewHealthcheckHandler()
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	fieldHandler := handlers.NewFieldHandler(fieldService)
	fieldGroupHandler := handlers.NewFieldGroupHandler(fieldGroupService)
	seasonHandler := handlers.NewSeasonHandler(seasonService)
	cropHandler := handlers.NewCropHandler(cropService, rotationService)
	plantingHandler := handlers.NewPlantingHandler(plantingService)
	recommendationHandler := handlers.NewRecommendationHandler(rotationService, cropService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:           authHandler,
		AuthMiddleware:        authMiddleware,
		HealthcheckHandler:    healthcheckHandler,
		UserHandler:           userHandler,
		FieldHandler:          fieldHandler,
		FieldGroupHandler:     fieldGroupHandler,
		SeasonHandler:         seasonHandler,
		CropHandler:           cropHandler,
		PlantingHandler:       plantingHandler,
		RecommendationHandler: recommendationHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
