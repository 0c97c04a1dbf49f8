package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agrofield/agrofield-backend/internal/services"
)

type RecommendationHandler struct {
	rotationService services.RotationService
	cropService     services.CropService
}

func NewRecommendationHandler(rotationService services.RotationService, cropService services.CropService) *RecommendationHandler {
	return &RecommendationHandler{rotationService: rotationService, cropService: cropService}
}

// Generate recomputes the ranked recommendation set for a field. The
// target year defaults to next calendar year when omitted.
func (rh *RecommendationHandler) Generate(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_field_id", err)
		return
	}
	var req struct {
		TargetYear int `json:"target_year"`
		Limit      int `json:"limit"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_body", err)
			return
		}
	}
	if req.TargetYear == 0 {
		req.TargetYear = time.Now().Year() + 1
	}
	recommendations, err := rh.rotationService.GenerateRecommendations(c.Request.Context(), fieldID, req.TargetYear, req.Limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"target_year": req.TargetYear, "recommendations": recommendations})
}

func (rh *RecommendationHandler) List(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_field_id", err)
		return
	}
	targetYear := time.Now().Year() + 1
	if raw := c.Query("target_year"); raw != "" {
		targetYear, err = strconv.Atoi(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_target_year", err)
			return
		}
	}
	recommendations, err := rh.rotationService.ListRecommendations(c.Request.Context(), fieldID, targetYear)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"target_year": targetYear, "recommendations": recommendations})
}

func (rh *RecommendationHandler) Apply(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_field_id", err)
		return
	}
	recommendationID, err := uuid.Parse(c.Param("recommendationID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_recommendation_id", err)
		return
	}
	planting, err := rh.rotationService.ApplyRecommendation(c.Request.Context(), fieldID, recommendationID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, planting)
}

func (rh *RecommendationHandler) GetHistory(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_field_id", err)
		return
	}
	yearsBack := 0
	if raw := c.Query("years"); raw != "" {
		yearsBack, err = strconv.Atoi(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_years", err)
			return
		}
	}
	history, err := rh.rotationService.GetFieldRotationHistory(c.Request.Context(), fieldID, yearsBack)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"field_id": fieldID, "history": history})
}

func (rh *RecommendationHandler) GetSoilAnalysis(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_field_id", err)
		return
	}
	analysis, err := rh.rotationService.GetSoilAnalysis(c.Request.Context(), fieldID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, analysis)
}

func (rh *RecommendationHandler) ListSuitableCrops(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_field_id", err)
		return
	}
	crops, err := rh.cropService.ListSuitableForField(c.Request.Context(), fieldID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, crops)
}

func (rh *RecommendationHandler) ListApplied(c *gin.Context) {
	applied, err := rh.rotationService.ListAppliedRecommendations(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, applied)
}
