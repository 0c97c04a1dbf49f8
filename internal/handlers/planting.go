package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agrofield/agrofield-backend/internal/services"
)

type PlantingHandler struct {
	plantingService services.PlantingService
}

func NewPlantingHandler(plantingService services.PlantingService) *PlantingHandler {
	return &PlantingHandler{plantingService: plantingService}
}

func (ph *PlantingHandler) Create(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_field_id", err)
		return
	}
	var req services.PlantingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	planting, err := ph.plantingService.CreatePlanting(c.Request.Context(), fieldID, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, planting)
}

func (ph *PlantingHandler) List(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_field_id", err)
		return
	}
	plantings, err := ph.plantingService.ListPlantings(c.Request.Context(), fieldID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, plantings)
}

func (ph *PlantingHandler) Update(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_field_id", err)
		return
	}
	plantingID, err := uuid.Parse(c.Param("plantingID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_planting_id", err)
		return
	}
	var req services.PlantingUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	planting, err := ph.plantingService.UpdatePlanting(c.Request.Context(), fieldID, plantingID, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, planting)
}

func (ph *PlantingHandler) Delete(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_field_id", err)
		return
	}
	plantingID, err := uuid.Parse(c.Param("plantingID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_planting_id", err)
		return
	}
	if err := ph.plantingService.DeletePlanting(c.Request.Context(), fieldID, plantingID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
