package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agrofield/agrofield-backend/internal/services"
)

type CropHandler struct {
	cropService     services.CropService
	rotationService services.RotationService
}

func NewCropHandler(cropService services.CropService, rotationService services.RotationService) *CropHandler {
	return &CropHandler{cropService: cropService, rotationService: rotationService}
}

func (ch *CropHandler) List(c *gin.Context) {
	crops, err := ch.cropService.ListCrops(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, crops)
}

func (ch *CropHandler) Get(c *gin.Context) {
	cropID, err := uuid.Parse(c.Param("cropID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_crop_id", err)
		return
	}
	crop, err := ch.cropService.GetCrop(c.Request.Context(), cropID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, crop)
}

func (ch *CropHandler) GetCompatibility(c *gin.Context) {
	cropID, err := uuid.Parse(c.Param("cropID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_crop_id", err)
		return
	}
	compatibility, err := ch.rotationService.GetCropCompatibility(c.Request.Context(), cropID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, compatibility)
}
