package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agrofield/agrofield-backend/internal/services"
)

type FieldHandler struct {
	fieldService services.FieldService
}

func NewFieldHandler(fieldService services.FieldService) *FieldHandler {
	return &FieldHandler{fieldService: fieldService}
}

func (fh *FieldHandler) Create(c *gin.Context) {
	var req services.FieldInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	field, err := fh.fieldService.CreateField(c.Request.Context(), req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, field)
}

func (fh *FieldHandler) List(c *gin.Context) {
	fields, err := fh.fieldService.ListFields(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, fields)
}

func (fh *FieldHandler) Get(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_field_id", err)
		return
	}
	field, err := fh.fieldService.GetField(c.Request.Context(), fieldID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, field)
}

func (fh *FieldHandler) Update(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_field_id", err)
		return
	}
	var req services.FieldUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	field, err := fh.fieldService.UpdateField(c.Request.Context(), fieldID, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, field)
}

func (fh *FieldHandler) Delete(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_field_id", err)
		return
	}
	if err := fh.fieldService.DeleteField(c.Request.Context(), fieldID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (fh *FieldHandler) CreateSoilProfile(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_field_id", err)
		return
	}
	var req services.SoilProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	profile, err := fh.fieldService.CreateSoilProfile(c.Request.Context(), fieldID, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, profile)
}

func (fh *FieldHandler) ListSoilProfiles(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_field_id", err)
		return
	}
	profiles, err := fh.fieldService.ListSoilProfiles(c.Request.Context(), fieldID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, profiles)
}
