package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agrofield/agrofield-backend/internal/services"
)

type SeasonHandler struct {
	seasonService services.SeasonService
}

func NewSeasonHandler(seasonService services.SeasonService) *SeasonHandler {
	return &SeasonHandler{seasonService: seasonService}
}

func (sh *SeasonHandler) Create(c *gin.Context) {
	var req services.SeasonInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	season, err := sh.seasonService.CreateSeason(c.Request.Context(), req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, season)
}

func (sh *SeasonHandler) List(c *gin.Context) {
	seasons, err := sh.seasonService.ListSeasons(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, seasons)
}

func (sh *SeasonHandler) Get(c *gin.Context) {
	seasonID, err := uuid.Parse(c.Param("seasonID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_season_id", err)
		return
	}
	season, err := sh.seasonService.GetSeason(c.Request.Context(), seasonID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, season)
}

func (sh *SeasonHandler) Update(c *gin.Context) {
	seasonID, err := uuid.Parse(c.Param("seasonID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_season_id", err)
		return
	}
	var req services.SeasonUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	season, err := sh.seasonService.UpdateSeason(c.Request.Context(), seasonID, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, season)
}

func (sh *SeasonHandler) Delete(c *gin.Context) {
	seasonID, err := uuid.Parse(c.Param("seasonID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_season_id", err)
		return
	}
	if err := sh.seasonService.DeleteSeason(c.Request.Context(), seasonID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
