package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agrofield/agrofield-backend/internal/services"
)

type FieldGroupHandler struct {
	groupService services.FieldGroupService
}

func NewFieldGroupHandler(groupService services.FieldGroupService) *FieldGroupHandler {
	return &FieldGroupHandler{groupService: groupService}
}

func (gh *FieldGroupHandler) Create(c *gin.Context) {
	var req services.FieldGroupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	group, err := gh.groupService.CreateGroup(c.Request.Context(), req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, group)
}

func (gh *FieldGroupHandler) List(c *gin.Context) {
	groups, err := gh.groupService.ListGroups(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, groups)
}

func (gh *FieldGroupHandler) Get(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("groupID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_group_id", err)
		return
	}
	group, err := gh.groupService.GetGroup(c.Request.Context(), groupID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, group)
}

func (gh *FieldGroupHandler) Update(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("groupID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_group_id", err)
		return
	}
	var req services.FieldGroupUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	group, err := gh.groupService.UpdateGroup(c.Request.Context(), groupID, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, group)
}

func (gh *FieldGroupHandler) Delete(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("groupID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_group_id", err)
		return
	}
	if err := gh.groupService.DeleteGroup(c.Request.Context(), groupID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
