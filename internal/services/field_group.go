package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrofield/agrofield-backend/internal/apierr"
	"github.com/agrofield/agrofield-backend/internal/logger"
	"github.com/agrofield/agrofield-backend/internal/repos"
	"github.com/agrofield/agrofield-backend/internal/requestdata"
	"github.com/agrofield/agrofield-backend/internal/types"
)

type FieldGroupInput struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	RotationGroup string `json:"rotation_group,omitempty"`
}

type FieldGroupUpdate struct {
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	RotationGroup *string `json:"rotation_group,omitempty"`
}

type FieldGroupService interface {
	CreateGroup(ctx context.Context, input FieldGroupInput) (*types.FieldGroup, error)
	ListGroups(ctx context.Context) ([]*types.FieldGroup, error)
	GetGroup(ctx context.Context, groupID uuid.UUID) (*types.FieldGroup, error)
	UpdateGroup(ctx context.Context, groupID uuid.UUID, update FieldGroupUpdate) (*types.FieldGroup, error)
	DeleteGroup(ctx context.Context, groupID uuid.UUID) error
}

type fieldGroupService struct {
	db        *gorm.DB
	log       *logger.Logger
	groupRepo repos.FieldGroupRepo
}

func NewFieldGroupService(db *gorm.DB, baseLog *logger.Logger, groupRepo repos.FieldGroupRepo) FieldGroupService {
	serviceLog := baseLog.With("service", "FieldGroupService")
	return &fieldGroupService{db: db, log: serviceLog, groupRepo: groupRepo}
}

func (gs *fieldGroupService) CreateGroup(ctx context.Context, input FieldGroupInput) (*types.FieldGroup, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.Validation("missing_request_data", errors.New("request data not set in context"))
	}
	if input.Name == "" {
		return nil, apierr.Validation("name_required", errors.New("a group name is required"))
	}
	now := time.Now()
	group := &types.FieldGroup{
		ID:            uuid.New(),
		OwnerID:       rd.UserID,
		Name:          input.Name,
		Description:   input.Description,
		RotationGroup: input.RotationGroup,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := gs.groupRepo.Create(ctx, nil, group); err != nil {
		return nil, fmt.Errorf("create field group: %w", err)
	}
	return group, nil
}

func (gs *fieldGroupService) ListGroups(ctx context.Context) ([]*types.FieldGroup, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.Validation("missing_request_data", errors.New("request data not set in context"))
	}
	groups, err := gs.groupRepo.ListByOwnerID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("list field groups: %w", err)
	}
	return groups, nil
}

func (gs *fieldGroupService) GetGroup(ctx context.Context, groupID uuid.UUID) (*types.FieldGroup, error) {
	return gs.loadOwnedGroup(ctx, groupID)
}

func (gs *fieldGroupService) UpdateGroup(ctx context.Context, groupID uuid.UUID, update FieldGroupUpdate) (*types.FieldGroup, error) {
	group, err := gs.loadOwnedGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if update.Name != nil && *update.Name != "" {
		group.Name = *update.Name
	}
	if update.Description != nil {
		group.Description = *update.Description
	}
	if update.RotationGroup != nil {
		group.RotationGroup = *update.RotationGroup
	}
	group.UpdatedAt = time.Now()
	if err := gs.groupRepo.Update(ctx, nil, group); err != nil {
		return nil, fmt.Errorf("update field group: %w", err)
	}
	return group, nil
}

func (gs *fieldGroupService) DeleteGroup(ctx context.Context, groupID uuid.UUID) error {
	group, err := gs.loadOwnedGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if err := gs.groupRepo.Delete(ctx, nil, group.ID); err != nil {
		return fmt.Errorf("delete field group: %w", err)
	}
	return nil
}

func (gs *fieldGroupService) loadOwnedGroup(ctx context.Context, groupID uuid.UUID) (*types.FieldGroup, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.Validation("missing_request_data", errors.New("request data not set in context"))
	}
	group, err := gs.groupRepo.GetByID(ctx, nil, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("group_not_found", fmt.Errorf("field group %s does not exist", groupID))
		}
		return nil, fmt.Errorf("load field group: %w", err)
	}
	if group.OwnerID != rd.UserID {
		return nil, apierr.NotFound("group_not_found", fmt.Errorf("field group %s does not belong to the current user", groupID))
	}
	return group, nil
}
