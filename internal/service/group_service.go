package service

import (
	"context"
	"log/slog"

	"github.com/mmynk/divvy/internal/apperr"
	"github.com/mmynk/divvy/internal/models"
	"github.com/mmynk/divvy/internal/storage"
)

// GroupService manages groups and their membership.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a group owned by the given user.
func (s *GroupService) CreateGroup(ctx context.Context, ownerID int64, name string, memberIDs []int64) (*models.Group, error) {
	if name == "" {
		return nil, apperr.Validationf("group name required")
	}
	if _, err := s.store.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}

	group := &models.Group{Name: name, OwnerID: ownerID, MemberIDs: memberIDs}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "owner_id", ownerID, "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "owner_id", ownerID, "members", len(group.MemberIDs))
	return group, nil
}

// GetGroup retrieves a group by ID, including member IDs.
func (s *GroupService) GetGroup(ctx context.Context, id int64) (*models.Group, error) {
	return s.store.GetGroup(ctx, id)
}

// AddMembers adds users to a group, skipping existing members.
func (s *GroupService) AddMembers(ctx context.Context, groupID int64, userIDs []int64) (*models.Group, error) {
	for _, userID := range userIDs {
		if _, err := s.store.GetUserByID(ctx, userID); err != nil {
			return nil, err
		}
	}

	if err := s.store.AddGroupMembers(ctx, groupID, userIDs); err != nil {
		slog.Error("AddMembers failed", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("Group members added", "group_id", groupID, "added", len(userIDs))
	return s.store.GetGroup(ctx, groupID)
}

// ListCategories returns all transaction categories.
func (s *GroupService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.store.ListCategories(ctx)
}
