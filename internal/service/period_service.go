package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmynk/divvy/internal/events"
	"github.com/mmynk/divvy/internal/models"
	"github.com/mmynk/divvy/internal/storage"
)

// PeriodService manages accounting periods and their linear lifecycle:
// open -> closed -> settled. The settled transition belongs to
// SettlementService; everything else lives here.
type PeriodService struct {
	store     storage.Store
	publisher *events.Publisher
}

// NewPeriodService creates a new PeriodService.
// publisher may be nil when messaging is not configured.
func NewPeriodService(store storage.Store, publisher *events.Publisher) *PeriodService {
	return &PeriodService{store: store, publisher: publisher}
}

// CreatePeriod opens a new period in a group.
func (s *PeriodService) CreatePeriod(ctx context.Context, groupID int64, name string, startDate int64) (*models.Period, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}

	period := &models.Period{
		GroupID:   groupID,
		Name:      name,
		Status:    models.PeriodOpen,
		StartDate: startDate,
	}
	if err := s.store.CreatePeriod(ctx, period); err != nil {
		slog.Error("CreatePeriod failed", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("Period created", "period_id", period.ID, "group_id", groupID, "name", name)
	return period, nil
}

// GetPeriod retrieves a period by ID.
func (s *PeriodService) GetPeriod(ctx context.Context, id int64) (*models.Period, error) {
	return s.store.GetPeriod(ctx, id)
}

// ListPeriods retrieves the periods of a group, newest first.
func (s *PeriodService) ListPeriods(ctx context.Context, groupID int64) ([]*models.Period, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListPeriodsByGroup(ctx, groupID)
}

// ClosePeriod freezes an open period: no further transactions are
// accepted and settlement can be planned.
func (s *PeriodService) ClosePeriod(ctx context.Context, id int64) (*models.Period, error) {
	period, err := s.store.ClosePeriod(ctx, id, time.Now().Unix())
	if err != nil {
		slog.Error("ClosePeriod failed", "period_id", id, "error", err)
		return nil, err
	}

	slog.Info("Period closed", "period_id", id, "group_id", period.GroupID)
	s.publisher.PublishPeriodEvent(ctx, events.PeriodClosed, period.ID, period.GroupID)
	return period, nil
}

// DeletePeriod removes a period that has no transactions.
func (s *PeriodService) DeletePeriod(ctx context.Context, id int64) error {
	if err := s.store.DeletePeriod(ctx, id); err != nil {
		slog.Error("DeletePeriod failed", "period_id", id, "error", err)
		return err
	}
	slog.Info("Period deleted", "period_id", id)
	return nil
}
