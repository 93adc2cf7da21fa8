package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mmynk/divvy/internal/apperr"
	"github.com/mmynk/divvy/internal/calculator"
	"github.com/mmynk/divvy/internal/events"
	"github.com/mmynk/divvy/internal/models"
	"github.com/mmynk/divvy/internal/storage"
)

var (
	settlementsApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "divvy_settlements_applied_total",
		Help: "Number of periods successfully settled.",
	})
	settlementConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "divvy_settlement_conflicts_total",
		Help: "Number of settlement attempts lost to a concurrent settle.",
	})
)

// SettlementService exposes the period-scoped ledger operations:
// balances, settlement plans, and atomic plan application.
type SettlementService struct {
	store     storage.Store
	publisher *events.Publisher
}

// NewSettlementService creates a new SettlementService.
// publisher may be nil when messaging is not configured.
func NewSettlementService(store storage.Store, publisher *events.Publisher) *SettlementService {
	return &SettlementService{store: store, publisher: publisher}
}

// ComputeBalances returns the current net balance per user for a
// period, in cents. Recorded settlements are folded in, so a settled
// period reads all zeros. Works in any lifecycle state.
func (s *SettlementService) ComputeBalances(ctx context.Context, periodID int64) (map[int64]int64, error) {
	if _, err := s.store.GetPeriod(ctx, periodID); err != nil {
		return nil, err
	}

	txns, err := s.store.GetApprovedTransactions(ctx, periodID)
	if err != nil {
		return nil, err
	}
	balances, err := calculator.Balances(txns)
	if err != nil {
		slog.Error("ComputeBalances failed", "period_id", periodID, "error", err)
		return nil, err
	}

	settlements, err := s.store.ListSettlementsByPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	calculator.ApplySettlements(balances, settlements)

	return balances, nil
}

// ComputeSettlementPlan returns the transfer list that would settle a
// closed period. The plan is never persisted; reading it repeatedly
// yields the same plan as long as nothing is written.
func (s *SettlementService) ComputeSettlementPlan(ctx context.Context, periodID int64) ([]models.Transfer, error) {
	period, err := s.store.GetPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}

	txns, err := s.store.GetApprovedTransactions(ctx, periodID)
	if err != nil {
		return nil, err
	}
	return planForPeriod(period, txns)
}

// ApplySettlementPlan settles a closed period: balances and plan are
// recomputed inside the store's write transaction, the settlements are
// persisted and the period becomes settled, all atomically. Exactly
// one of two concurrent applies succeeds; the loser gets a conflict.
func (s *SettlementService) ApplySettlementPlan(ctx context.Context, periodID int64) ([]*models.Settlement, error) {
	settlements, err := s.store.SettlePeriod(ctx, periodID, planForPeriod)
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			settlementConflicts.Inc()
			slog.Warn("ApplySettlementPlan lost a concurrent settle", "period_id", periodID)
		} else {
			slog.Error("ApplySettlementPlan failed", "period_id", periodID, "error", err)
		}
		return nil, err
	}

	settlementsApplied.Inc()
	slog.Info("Period settled", "period_id", periodID, "transfers", len(settlements))

	if period, err := s.store.GetPeriod(ctx, periodID); err == nil {
		s.publisher.PublishPeriodEvent(ctx, events.PeriodSettled, periodID, period.GroupID)
	}

	return settlements, nil
}

// ListSettlements returns the recorded settlements of a period.
func (s *SettlementService) ListSettlements(ctx context.Context, periodID int64) ([]*models.Settlement, error) {
	if _, err := s.store.GetPeriod(ctx, periodID); err != nil {
		return nil, err
	}
	return s.store.ListSettlementsByPeriod(ctx, periodID)
}

// planForPeriod derives the settlement plan from a period snapshot.
// It enforces the lifecycle rule that only closed periods can be
// planned or settled; the settling transaction calls it with rows
// re-read under the write lock.
func planForPeriod(period *models.Period, txns []*models.Transaction) ([]models.Transfer, error) {
	if period.Status != models.PeriodClosed {
		return nil, apperr.BusinessRulef("period %d is %s, settlement requires a closed period", period.ID, period.Status)
	}

	balances, err := calculator.Balances(txns)
	if err != nil {
		return nil, err
	}
	return calculator.Plan(balances)
}
