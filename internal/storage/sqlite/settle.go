package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/mmynk/divvy/internal/apperr"
	"github.com/mmynk/divvy/internal/models"
	"github.com/mmynk/divvy/internal/storage"
)

// SettlePeriod atomically settles a period.
//
// The whole operation runs in one immediate write transaction: the
// period and its approved transactions are re-read inside it, the
// callback derives the plan from that snapshot, the settlements are
// inserted and the period flips from closed to settled. The guarded
// UPDATE is the last line of defense: if the period is no longer
// closed by the time we flip it, someone else won the race and this
// settle fails with a conflict. Nothing is retried here.
func (s *SQLiteStore) SettlePeriod(ctx context.Context, periodID int64, plan storage.PlanFunc) ([]*models.Settlement, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", mapErr(err))
	}
	defer tx.Rollback()

	period, err := getPeriod(ctx, tx, periodID)
	if err != nil {
		return nil, err
	}

	txns, err := listTransactions(ctx, tx, periodID, models.StatusApproved)
	if err != nil {
		return nil, err
	}

	transfers, err := plan(period, txns)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	settlements := make([]*models.Settlement, 0, len(transfers))
	for _, transfer := range transfers {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO settlements (period_id, payer_id, payee_id, amount, created_at) VALUES (?, ?, ?, ?, ?)",
			periodID, transfer.PayerID, transfer.PayeeID, transfer.Amount, now,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert settlement: %w", mapErr(err))
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to read settlement id: %w", err)
		}
		settlements = append(settlements, &models.Settlement{
			ID:        id,
			PeriodID:  periodID,
			PayerID:   transfer.PayerID,
			PayeeID:   transfer.PayeeID,
			Amount:    transfer.Amount,
			CreatedAt: now,
		})
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE periods SET status = ?, updated_at = ? WHERE id = ? AND status = ?",
		models.PeriodSettled, now, periodID, models.PeriodClosed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to mark period settled: %w", mapErr(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read settle result: %w", err)
	}
	if affected == 0 {
		return nil, apperr.Conflictf("period %d was settled concurrently", periodID)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit settlement: %w", mapErr(err))
	}
	return settlements, nil
}
