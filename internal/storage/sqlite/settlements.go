package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/divvy/internal/models"
)

// ListSettlementsByPeriod retrieves the recorded settlements of a
// period in insertion order.
func (s *SQLiteStore) ListSettlementsByPeriod(ctx context.Context, periodID int64) ([]*models.Settlement, error) {
	return listSettlements(ctx, s.db, periodID)
}

func listSettlements(ctx context.Context, q querier, periodID int64) ([]*models.Settlement, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT id, period_id, payer_id, payee_id, amount, created_at FROM settlements WHERE period_id = ? ORDER BY id",
		periodID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", mapErr(err))
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement := &models.Settlement{}
		if err := rows.Scan(&settlement.ID, &settlement.PeriodID, &settlement.PayerID,
			&settlement.PayeeID, &settlement.Amount, &settlement.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}
	return settlements, nil
}
