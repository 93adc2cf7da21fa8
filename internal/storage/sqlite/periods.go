package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mmynk/divvy/internal/apperr"
	"github.com/mmynk/divvy/internal/models"
)

const periodColumns = "id, group_id, name, status, start_date, end_date, created_at, updated_at"

// CreatePeriod persists a new period. New periods always start open.
func (s *SQLiteStore) CreatePeriod(ctx context.Context, period *models.Period) error {
	now := time.Now().Unix()
	if period.CreatedAt == 0 {
		period.CreatedAt = now
	}
	period.UpdatedAt = now
	if period.Status == "" {
		period.Status = models.PeriodOpen
	}
	if period.StartDate == 0 {
		period.StartDate = now
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO periods (group_id, name, status, start_date, end_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		period.GroupID, period.Name, period.Status, period.StartDate,
		nullableInt64(period.EndDate), period.CreatedAt, period.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert period: %w", mapErr(err))
	}

	period.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read period id: %w", err)
	}
	return nil
}

// GetPeriod retrieves a period by ID.
func (s *SQLiteStore) GetPeriod(ctx context.Context, id int64) (*models.Period, error) {
	return getPeriod(ctx, s.db, id)
}

func getPeriod(ctx context.Context, q querier, id int64) (*models.Period, error) {
	period := &models.Period{}
	var endDate sql.NullInt64
	err := q.QueryRowContext(ctx,
		"SELECT "+periodColumns+" FROM periods WHERE id = ?",
		id,
	).Scan(&period.ID, &period.GroupID, &period.Name, &period.Status,
		&period.StartDate, &endDate, &period.CreatedAt, &period.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("period %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get period: %w", mapErr(err))
	}
	if endDate.Valid {
		period.EndDate = endDate.Int64
	}
	return period, nil
}

// ListPeriodsByGroup retrieves all periods of a group, newest first.
func (s *SQLiteStore) ListPeriodsByGroup(ctx context.Context, groupID int64) ([]*models.Period, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+periodColumns+" FROM periods WHERE group_id = ? ORDER BY start_date DESC, id DESC",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods by group: %w", mapErr(err))
	}
	defer rows.Close()

	var periods []*models.Period
	for rows.Next() {
		period := &models.Period{}
		var endDate sql.NullInt64
		if err := rows.Scan(&period.ID, &period.GroupID, &period.Name, &period.Status,
			&period.StartDate, &endDate, &period.CreatedAt, &period.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan period: %w", err)
		}
		if endDate.Valid {
			period.EndDate = endDate.Int64
		}
		periods = append(periods, period)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate periods: %w", err)
	}
	return periods, nil
}

// ClosePeriod transitions a period from open to closed and stamps its
// end date. The status is checked again by the UPDATE's WHERE clause,
// so a racing close loses cleanly.
func (s *SQLiteStore) ClosePeriod(ctx context.Context, id int64, endDate int64) (*models.Period, error) {
	period, err := s.GetPeriod(ctx, id)
	if err != nil {
		return nil, err
	}
	if period.Status != models.PeriodOpen {
		return nil, apperr.BusinessRulef("period %d is %s, only open periods can be closed", id, period.Status)
	}

	now := time.Now().Unix()
	res, err := s.db.ExecContext(ctx,
		"UPDATE periods SET status = ?, end_date = ?, updated_at = ? WHERE id = ? AND status = ?",
		models.PeriodClosed, endDate, now, id, models.PeriodOpen,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to close period: %w", mapErr(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read close result: %w", err)
	}
	if affected == 0 {
		return nil, apperr.Conflictf("period %d changed state concurrently", id)
	}

	period.Status = models.PeriodClosed
	period.EndDate = endDate
	period.UpdatedAt = now
	return period, nil
}

// DeletePeriod removes a period that has no transactions.
func (s *SQLiteStore) DeletePeriod(ctx context.Context, id int64) error {
	if _, err := s.GetPeriod(ctx, id); err != nil {
		return err
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM transactions WHERE period_id = ?", id,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count period transactions: %w", mapErr(err))
	}
	if count > 0 {
		return apperr.BusinessRulef("period %d has %d transactions and cannot be deleted", id, count)
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM periods WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete period: %w", mapErr(err))
	}
	return nil
}

func nullableInt64(v int64) any {
	if v == 0 {
		return nil
	}
	return v
}
