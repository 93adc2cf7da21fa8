package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mmynk/divvy/internal/apperr"
	"github.com/mmynk/divvy/internal/models"
)

const transactionColumns = "id, period_id, payer_id, category_id, kind, split_kind, status, amount, description, date_incurred, created_at, updated_at"

// CreateTransaction persists a transaction with its shares.
func (s *SQLiteStore) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	now := time.Now().Unix()
	if txn.CreatedAt == 0 {
		txn.CreatedAt = now
	}
	txn.UpdatedAt = now
	if txn.Status == "" {
		txn.Status = models.StatusDraft
	}
	if txn.DateIncurred == 0 {
		txn.DateIncurred = now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", mapErr(err))
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO transactions (period_id, payer_id, category_id, kind, split_kind, status, amount, description, date_incurred, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.PeriodID, txn.PayerID, txn.CategoryID, txn.Kind, txn.SplitKind,
		txn.Status, txn.Amount, txn.Description, txn.DateIncurred, txn.CreatedAt, txn.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", mapErr(err))
	}
	txn.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read transaction id: %w", err)
	}

	if err := insertShares(ctx, tx, txn); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", mapErr(err))
	}
	return nil
}

// GetTransaction retrieves a transaction by ID, including shares.
func (s *SQLiteStore) GetTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	txn := &models.Transaction{}
	err := s.db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ?",
		id,
	).Scan(&txn.ID, &txn.PeriodID, &txn.PayerID, &txn.CategoryID, &txn.Kind, &txn.SplitKind,
		&txn.Status, &txn.Amount, &txn.Description, &txn.DateIncurred, &txn.CreatedAt, &txn.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("transaction %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", mapErr(err))
	}

	shares, err := loadShares(ctx, s.db, "transaction_id = ?", id)
	if err != nil {
		return nil, err
	}
	txn.Shares = shares[id]
	return txn, nil
}

// ListTransactionsByPeriod retrieves all transactions of a period
// regardless of status, oldest first.
func (s *SQLiteStore) ListTransactionsByPeriod(ctx context.Context, periodID int64) ([]*models.Transaction, error) {
	return listTransactions(ctx, s.db, periodID, "")
}

// GetApprovedTransactions retrieves the approved transactions of a period.
func (s *SQLiteStore) GetApprovedTransactions(ctx context.Context, periodID int64) ([]*models.Transaction, error) {
	return listTransactions(ctx, s.db, periodID, models.StatusApproved)
}

func listTransactions(ctx context.Context, q querier, periodID int64, status models.TransactionStatus) ([]*models.Transaction, error) {
	query := "SELECT " + transactionColumns + " FROM transactions WHERE period_id = ?"
	args := []any{periodID}
	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}
	query += " ORDER BY date_incurred, id"

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", mapErr(err))
	}
	defer rows.Close()

	var txns []*models.Transaction
	for rows.Next() {
		txn := &models.Transaction{}
		if err := rows.Scan(&txn.ID, &txn.PeriodID, &txn.PayerID, &txn.CategoryID, &txn.Kind, &txn.SplitKind,
			&txn.Status, &txn.Amount, &txn.Description, &txn.DateIncurred, &txn.CreatedAt, &txn.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	shares, err := loadShares(ctx, q,
		"transaction_id IN (SELECT id FROM transactions WHERE period_id = ?)", periodID)
	if err != nil {
		return nil, err
	}
	for _, txn := range txns {
		txn.Shares = shares[txn.ID]
	}
	return txns, nil
}

// UpdateTransaction replaces a transaction and its shares.
func (s *SQLiteStore) UpdateTransaction(ctx context.Context, txn *models.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", mapErr(err))
	}
	defer tx.Rollback()

	txn.UpdatedAt = time.Now().Unix()
	res, err := tx.ExecContext(ctx,
		`UPDATE transactions
		 SET payer_id = ?, category_id = ?, kind = ?, split_kind = ?, status = ?, amount = ?, description = ?, date_incurred = ?, updated_at = ?
		 WHERE id = ?`,
		txn.PayerID, txn.CategoryID, txn.Kind, txn.SplitKind, txn.Status,
		txn.Amount, txn.Description, txn.DateIncurred, txn.UpdatedAt, txn.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", mapErr(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperr.NotFoundf("transaction %d", txn.ID)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM expense_shares WHERE transaction_id = ?", txn.ID); err != nil {
		return fmt.Errorf("failed to clear shares: %w", mapErr(err))
	}
	if err := insertShares(ctx, tx, txn); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", mapErr(err))
	}
	return nil
}

// UpdateTransactionStatus moves a transaction to a new review state.
func (s *SQLiteStore) UpdateTransactionStatus(ctx context.Context, id int64, status models.TransactionStatus) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE transactions SET status = ?, updated_at = ? WHERE id = ?",
		status, time.Now().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction status: %w", mapErr(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperr.NotFoundf("transaction %d", id)
	}
	return nil
}

// DeleteTransaction removes a transaction; its shares cascade.
func (s *SQLiteStore) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", mapErr(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperr.NotFoundf("transaction %d", id)
	}
	return nil
}

func insertShares(ctx context.Context, q querier, txn *models.Transaction) error {
	for i := range txn.Shares {
		share := &txn.Shares[i]
		share.TransactionID = txn.ID
		_, err := q.ExecContext(ctx,
			"INSERT INTO expense_shares (transaction_id, user_id, share_amount, share_percentage) VALUES (?, ?, ?, ?)",
			share.TransactionID, share.UserID, share.ShareAmount, share.SharePercentage,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense share: %w", mapErr(err))
		}
	}
	return nil
}

func loadShares(ctx context.Context, q querier, where string, arg any) (map[int64][]models.ExpenseShare, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT transaction_id, user_id, share_amount, share_percentage FROM expense_shares WHERE "+where+" ORDER BY user_id",
		arg,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense shares: %w", mapErr(err))
	}
	defer rows.Close()

	shares := make(map[int64][]models.ExpenseShare)
	for rows.Next() {
		var share models.ExpenseShare
		var amount sql.NullInt64
		var pct sql.NullFloat64
		if err := rows.Scan(&share.TransactionID, &share.UserID, &amount, &pct); err != nil {
			return nil, fmt.Errorf("failed to scan expense share: %w", err)
		}
		if amount.Valid {
			share.ShareAmount = &amount.Int64
		}
		if pct.Valid {
			share.SharePercentage = &pct.Float64
		}
		shares[share.TransactionID] = append(shares[share.TransactionID], share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense shares: %w", err)
	}
	return shares, nil
}
