package service

import (
	"context"
	"log/slog"

	"github.com/mmynk/divvy/internal/apperr"
	"github.com/mmynk/divvy/internal/calculator"
	"github.com/mmynk/divvy/internal/models"
	"github.com/mmynk/divvy/internal/storage"
)

// TransactionService manages the transactions of a period. Writes are
// only accepted while the owning period is open; share configurations
// are validated at write time so balance computation never sees a
// malformed split.
type TransactionService struct {
	store storage.Store
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store storage.Store) *TransactionService {
	return &TransactionService{store: store}
}

// CreateTransaction records a new transaction in an open period.
func (s *TransactionService) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	if err := s.validateWrite(ctx, txn); err != nil {
		return err
	}

	if err := s.store.CreateTransaction(ctx, txn); err != nil {
		slog.Error("CreateTransaction failed", "period_id", txn.PeriodID, "error", err)
		return err
	}

	slog.Info("Transaction created",
		"transaction_id", txn.ID,
		"period_id", txn.PeriodID,
		"kind", txn.Kind,
		"amount", txn.Amount,
	)
	return nil
}

// GetTransaction retrieves a transaction by ID.
func (s *TransactionService) GetTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	return s.store.GetTransaction(ctx, id)
}

// ListTransactions retrieves all transactions of a period.
func (s *TransactionService) ListTransactions(ctx context.Context, periodID int64) ([]*models.Transaction, error) {
	if _, err := s.store.GetPeriod(ctx, periodID); err != nil {
		return nil, err
	}
	return s.store.ListTransactionsByPeriod(ctx, periodID)
}

// UpdateTransaction replaces a transaction while its period is open.
func (s *TransactionService) UpdateTransaction(ctx context.Context, txn *models.Transaction) error {
	existing, err := s.store.GetTransaction(ctx, txn.ID)
	if err != nil {
		return err
	}
	txn.PeriodID = existing.PeriodID
	if txn.Status == "" {
		txn.Status = existing.Status
	}

	if err := s.validateWrite(ctx, txn); err != nil {
		return err
	}

	if err := s.store.UpdateTransaction(ctx, txn); err != nil {
		slog.Error("UpdateTransaction failed", "transaction_id", txn.ID, "error", err)
		return err
	}

	slog.Info("Transaction updated", "transaction_id", txn.ID, "period_id", txn.PeriodID)
	return nil
}

// SetTransactionStatus moves a transaction through the review workflow
// while its period is open. Only approved transactions enter balances.
func (s *TransactionService) SetTransactionStatus(ctx context.Context, id int64, status models.TransactionStatus) error {
	if !status.Valid() {
		return apperr.Validationf("unknown transaction status %q", status)
	}

	txn, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireOpenPeriod(ctx, txn.PeriodID); err != nil {
		return err
	}

	if err := s.store.UpdateTransactionStatus(ctx, id, status); err != nil {
		slog.Error("SetTransactionStatus failed", "transaction_id", id, "error", err)
		return err
	}

	slog.Info("Transaction status changed", "transaction_id", id, "status", status)
	return nil
}

// DeleteTransaction removes a transaction while its period is open.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id int64) error {
	txn, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireOpenPeriod(ctx, txn.PeriodID); err != nil {
		return err
	}

	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		slog.Error("DeleteTransaction failed", "transaction_id", id, "error", err)
		return err
	}

	slog.Info("Transaction deleted", "transaction_id", id, "period_id", txn.PeriodID)
	return nil
}

func (s *TransactionService) validateWrite(ctx context.Context, txn *models.Transaction) error {
	if !txn.Kind.Valid() {
		return apperr.Validationf("unknown transaction kind %q", txn.Kind)
	}
	if txn.Kind == models.KindExpense && !txn.SplitKind.Valid() {
		return apperr.Validationf("unknown split kind %q", txn.SplitKind)
	}
	if txn.Status != "" && !txn.Status.Valid() {
		return apperr.Validationf("unknown transaction status %q", txn.Status)
	}

	// Deposits and refunds carry no split; normalize so the schema
	// constraint is satisfied and shares stay empty.
	if txn.Kind != models.KindExpense {
		txn.SplitKind = models.SplitPersonal
	}
	if txn.Kind == models.KindExpense && txn.SplitKind == models.SplitPersonal {
		txn.Shares = nil
	}

	if err := calculator.ValidateShares(txn); err != nil {
		return err
	}

	return s.requireOpenPeriod(ctx, txn.PeriodID)
}

func (s *TransactionService) requireOpenPeriod(ctx context.Context, periodID int64) error {
	period, err := s.store.GetPeriod(ctx, periodID)
	if err != nil {
		return err
	}
	if period.Status != models.PeriodOpen {
		return apperr.BusinessRulef("period %d is %s, transactions require an open period", periodID, period.Status)
	}
	return nil
}
