package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mmynk/divvy/internal/apperr"
	"github.com/mmynk/divvy/internal/models"
)

func TestCreateTransactionValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	period := env.createPeriod(t)

	cents := func(v int64) *int64 { return &v }
	percent := func(v float64) *float64 { return &v }

	tests := []struct {
		name    string
		txn     *models.Transaction
		wantErr error
	}{
		{
			name: "amount shares must sum to the total",
			txn: &models.Transaction{
				PeriodID:   period.ID,
				PayerID:    env.alice.ID,
				CategoryID: env.categoryID,
				Kind:       models.KindExpense,
				SplitKind:  models.SplitAmount,
				Amount:     1000,
				Shares: []models.ExpenseShare{
					{UserID: env.alice.ID, ShareAmount: cents(500)},
					{UserID: env.bob.ID, ShareAmount: cents(400)},
				},
			},
			wantErr: apperr.ErrValidation,
		},
		{
			name: "equal split needs participants",
			txn: &models.Transaction{
				PeriodID:   period.ID,
				PayerID:    env.alice.ID,
				CategoryID: env.categoryID,
				Kind:       models.KindExpense,
				SplitKind:  models.SplitEqual,
				Amount:     1000,
			},
			wantErr: apperr.ErrValidation,
		},
		{
			name: "percentages must sum to 100",
			txn: &models.Transaction{
				PeriodID:   period.ID,
				PayerID:    env.alice.ID,
				CategoryID: env.categoryID,
				Kind:       models.KindExpense,
				SplitKind:  models.SplitPercentage,
				Amount:     1000,
				Shares: []models.ExpenseShare{
					{UserID: env.alice.ID, SharePercentage: percent(50)},
					{UserID: env.bob.ID, SharePercentage: percent(40)},
				},
			},
			wantErr: apperr.ErrValidation,
		},
		{
			name: "unknown kind is rejected",
			txn: &models.Transaction{
				PeriodID:   period.ID,
				PayerID:    env.alice.ID,
				CategoryID: env.categoryID,
				Kind:       "loan",
				Amount:     1000,
			},
			wantErr: apperr.ErrValidation,
		},
		{
			name: "missing period is not found",
			txn: &models.Transaction{
				PeriodID:   9999,
				PayerID:    env.alice.ID,
				CategoryID: env.categoryID,
				Kind:       models.KindDeposit,
				Amount:     1000,
			},
			wantErr: apperr.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := env.transactions.CreateTransaction(ctx, tt.txn)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateTransaction() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// None of the rejected transactions may have been persisted.
	txns, err := env.transactions.ListTransactions(ctx, period.ID)
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if len(txns) != 0 {
		t.Errorf("period has %d transactions after rejected writes, want 0", len(txns))
	}
}

func TestClosedPeriodRejectsWrites(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	period := env.createPeriod(t)
	txn := env.addEqualExpense(t, period.ID, env.alice.ID, 1000, env.alice.ID, env.bob.ID)

	if _, err := env.periods.ClosePeriod(ctx, period.ID); err != nil {
		t.Fatalf("ClosePeriod() error = %v", err)
	}

	t.Run("create", func(t *testing.T) {
		err := env.transactions.CreateTransaction(ctx, &models.Transaction{
			PeriodID:   period.ID,
			PayerID:    env.alice.ID,
			CategoryID: env.categoryID,
			Kind:       models.KindDeposit,
			Amount:     100,
		})
		if !errors.Is(err, apperr.ErrBusinessRule) {
			t.Errorf("CreateTransaction() error = %v, want ErrBusinessRule", err)
		}
	})

	t.Run("update", func(t *testing.T) {
		txn.Amount = 2000
		if err := env.transactions.UpdateTransaction(ctx, txn); !errors.Is(err, apperr.ErrBusinessRule) {
			t.Errorf("UpdateTransaction() error = %v, want ErrBusinessRule", err)
		}
	})

	t.Run("status change", func(t *testing.T) {
		err := env.transactions.SetTransactionStatus(ctx, txn.ID, models.StatusRejected)
		if !errors.Is(err, apperr.ErrBusinessRule) {
			t.Errorf("SetTransactionStatus() error = %v, want ErrBusinessRule", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := env.transactions.DeleteTransaction(ctx, txn.ID); !errors.Is(err, apperr.ErrBusinessRule) {
			t.Errorf("DeleteTransaction() error = %v, want ErrBusinessRule", err)
		}
	})
}

func TestTransactionReviewWorkflow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	period := env.createPeriod(t)

	txn := &models.Transaction{
		PeriodID:   period.ID,
		PayerID:    env.alice.ID,
		CategoryID: env.categoryID,
		Kind:       models.KindExpense,
		SplitKind:  models.SplitEqual,
		Status:     models.StatusPending,
		Amount:     600,
		Shares: []models.ExpenseShare{
			{UserID: env.alice.ID},
			{UserID: env.bob.ID},
		},
	}
	if err := env.transactions.CreateTransaction(ctx, txn); err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}

	// Pending transactions are invisible to balances.
	balances, err := env.settlements.ComputeBalances(ctx, period.ID)
	if err != nil {
		t.Fatalf("ComputeBalances() error = %v", err)
	}
	if len(balances) != 0 {
		t.Errorf("balances = %v, want empty while pending", balances)
	}

	if err := env.transactions.SetTransactionStatus(ctx, txn.ID, models.StatusApproved); err != nil {
		t.Fatalf("SetTransactionStatus() error = %v", err)
	}

	balances, err = env.settlements.ComputeBalances(ctx, period.ID)
	if err != nil {
		t.Fatalf("ComputeBalances() error = %v", err)
	}
	if balances[env.alice.ID] != 300 || balances[env.bob.ID] != -300 {
		t.Errorf("balances = %v, want alice +300, bob -300", balances)
	}

	t.Run("update with empty status keeps the review state", func(t *testing.T) {
		txn.Amount = 800
		txn.Status = ""
		if err := env.transactions.UpdateTransaction(ctx, txn); err != nil {
			t.Fatalf("UpdateTransaction() error = %v", err)
		}

		got, err := env.transactions.GetTransaction(ctx, txn.ID)
		if err != nil {
			t.Fatalf("GetTransaction() error = %v", err)
		}
		if got.Status != models.StatusApproved {
			t.Errorf("status = %s, want approved carried forward", got.Status)
		}
		if got.Amount != 800 {
			t.Errorf("amount = %d, want 800", got.Amount)
		}
	})

	t.Run("personal split drops stray shares", func(t *testing.T) {
		personal := &models.Transaction{
			PeriodID:   period.ID,
			PayerID:    env.carol.ID,
			CategoryID: env.categoryID,
			Kind:       models.KindExpense,
			SplitKind:  models.SplitPersonal,
			Status:     models.StatusApproved,
			Amount:     500,
			Shares:     []models.ExpenseShare{{UserID: env.alice.ID}},
		}
		if err := env.transactions.CreateTransaction(ctx, personal); err != nil {
			t.Fatalf("CreateTransaction() error = %v", err)
		}

		got, err := env.transactions.GetTransaction(ctx, personal.ID)
		if err != nil {
			t.Fatalf("GetTransaction() error = %v", err)
		}
		if len(got.Shares) != 0 {
			t.Errorf("personal split persisted shares %v, want none", got.Shares)
		}
	})
}
