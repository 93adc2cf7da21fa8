package calculator

import (
	"testing"

	"github.com/mmynk/divvy/internal/models"
)

func TestBalances(t *testing.T) {
	tests := []struct {
		name         string
		txns         []*models.Transaction
		wantErr      bool
		validateFunc func(t *testing.T, balances map[int64]int64)
	}{
		{
			name: "no transactions yields empty balances",
			txns: nil,
			validateFunc: func(t *testing.T, balances map[int64]int64) {
				if len(balances) != 0 {
					t.Errorf("balances = %v, want empty", balances)
				}
			},
		},
		{
			name: "equal expense credits payer and debits participants",
			txns: []*models.Transaction{
				expense(1, 1000, models.SplitEqual,
					models.ExpenseShare{UserID: 1},
					models.ExpenseShare{UserID: 2},
					models.ExpenseShare{UserID: 3},
				),
			},
			validateFunc: func(t *testing.T, balances map[int64]int64) {
				want := map[int64]int64{1: 666, 2: -333, 3: -333}
				for id, balance := range want {
					if balances[id] != balance {
						t.Errorf("balances[%d] = %d, want %d", id, balances[id], balance)
					}
				}
			},
		},
		{
			name: "deposit credits the depositor",
			txns: []*models.Transaction{
				{PayerID: 7, Kind: models.KindDeposit, Status: models.StatusApproved, Amount: 10000},
			},
			validateFunc: func(t *testing.T, balances map[int64]int64) {
				if balances[7] != 10000 {
					t.Errorf("balances[7] = %d, want 10000", balances[7])
				}
			},
		},
		{
			name: "refund debits the recipient",
			txns: []*models.Transaction{
				{PayerID: 7, Kind: models.KindDeposit, Status: models.StatusApproved, Amount: 10000},
				{PayerID: 7, Kind: models.KindRefund, Status: models.StatusApproved, Amount: 4000},
			},
			validateFunc: func(t *testing.T, balances map[int64]int64) {
				if balances[7] != 6000 {
					t.Errorf("balances[7] = %d, want 6000", balances[7])
				}
			},
		},
		{
			name: "unapproved transactions are skipped",
			txns: []*models.Transaction{
				{PayerID: 1, Kind: models.KindDeposit, Status: models.StatusPending, Amount: 5000},
				{PayerID: 1, Kind: models.KindDeposit, Status: models.StatusDraft, Amount: 5000},
				{PayerID: 1, Kind: models.KindDeposit, Status: models.StatusRejected, Amount: 5000},
				{PayerID: 1, Kind: models.KindDeposit, Status: models.StatusApproved, Amount: 100},
			},
			validateFunc: func(t *testing.T, balances map[int64]int64) {
				if balances[1] != 100 {
					t.Errorf("balances[1] = %d, want 100", balances[1])
				}
			},
		},
		{
			name: "mixed transactions conserve money",
			txns: []*models.Transaction{
				expense(1, 1000, models.SplitEqual,
					models.ExpenseShare{UserID: 1},
					models.ExpenseShare{UserID: 2},
					models.ExpenseShare{UserID: 3},
				),
				expense(2, 333, models.SplitAmount,
					models.ExpenseShare{UserID: 1, ShareAmount: cents(100)},
					models.ExpenseShare{UserID: 3, ShareAmount: cents(233)},
				),
				expense(3, 777, models.SplitPercentage,
					models.ExpenseShare{UserID: 1, SharePercentage: percent(25)},
					models.ExpenseShare{UserID: 2, SharePercentage: percent(75)},
				),
				expense(1, 42, models.SplitPersonal),
			},
			validateFunc: func(t *testing.T, balances map[int64]int64) {
				var sum int64
				for _, balance := range balances {
					sum += balance
				}
				if sum != 0 {
					t.Errorf("balances sum to %d, want 0", sum)
				}
			},
		},
		{
			name: "unknown kind should error",
			txns: []*models.Transaction{
				{PayerID: 1, Kind: "transfer", Status: models.StatusApproved, Amount: 100},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances, err := Balances(tt.txns)
			if (err != nil) != tt.wantErr {
				t.Errorf("Balances() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && tt.validateFunc != nil {
				tt.validateFunc(t, balances)
			}
		})
	}
}

func TestApplySettlements(t *testing.T) {
	balances := map[int64]int64{1: 666, 2: -333, 3: -333}

	ApplySettlements(balances, []*models.Settlement{
		{PeriodID: 1, PayerID: 2, PayeeID: 1, Amount: 333},
		{PeriodID: 1, PayerID: 3, PayeeID: 1, Amount: 333},
	})

	for id, balance := range balances {
		if balance != 0 {
			t.Errorf("balances[%d] = %d, want 0 after settlement", id, balance)
		}
	}
}
