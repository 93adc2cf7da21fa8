package calculator

import (
	"testing"

	"github.com/mmynk/divvy/internal/models"
)

func TestPlan(t *testing.T) {
	tests := []struct {
		name         string
		balances     map[int64]int64
		wantErr      bool
		wantPlan     []models.Transfer
		validateFunc func(t *testing.T, plan []models.Transfer)
	}{
		{
			name:     "empty balances yields empty plan",
			balances: map[int64]int64{},
			wantPlan: nil,
		},
		{
			name:     "all zero balances yields empty plan",
			balances: map[int64]int64{1: 0, 2: 0, 3: 0},
			wantPlan: nil,
		},
		{
			name:     "one creditor two equal debtors",
			balances: map[int64]int64{1: 666, 2: -333, 3: -333},
			wantPlan: []models.Transfer{
				{PayerID: 2, PayeeID: 1, Amount: 333},
				{PayerID: 3, PayeeID: 1, Amount: 333},
			},
		},
		{
			name:     "two users settle with a single transfer",
			balances: map[int64]int64{1: 500, 2: -500},
			wantPlan: []models.Transfer{
				{PayerID: 2, PayeeID: 1, Amount: 500},
			},
		},
		{
			name:     "largest debtor pays largest creditor first",
			balances: map[int64]int64{1: 700, 2: 300, 3: -600, 4: -400},
			wantPlan: []models.Transfer{
				{PayerID: 3, PayeeID: 1, Amount: 600},
				{PayerID: 4, PayeeID: 2, Amount: 300},
				{PayerID: 4, PayeeID: 1, Amount: 100},
			},
		},
		{
			name:     "ties break by ascending user ID",
			balances: map[int64]int64{3: 200, 1: -100, 2: -100},
			wantPlan: []models.Transfer{
				{PayerID: 1, PayeeID: 3, Amount: 100},
				{PayerID: 2, PayeeID: 3, Amount: 100},
			},
		},
		{
			name:     "nonzero sum should error",
			balances: map[int64]int64{1: 100, 2: -99},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Plan(tt.balances)
			if (err != nil) != tt.wantErr {
				t.Errorf("Plan() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}

			if len(plan) != len(tt.wantPlan) {
				t.Fatalf("Plan() = %v, want %v", plan, tt.wantPlan)
			}
			for i, transfer := range tt.wantPlan {
				if plan[i] != transfer {
					t.Errorf("plan[%d] = %v, want %v", i, plan[i], transfer)
				}
			}

			if tt.validateFunc != nil {
				tt.validateFunc(t, plan)
			}
		})
	}
}

// TestPlanProperties checks the structural guarantees that hold for
// any zero-sum balance map: applying the plan zeroes every balance,
// every transfer is positive, and the plan never needs more transfers
// than nonzero balances minus one.
func TestPlanProperties(t *testing.T) {
	cases := []map[int64]int64{
		{1: 666, 2: -333, 3: -333},
		{1: 1, 2: -1},
		{1: 1000, 2: 2000, 3: -1500, 4: -1500},
		{1: 5, 2: 5, 3: 5, 4: -15},
		{10: -7, 20: -3, 30: 4, 40: 6},
		{1: 123456789, 2: -23456789, 3: -100000000},
	}

	for _, balances := range cases {
		plan, err := Plan(balances)
		if err != nil {
			t.Fatalf("Plan(%v) error = %v", balances, err)
		}

		nonzero := 0
		remaining := make(map[int64]int64, len(balances))
		for id, balance := range balances {
			remaining[id] = balance
			if balance != 0 {
				nonzero++
			}
		}

		if nonzero > 0 && len(plan) > nonzero-1 {
			t.Errorf("Plan(%v) has %d transfers, want at most %d", balances, len(plan), nonzero-1)
		}

		for _, transfer := range plan {
			if transfer.Amount <= 0 {
				t.Errorf("Plan(%v) produced non-positive transfer %v", balances, transfer)
			}
			remaining[transfer.PayerID] += transfer.Amount
			remaining[transfer.PayeeID] -= transfer.Amount
		}

		for id, balance := range remaining {
			if balance != 0 {
				t.Errorf("Plan(%v) leaves user %d at %d, want 0", balances, id, balance)
			}
		}
	}
}

func TestPlanDeterministic(t *testing.T) {
	balances := map[int64]int64{1: 100, 2: 100, 3: -100, 4: -100}

	first, err := Plan(balances)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := Plan(balances)
		if err != nil {
			t.Fatalf("Plan() error = %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d: plan length %d, want %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d: plan[%d] = %v, want %v", i, j, again[j], first[j])
			}
		}
	}
}
