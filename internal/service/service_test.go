package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mmynk/divvy/internal/models"
	"github.com/mmynk/divvy/internal/storage"
	"github.com/mmynk/divvy/internal/storage/sqlite"
)

// testEnv wires the services against a real temp-file SQLite store
// and seeds three users in a group: alice, bob, carol with IDs 1, 2, 3
// on a fresh database.
type testEnv struct {
	store        storage.Store
	settlements  *SettlementService
	periods      *PeriodService
	transactions *TransactionService
	groups       *GroupService

	alice, bob, carol *models.User
	group             *models.Group
	categoryID        int64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "divvy.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	env := &testEnv{
		store:        store,
		settlements:  NewSettlementService(store, nil),
		periods:      NewPeriodService(store, nil),
		transactions: NewTransactionService(store),
		groups:       NewGroupService(store),
	}

	ctx := context.Background()
	env.alice = env.createUser(t, "Alice", "alice@example.com")
	env.bob = env.createUser(t, "Bob", "bob@example.com")
	env.carol = env.createUser(t, "Carol", "carol@example.com")

	group, err := env.groups.CreateGroup(ctx, env.alice.ID, "flat", []int64{env.bob.ID, env.carol.ID})
	if err != nil {
		t.Fatalf("CreateGroup() error = %v", err)
	}
	env.group = group

	categories, err := env.groups.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories() error = %v", err)
	}
	if len(categories) == 0 {
		t.Fatal("no seeded categories")
	}
	env.categoryID = categories[0].ID

	return env
}

func (e *testEnv) createUser(t *testing.T, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, PasswordHash: "x", IsActive: true}
	if err := e.store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	return user
}

func (e *testEnv) createPeriod(t *testing.T) *models.Period {
	t.Helper()
	period, err := e.periods.CreatePeriod(context.Background(), e.group.ID, "March", 1700000000)
	if err != nil {
		t.Fatalf("CreatePeriod() error = %v", err)
	}
	return period
}

// addEqualExpense records an approved equal-split expense across the
// given participants.
func (e *testEnv) addEqualExpense(t *testing.T, periodID, payerID, amount int64, participants ...int64) *models.Transaction {
	t.Helper()
	shares := make([]models.ExpenseShare, len(participants))
	for i, userID := range participants {
		shares[i] = models.ExpenseShare{UserID: userID}
	}
	txn := &models.Transaction{
		PeriodID:   periodID,
		PayerID:    payerID,
		CategoryID: e.categoryID,
		Kind:       models.KindExpense,
		SplitKind:  models.SplitEqual,
		Status:     models.StatusApproved,
		Amount:     amount,
		Shares:     shares,
	}
	if err := e.transactions.CreateTransaction(context.Background(), txn); err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}
	return txn
}

func (e *testEnv) addDeposit(t *testing.T, periodID, payerID, amount int64) *models.Transaction {
	t.Helper()
	txn := &models.Transaction{
		PeriodID:   periodID,
		PayerID:    payerID,
		CategoryID: e.categoryID,
		Kind:       models.KindDeposit,
		Status:     models.StatusApproved,
		Amount:     amount,
	}
	if err := e.transactions.CreateTransaction(context.Background(), txn); err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}
	return txn
}
