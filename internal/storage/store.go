// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/divvy/internal/models"
)

// PlanFunc computes the settlement transfers for a period from the
// state read inside the settling transaction. SettlePeriod calls it
// with the freshly re-read period and its approved transactions, so
// the plan is derived from exactly the rows the transaction locks.
type PlanFunc func(period *models.Period, txns []*models.Transaction) ([]models.Transfer, error)

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite,
// PostgreSQL, etc.) without changing the service layer.
type Store interface {
	// CreateUser persists a new user. The ID field is populated.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id int64) (*models.User, error)

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// CreateGroup persists a new group with the owner as first member.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID, including member IDs.
	GetGroup(ctx context.Context, id int64) (*models.Group, error)

	// AddGroupMembers adds users to a group, skipping existing members.
	AddGroupMembers(ctx context.Context, groupID int64, userIDs []int64) error

	// ListCategories returns all categories ordered by name.
	ListCategories(ctx context.Context) ([]*models.Category, error)

	// CreateCategory persists a new category. The ID field is populated.
	CreateCategory(ctx context.Context, category *models.Category) error

	// CreatePeriod persists a new period. The ID field is populated.
	CreatePeriod(ctx context.Context, period *models.Period) error

	// GetPeriod retrieves a period by ID.
	GetPeriod(ctx context.Context, id int64) (*models.Period, error)

	// ListPeriodsByGroup retrieves all periods of a group, newest first.
	ListPeriodsByGroup(ctx context.Context, groupID int64) ([]*models.Period, error)

	// ClosePeriod transitions a period from open to closed and stamps
	// its end date. Fails with a business rule error if the period is
	// not open.
	ClosePeriod(ctx context.Context, id int64, endDate int64) (*models.Period, error)

	// DeletePeriod removes a period that has no transactions.
	// Fails with a business rule error otherwise.
	DeletePeriod(ctx context.Context, id int64) error

	// CreateTransaction persists a transaction with its shares.
	// The ID field is populated.
	CreateTransaction(ctx context.Context, tx *models.Transaction) error

	// GetTransaction retrieves a transaction by ID, including shares.
	GetTransaction(ctx context.Context, id int64) (*models.Transaction, error)

	// ListTransactionsByPeriod retrieves all transactions of a period
	// regardless of status, including shares, oldest first.
	ListTransactionsByPeriod(ctx context.Context, periodID int64) ([]*models.Transaction, error)

	// GetApprovedTransactions retrieves the approved transactions of a
	// period, including shares. This is the balance computation input.
	GetApprovedTransactions(ctx context.Context, periodID int64) ([]*models.Transaction, error)

	// UpdateTransaction replaces a transaction and its shares.
	UpdateTransaction(ctx context.Context, tx *models.Transaction) error

	// UpdateTransactionStatus moves a transaction to a new review state.
	UpdateTransactionStatus(ctx context.Context, id int64, status models.TransactionStatus) error

	// DeleteTransaction removes a transaction and its shares.
	DeleteTransaction(ctx context.Context, id int64) error

	// ListSettlementsByPeriod retrieves the recorded settlements of a
	// period in insertion order.
	ListSettlementsByPeriod(ctx context.Context, periodID int64) ([]*models.Settlement, error)

	// SettlePeriod atomically settles a period: inside one write
	// transaction it re-reads the period and its approved transactions,
	// obtains the plan from the callback, persists the settlements and
	// transitions the period from closed to settled. Any failure rolls
	// everything back. A concurrent settle of the same period fails
	// with a conflict error; there is no internal retry.
	SettlePeriod(ctx context.Context, periodID int64, plan PlanFunc) ([]*models.Settlement, error)

	// Close releases any resources held by the store.
	Close() error
}
