package models

// TransactionKind distinguishes how a transaction moves money.
type TransactionKind string

const (
	// KindExpense is money spent by the payer on behalf of participants.
	KindExpense TransactionKind = "expense"
	// KindDeposit is money put into the pool by the payer.
	KindDeposit TransactionKind = "deposit"
	// KindRefund is money returned to the payer from the pool.
	KindRefund TransactionKind = "refund"
)

// Valid reports whether the kind is known.
func (k TransactionKind) Valid() bool {
	switch k {
	case KindExpense, KindDeposit, KindRefund:
		return true
	}
	return false
}

// SplitKind selects how an expense is divided among participants.
type SplitKind string

const (
	// SplitPersonal assigns the full amount to the payer alone.
	SplitPersonal SplitKind = "personal"
	// SplitEqual divides the amount evenly, leftover cents going to
	// the participants with the lowest user IDs.
	SplitEqual SplitKind = "equal"
	// SplitAmount uses explicit per-user cent amounts that must sum
	// to the transaction amount.
	SplitAmount SplitKind = "amount"
	// SplitPercentage uses per-user percentage weights that must sum
	// to 100.
	SplitPercentage SplitKind = "percentage"
)

// Valid reports whether the split kind is known.
func (k SplitKind) Valid() bool {
	switch k {
	case SplitPersonal, SplitEqual, SplitAmount, SplitPercentage:
		return true
	}
	return false
}

// TransactionStatus is the review state of a transaction.
// Only approved transactions enter balance computation.
type TransactionStatus string

const (
	StatusDraft    TransactionStatus = "draft"
	StatusPending  TransactionStatus = "pending"
	StatusApproved TransactionStatus = "approved"
	StatusRejected TransactionStatus = "rejected"
)

// Valid reports whether the status is known.
func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ExpenseShare is one participant's piece of an expense transaction.
// Exactly one of ShareAmount and SharePercentage is meaningful,
// depending on the transaction's SplitKind; both are ignored for
// personal and equal splits, where membership alone matters.
type ExpenseShare struct {
	// TransactionID is the owning transaction.
	TransactionID int64 `json:"transaction_id"`

	// UserID is the participant this share belongs to.
	UserID int64 `json:"user_id"`

	// ShareAmount is the explicit share in cents (amount splits).
	// Nil otherwise.
	ShareAmount *int64 `json:"share_amount,omitempty"`

	// SharePercentage is the share weight in percent (percentage splits).
	// Nil otherwise.
	SharePercentage *float64 `json:"share_percentage,omitempty"`
}

// Transaction is a single money movement within a period.
type Transaction struct {
	// ID is the unique identifier for the transaction (database-assigned).
	ID int64 `json:"id"`

	// PeriodID is the accounting period this transaction belongs to.
	PeriodID int64 `json:"period_id"`

	// PayerID is the user who paid (expense), deposited, or is refunded.
	PayerID int64 `json:"payer_id"`

	// CategoryID classifies the transaction.
	CategoryID int64 `json:"category_id"`

	// Kind is expense, deposit, or refund.
	Kind TransactionKind `json:"kind"`

	// SplitKind selects the share computation for expenses.
	// Ignored for deposits and refunds.
	SplitKind SplitKind `json:"split_kind"`

	// Status is the review state. Only approved transactions count.
	Status TransactionStatus `json:"status"`

	// Amount is the transaction total in cents. Never negative.
	Amount int64 `json:"amount"`

	// Description is a short human-readable label.
	Description string `json:"description"`

	// Shares are the expense participants. Empty for deposits and
	// refunds, and for personal splits it is just the payer.
	Shares []ExpenseShare `json:"shares,omitempty"`

	// DateIncurred is the Unix timestamp the expense happened.
	DateIncurred int64 `json:"date_incurred"`

	// CreatedAt is the Unix timestamp when the record was created.
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp of the last modification.
	UpdatedAt int64 `json:"updated_at"`
}
