package models

// PeriodStatus is the lifecycle state of an accounting period.
// The lifecycle is linear: open -> closed -> settled. There are no
// other transitions and settled is terminal.
type PeriodStatus string

const (
	// PeriodOpen accepts new transactions and edits.
	PeriodOpen PeriodStatus = "open"
	// PeriodClosed is frozen: no new transactions, settlement may be planned.
	PeriodClosed PeriodStatus = "closed"
	// PeriodSettled has its settlement transfers recorded. Terminal.
	PeriodSettled PeriodStatus = "settled"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s PeriodStatus) Valid() bool {
	switch s {
	case PeriodOpen, PeriodClosed, PeriodSettled:
		return true
	}
	return false
}

// Period represents an accounting period: the unit of settlement.
// All balance and plan computations scope to a single period.
type Period struct {
	// ID is the unique identifier for the period (database-assigned).
	ID int64 `json:"id"`

	// GroupID is the group this period belongs to.
	GroupID int64 `json:"group_id"`

	// Name is a human-readable label, e.g. "March 2026".
	Name string `json:"name"`

	// Status is the lifecycle state. New periods start open.
	Status PeriodStatus `json:"status"`

	// StartDate is the Unix timestamp when the period begins.
	StartDate int64 `json:"start_date"`

	// EndDate is the Unix timestamp set when the period is closed.
	// Zero while the period is still open.
	EndDate int64 `json:"end_date"`

	// CreatedAt is the Unix timestamp when the period was created.
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp of the last modification.
	UpdatedAt int64 `json:"updated_at"`
}
