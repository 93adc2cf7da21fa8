package models

// Settlement is one executed transfer of a settlement plan: payer pays
// payee the given amount to clear debt within a period. Settlements are
// the only persisted artifact of settling; balances and plans are
// always recomputed.
type Settlement struct {
	// ID is the unique identifier for the settlement (database-assigned).
	ID int64 `json:"id"`

	// PeriodID is the period this settlement belongs to.
	PeriodID int64 `json:"period_id"`

	// PayerID is the debtor: the user sending money.
	PayerID int64 `json:"payer_id"`

	// PayeeID is the creditor: the user receiving money.
	PayeeID int64 `json:"payee_id"`

	// Amount is the transfer amount in cents. Always positive.
	Amount int64 `json:"amount"`

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64 `json:"created_at"`
}

// Transfer is one step of a settlement plan before it is persisted:
// payer pays payee the given amount in cents. Plans are ordered and
// deterministic for a given balance map.
type Transfer struct {
	PayerID int64 `json:"payer_id"`
	PayeeID int64 `json:"payee_id"`
	Amount  int64 `json:"amount"`
}
