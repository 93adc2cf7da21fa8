package models

// Category classifies transactions, e.g. "Groceries" or "Rent".
type Category struct {
	// ID is the unique identifier for the category (database-assigned).
	ID int64 `json:"id"`

	// Name is the unique display name.
	Name string `json:"name"`

	// IsDefault marks categories seeded at first startup.
	IsDefault bool `json:"is_default"`
}
