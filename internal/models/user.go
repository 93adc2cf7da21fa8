package models

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (database-assigned).
	ID int64 `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the user's email address (unique). Used for login.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized out of the server.
	PasswordHash string `json:"-"`

	// IsActive marks whether the account can log in.
	IsActive bool `json:"is_active"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp of the last modification.
	UpdatedAt int64 `json:"updated_at"`
}
