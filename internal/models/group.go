package models

// Group represents a household or circle of users that shares expenses.
// Accounting periods belong to a group, and only group members appear
// in the group's balances.
type Group struct {
	// ID is the unique identifier for the group (database-assigned).
	ID int64 `json:"id"`

	// Name is the display name of the group.
	Name string `json:"name"`

	// OwnerID is the user who created the group.
	OwnerID int64 `json:"owner_id"`

	// MemberIDs are the users belonging to the group, ascending by ID.
	MemberIDs []int64 `json:"member_ids"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp of the last modification.
	UpdatedAt int64 `json:"updated_at"`
}
