package domain

// Category classifies transactions as a named income or expense bucket.
// Unique per (name, kind, user).
type Category struct {
	CategoryID string    `json:"categoryID"` // Primary Key (UUID)
	UserID     string    `json:"userID"`     // FK -> users.user_id
	Name       string    `json:"name"`
	Kind       EntryKind `json:"kind"`
	Color      string    `json:"color"` // Display metadata, e.g. "#2e7d32"
	Icon       string    `json:"icon"`  // Display metadata, icon slug
	AuditFields
}
