package domain

// User represents the owner of a data store. There is no authentication model;
// every request simply names the user it acts for.
type User struct {
	UserID string `json:"userID"` // Primary Key (UUID)
	Name   string `json:"name"`
	Email  string `json:"email"`
	AuditFields
}
