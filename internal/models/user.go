package models

// User is an admin account for the dashboard. The public site has no
// visitor accounts.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role,omitempty"`
}
