package models

// Teacher is an account allowed to read the class ledger.
type Teacher struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
