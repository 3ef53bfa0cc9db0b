package domain

import "time"

// User mirrors the persisted representation in the users table.
// Accounts are created unconfirmed and flip to confirmed exactly once
// when the owner follows the emailed confirmation link.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	PasswordAlgo string
	Confirmed    bool
	RegisteredAt time.Time
}

// Field length bounds enforced at registration time.
const (
	UsernameMinLen = 4
	UsernameMaxLen = 150
	EmailMinLen    = 6
	EmailMaxLen    = 150
	PasswordMinLen = 6
	PasswordMaxLen = 100
)
