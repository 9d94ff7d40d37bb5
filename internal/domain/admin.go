package domain

import "time"

// Admin models an administrator principal.
//
// PasswordHash is a bcrypt hash computed at creation, and recomputed only when
// the plaintext secret changes; the clear form is never stored. CurrentToken
// holds the most-recently-issued bearer token and is overwritten on every
// successful login.
type Admin struct {
	ID           string
	Username     string
	PasswordHash string
	CurrentToken *string
	CreatedAt    time.Time
}
