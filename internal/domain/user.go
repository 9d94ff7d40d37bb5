package domain

import "time"

// User is the domain model for regular end-users.
//
// Password is stored exactly as supplied at registration and compared with
// plain equality at login. The email is normalized to lowercase on write so
// the unique index treats addresses case-insensitively.
type User struct {
	ID        string
	Username  string
	Email     string
	Password  string
	CreatedAt time.Time
}
