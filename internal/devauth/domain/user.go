package domain

import "time"

// User is an account that can sign in to the dashboard.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string // argon2 encoded
	CreatedAt    time.Time
}
