package model

import "time"

// User represents a registered storefront account. Admin accounts drive
// payment verification and server management.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}
