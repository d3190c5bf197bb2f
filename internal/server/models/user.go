// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. Only the bcrypt hash of the password is kept.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}
