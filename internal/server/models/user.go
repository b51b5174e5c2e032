package models

import "time"

// User is a stored identity. UserName is always in normalized form.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}
