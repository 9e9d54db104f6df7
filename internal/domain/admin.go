package domain

import "time"

// Admin represents the single administrative identity of the system.
type Admin struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
