package model

import "time"

// Back-office roles.
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "GESTOR"
)

// User is a back-office operator account. Passwords are stored as bcrypt
// hashes only.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}
