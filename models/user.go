package models

import "time"

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleScorer UserRole = "scorer"
	RoleViewer UserRole = "viewer"
)

type User struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Role         UserRole  `json:"role" db:"role"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
