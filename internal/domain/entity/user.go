package entity

import "time"

// Roles de usuario de la aplicación.
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// User usuario de la aplicación (login del panel).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // "admin" | "viewer"
	Status       string // "active" | "disabled"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
