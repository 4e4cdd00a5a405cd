package domain

import "time"

// UserRole gates access to ticket, agent, and admin surfaces.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAgent UserRole = "agent"
	RoleAdmin UserRole = "admin"
)

// User is the domain model for anyone who signs in: requesters, support
// agents, and admins, differentiated by role.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
