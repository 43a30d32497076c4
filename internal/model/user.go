package model

import "time"

// Role is a user's access profile.
type Role string

const (
	RoleSuperAdmin   Role = "superadmin"
	RoleAdmin        Role = "admin"
	RoleCoordinator  Role = "coordenador"
	RoleProfessional Role = "profissional"
	RoleVolunteer    Role = "voluntario"
)

// Roles lists every known role, most privileged first.
var Roles = []Role{RoleSuperAdmin, RoleAdmin, RoleCoordinator, RoleProfessional, RoleVolunteer}

// Normalize maps unknown roles to the least privileged one.
func (r Role) Normalize() Role {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleCoordinator, RoleProfessional, RoleVolunteer:
		return r
	default:
		return RoleVolunteer
	}
}

// IsAdmin reports whether r has administrative access.
func (r Role) IsAdmin() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}

// User represents a row of the usuarios table.
type User struct {
	ID           int64     `json:"id"`
	Nome         string    `json:"nome"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"papel"`
	Ativo        bool      `json:"ativo"`
	CreatedAt    time.Time `json:"created_at"`
}
