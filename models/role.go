package models

import "strings"

// Role is the closed set of account roles. Every switch over Role lists all
// four values so a new role fails loudly wherever it is not handled.
type Role string

const (
	RoleUser         Role = "user"
	RoleProfessional Role = "professional"
	RoleSupport      Role = "support"
	RoleAdmin        Role = "admin"
)

// ParseRole normalizes s and reports whether it names a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleProfessional, RoleSupport, RoleAdmin:
		return true
	}
	return false
}

// CanWorkTickets reports whether the role may be assigned support tickets.
func (r Role) CanWorkTickets() bool {
	switch r {
	case RoleSupport, RoleAdmin:
		return true
	case RoleUser, RoleProfessional:
		return false
	}
	return false
}

// CanManageUsers reports whether the role may change or remove other accounts.
func (r Role) CanManageUsers() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleUser, RoleProfessional, RoleSupport:
		return false
	}
	return false
}

// CanOwnProfile reports whether the role may hold a professional profile.
func (r Role) CanOwnProfile() bool {
	switch r {
	case RoleProfessional:
		return true
	case RoleUser, RoleSupport, RoleAdmin:
		return false
	}
	return false
}

// Dashboard names the dashboard a role lands on.
func (r Role) Dashboard() string {
	switch r {
	case RoleUser:
		return "client"
	case RoleProfessional:
		return "professional"
	case RoleSupport:
		return "support"
	case RoleAdmin:
		return "admin"
	}
	return ""
}
