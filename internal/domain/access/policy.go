package access

import (
	"strings"

	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole is case-insensitive.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleUser:
		return r, nil
	default:
		return "", httperr.Validation("role must be one of: admin, user").
			WithCode("invalid_role")
	}
}

// Actor is the authenticated identity behind a request.
type Actor struct {
	ID   uint
	Role Role
}

func NewActor(id uint, role string) Actor {
	return Actor{ID: id, Role: Role(strings.ToLower(strings.TrimSpace(role)))}
}

func (a Actor) Authenticated() bool { return a.ID != 0 }

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// Authorize allows admins and the owner of the resource.
func Authorize(a Actor, ownerID uint) error {
	if !a.Authenticated() {
		return httperr.Unauthenticated("authentication required")
	}
	if a.IsAdmin() || a.ID == ownerID {
		return nil
	}
	return httperr.Forbidden("not allowed to access this resource")
}

func RequireAdmin(a Actor) error {
	if !a.Authenticated() {
		return httperr.Unauthenticated("authentication required")
	}
	if !a.IsAdmin() {
		return httperr.Forbidden("admin role required")
	}
	return nil
}

func RequireAuthenticated(a Actor) error {
	if !a.Authenticated() {
		return httperr.Unauthenticated("authentication required")
	}
	return nil
}
