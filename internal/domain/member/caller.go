package member

import (
	"errors"

	"github.com/google/uuid"
)

// ErrForbidden is returned when the caller's role is insufficient for an
// operation, or when a member reaches for another member's data.
var ErrForbidden = errors.New("insufficient privileges")

// Caller is the authenticated identity a request acts as. Services receive
// it explicitly; nothing is read from ambient state.
type Caller struct {
	ID   uuid.UUID
	Role Role
}

// IsStaff reports whether the caller may perform moderator-level operations
func (c Caller) IsStaff() bool {
	return c.Role == RoleModerator || c.Role == RoleAdmin
}

// Authorize checks the caller's role against the set of allowed roles
func Authorize(caller Caller, allowed ...Role) error {
	for _, role := range allowed {
		if caller.Role == role {
			return nil
		}
	}
	return ErrForbidden
}

// AuthorizeSelfOr allows the caller through when acting on their own member
// ID, or when holding one of the allowed roles.
func AuthorizeSelfOr(caller Caller, subject uuid.UUID, allowed ...Role) error {
	if caller.ID == subject {
		return nil
	}
	return Authorize(caller, allowed...)
}
