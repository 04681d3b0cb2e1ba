package auth

import (
	"github.com/framehouse-studio/booking-backend/pkg/enums"
	"github.com/google/uuid"
)

// Actor is the authenticated caller a service call is made on behalf of.
type Actor struct {
	UserID uuid.UUID
	Role   enums.UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == enums.UserRoleAdmin
}

// CanAccess reports whether the actor may read or act on a resource owned by
// ownerID. Admins can access everything.
func (a Actor) CanAccess(ownerID uuid.UUID) bool {
	return a.IsAdmin() || (a.UserID != uuid.Nil && a.UserID == ownerID)
}
