package auth

import (
	"context"

	"github.com/google/uuid"
)

// RoleStaff grants read access to every estimate and the audit log
const RoleStaff = "staff"

// SystemUserID identifies requests authenticated with the service API key
var SystemUserID = uuid.MustParse("00000000-0000-0000-0000-000000000000")

// UserContext holds authenticated user information
type UserContext struct {
	UserID      uuid.UUID
	DisplayName string
	Email       string
	Roles       []string
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok && user != nil
}

// HasRole checks if user has a specific role
func (u *UserContext) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsStaff reports whether the user may see every estimate
func (u *UserContext) IsStaff() bool {
	return u.HasRole(RoleStaff)
}

// CanAccess reports whether the user may act on a record owned by ownerID
func (u *UserContext) CanAccess(ownerID uuid.UUID) bool {
	return u.IsStaff() || u.UserID == ownerID
}
