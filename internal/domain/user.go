package domain

import (
	"context"
	"errors"
)

// User is the authenticated caller of a command.
type User struct {
	ID    string
	Email string
	Role  Role
}

// Role represents a user's access level
type Role string

const (
	// RoleAdmin approves, verifies and rejects withdrawals, runs ticks and unblocks accounts
	RoleAdmin Role = "admin"

	// RoleInvestor manages its own investments and withdrawals
	RoleInvestor Role = "investor"

	// RoleViewer can only read projections
	RoleViewer Role = "viewer"
)

var validRoles = map[Role]bool{
	RoleAdmin:    true,
	RoleInvestor: true,
	RoleViewer:   true,
}

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanActFor reports whether a user with this role may issue commands for ownerID.
func (u *User) CanActFor(ownerID string) bool {
	if u.Role == RoleAdmin {
		return true
	}
	return u.Role == RoleInvestor && u.ID == ownerID
}

// Authentication errors
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
)

type userContextKey struct{}

// ContextWithUser attaches the authenticated user to ctx.
func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*User)
	return user, ok && user != nil
}

// ActorID returns the ID of the user in ctx or "system".
func ActorID(ctx context.Context) string {
	if user, ok := UserFromContext(ctx); ok {
		return user.ID
	}
	return "system"
}
