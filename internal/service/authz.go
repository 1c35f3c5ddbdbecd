package service

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

type RoleReader interface {
	Role(ctx context.Context, userID string) (string, error)
}

// Authorizer gates admin operations. The role is read from storage on
// every call so a demotion takes effect immediately.
type Authorizer struct {
	roles RoleReader
}

func NewAuthorizer(roles RoleReader) *Authorizer {
	return &Authorizer{roles: roles}
}

func (a *Authorizer) IsAdmin(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, models.ErrUnauthenticated
	}
	role, err := a.roles.Role(ctx, userID)
	if err != nil {
		return false, errors.Wrap(err, "load role")
	}
	if role == "" {
		return false, models.ErrUnauthenticated
	}
	return role == models.RoleAdmin, nil
}

// RequireAdmin returns ErrForbidden unless userID currently holds the
// admin role.
func (a *Authorizer) RequireAdmin(ctx context.Context, userID string) error {
	ok, err := a.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return models.ErrForbidden
	}
	return nil
}
