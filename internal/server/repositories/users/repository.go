// Package users implements the identity store: lookup by normalized username
// and creation with store-level uniqueness.
package users

import (
	"context"

	"github.com/dmitrijs2005/quizauth/internal/server/models"
)

// Repository returns common.ErrorNotFound from GetByUsername when no user
// matches, and common.ErrDuplicate from Create when the username is taken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, userName string) (*models.User, error)
}
