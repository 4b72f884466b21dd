package ports

import (
	"context"

	"github.com/gamevault/catalog-api/internal/core/domain"
)

// UserRepository defines persistence operations for accounts. The store owns
// consistency: it must reject duplicate usernames (and duplicate non-empty
// emails) with domain.ErrUsernameTaken / domain.ErrEmailTaken so the service
// layer can distinguish uniqueness violations from other write failures.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, username string) error
}
