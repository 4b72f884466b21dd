package ports

import (
	"context"

	"github.com/gamevault/catalog-api/internal/core/domain"
)

// GameRepository defines persistence operations for catalog entries.
type GameRepository interface {
	FindAll(ctx context.Context) ([]*domain.Game, error)
	FindByID(ctx context.Context, id string) (*domain.Game, error)
	Create(ctx context.Context, game *domain.Game) (*domain.Game, error)
	Update(ctx context.Context, game *domain.Game) (*domain.Game, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}
