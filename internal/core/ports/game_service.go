package ports

import (
	"context"
	"time"

	"github.com/gamevault/catalog-api/internal/core/domain"
)

// GameInput carries the writable fields of a catalog entry.
type GameInput struct {
	Name        string
	ReleaseDate time.Time
	DevelopedBy string
	Genre       string
}

// GameService defines use-case operations for the catalog.
type GameService interface {
	List(ctx context.Context) ([]*domain.Game, error)
	Get(ctx context.Context, id string) (*domain.Game, error)
	Create(ctx context.Context, input GameInput) (*domain.Game, error)
	Update(ctx context.Context, id string, input GameInput) (*domain.Game, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}
