package service

import (
	"context"

	"github.com/gamevault/catalog-api/internal/core/domain"
	"github.com/gamevault/catalog-api/internal/core/ports"
)

// GameService implements catalog use cases. It is thin by design: field rules
// live in the transport schemas, consistency lives in the repository.
type GameService struct {
	repo ports.GameRepository
}

func NewGameService(repo ports.GameRepository) *GameService {
	return &GameService{repo: repo}
}

func (s *GameService) List(ctx context.Context) ([]*domain.Game, error) {
	return s.repo.FindAll(ctx)
}

func (s *GameService) Get(ctx context.Context, id string) (*domain.Game, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *GameService) Create(ctx context.Context, input ports.GameInput) (*domain.Game, error) {
	return s.repo.Create(ctx, &domain.Game{
		Name:        input.Name,
		ReleaseDate: input.ReleaseDate,
		DevelopedBy: input.DevelopedBy,
		Genre:       input.Genre,
	})
}

func (s *GameService) Update(ctx context.Context, id string, input ports.GameInput) (*domain.Game, error) {
	game, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	game.Name = input.Name
	game.ReleaseDate = input.ReleaseDate
	game.DevelopedBy = input.DevelopedBy
	game.Genre = input.Genre

	return s.repo.Update(ctx, game)
}

func (s *GameService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *GameService) DeleteAll(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}
