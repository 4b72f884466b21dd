package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gamevault/catalog-api/internal/core/domain"
)

const collectionGames = "games"

// GameRepository persists catalog entries in the games collection.
type GameRepository struct {
	coll *mongo.Collection
}

func NewGameRepository(db *mongo.Database) *GameRepository {
	return &GameRepository{coll: db.Collection(collectionGames)}
}

type mongoGame struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	ReleaseDate time.Time          `bson:"release_date"`
	DevelopedBy string             `bson:"developed_by,omitempty"`
	Genre       string             `bson:"genre,omitempty"`
}

func (r *GameRepository) FindAll(ctx context.Context) ([]*domain.Game, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer cur.Close(ctx)

	games := make([]*domain.Game, 0)
	for cur.Next(ctx) {
		var mg mongoGame
		if err := cur.Decode(&mg); err != nil {
			return nil, fmt.Errorf("decode game: %w", err)
		}
		games = append(games, fromMongoGame(&mg))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	return games, nil
}

func (r *GameRepository) FindByID(ctx context.Context, id string) (*domain.Game, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrGameNotFound
	}

	var mg mongoGame
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGameNotFound
		}
		return nil, fmt.Errorf("find game: %w", err)
	}
	return fromMongoGame(&mg), nil
}

func (r *GameRepository) Create(ctx context.Context, game *domain.Game) (*domain.Game, error) {
	res, err := r.coll.InsertOne(ctx, toMongoGame(game))
	if err != nil {
		return nil, fmt.Errorf("insert game: %w", err)
	}

	created := *game
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *GameRepository) Update(ctx context.Context, game *domain.Game) (*domain.Game, error) {
	oid, err := primitive.ObjectIDFromHex(game.ID)
	if err != nil {
		return nil, domain.ErrGameNotFound
	}

	doc := toMongoGame(game)
	doc.ID = oid
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update game: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrGameNotFound
	}
	return game, nil
}

func (r *GameRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrGameNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrGameNotFound
	}
	return nil
}

func (r *GameRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("delete all games: %w", err)
	}
	return nil
}

func toMongoGame(g *domain.Game) mongoGame {
	return mongoGame{
		Name:        g.Name,
		ReleaseDate: g.ReleaseDate.UTC(),
		DevelopedBy: g.DevelopedBy,
		Genre:       g.Genre,
	}
}

func fromMongoGame(mg *mongoGame) *domain.Game {
	return &domain.Game{
		ID:          mg.ID.Hex(),
		Name:        mg.Name,
		ReleaseDate: mg.ReleaseDate.UTC(),
		DevelopedBy: mg.DevelopedBy,
		Genre:       mg.Genre,
	}
}
