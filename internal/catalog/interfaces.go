package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/pixelcart/pixelcart-backend/pkg/db/models"
)

// Repository defines persistence operations for catalog entries.
type Repository interface {
	CreateGame(ctx context.Context, game *models.Game) error
	FindGame(ctx context.Context, id uuid.UUID) (*models.Game, error)
	ListGames(ctx context.Context, filters ListFilters) ([]models.Game, error)
	UpdateGame(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteGame(ctx context.Context, id uuid.UUID) error
}

// Service exposes the catalog operations used by the HTTP layer.
type Service interface {
	Create(ctx context.Context, input CreateGameInput) (*models.Game, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Game, error)
	List(ctx context.Context, filters ListFilters) ([]models.Game, error)
	ListFeatured(ctx context.Context, limit int) ([]models.Game, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateGameInput) (*models.Game, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.Game, error)
}
