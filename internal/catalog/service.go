package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pixelcart/pixelcart-backend/pkg/db"
	"github.com/pixelcart/pixelcart-backend/pkg/db/models"
	pkgerrors "github.com/pixelcart/pixelcart-backend/pkg/errors"
)

// Counters is the observability surface the service increments.
type Counters interface {
	IncGamesCreated()
}

type service struct {
	repo     Repository
	counters Counters
}

// NewService builds the catalog service with its required dependencies.
func NewService(repo Repository, counters Counters) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if counters == nil {
		return nil, fmt.Errorf("catalog counters required")
	}
	return &service{repo: repo, counters: counters}, nil
}

func (s *service) Create(ctx context.Context, input CreateGameInput) (*models.Game, error) {
	name := strings.TrimSpace(input.Name)
	category := strings.TrimSpace(input.Category)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if category == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	if input.Price == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	game := &models.Game{
		Name:        name,
		Category:    category,
		Price:       *input.Price,
		Description: input.Description,
	}
	if input.Featured != nil {
		game.Featured = *input.Featured
	}

	if err := s.repo.CreateGame(ctx, game); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a game with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert game")
	}

	s.counters.IncGamesCreated()
	return game, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "game id required")
	}
	game, err := s.repo.FindGame(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "game not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load game")
	}
	return game, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]models.Game, error) {
	games, err := s.repo.ListGames(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list games")
	}
	return games, nil
}

func (s *service) ListFeatured(ctx context.Context, limit int) ([]models.Game, error) {
	featured := true
	return s.List(ctx, ListFilters{Featured: &featured, Limit: limit})
}

// Update applies a partial update over the fixed column set. Column names are
// assembled here so request data never reaches SQL as anything but a bound
// parameter.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateGameInput) (*models.Game, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "game id required")
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
		}
		updates["name"] = name
	}
	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category must not be empty")
		}
		updates["category"] = category
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
		}
		updates["price"] = *input.Price
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Featured != nil {
		updates["featured"] = *input.Featured
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one updatable field is required")
	}

	if err := s.repo.UpdateGame(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "game not found")
		}
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a game with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update game")
	}

	game, err := s.repo.FindGame(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload game")
	}
	return game, nil
}

// Delete removes the catalog entry and returns it. Order items keep their
// captured title and price, so existing orders are untouched.
func (s *service) Delete(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "game id required")
	}

	game, err := s.repo.FindGame(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "game not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load game")
	}

	if err := s.repo.DeleteGame(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "game not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete game")
	}
	return game, nil
}
