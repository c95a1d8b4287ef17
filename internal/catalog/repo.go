package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pixelcart/pixelcart-backend/pkg/db/models"
	"github.com/pixelcart/pixelcart-backend/pkg/pagination"
)

type gormRepository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateGame(ctx context.Context, game *models.Game) error {
	return r.db.WithContext(ctx).Create(game).Error
}

func (r *gormRepository) FindGame(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	var game models.Game
	if err := r.db.WithContext(ctx).First(&game, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gormRepository) ListGames(ctx context.Context, filters ListFilters) ([]models.Game, error) {
	query := r.db.WithContext(ctx).Model(&models.Game{})
	if filters.Featured != nil {
		query = query.Where("featured = ?", *filters.Featured)
	}
	if filters.Category != "" {
		// LOWER/LIKE instead of ILIKE so the sqlite flag keeps working.
		query = query.Where("LOWER(category) LIKE ?", "%"+likeEscape(filters.Category)+"%")
	}

	var games []models.Game
	err := query.
		Order("created_at DESC").
		Limit(pagination.Normalize(filters.Limit, pagination.DefaultLimit)).
		Find(&games).
		Error
	if err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gormRepository) UpdateGame(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&models.Game{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormRepository) DeleteGame(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Game{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likeEscape(s string) string {
	return likeReplacer.Replace(strings.ToLower(s))
}
