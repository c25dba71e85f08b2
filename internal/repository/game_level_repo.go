package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ludika/ludika-api/internal/models"
)

// GameLevelRepository provides access to per-game level definitions.
type GameLevelRepository interface {
	ListByGame(ctx context.Context, gameID string) ([]models.GameLevel, error)
	TotalActivities(ctx context.Context, gameID string) (int, error)
	UpsertBatch(ctx context.Context, levels []models.GameLevel) (int64, error)
}

type gameLevelRepository struct {
	db *gorm.DB
}

// NewGameLevelRepository constructs a game level repository.
func NewGameLevelRepository(db *gorm.DB) GameLevelRepository {
	return &gameLevelRepository{db: db}
}

func (r *gameLevelRepository) ListByGame(ctx context.Context, gameID string) ([]models.GameLevel, error) {
	var levels []models.GameLevel
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("level_number").
		Find(&levels).Error
	return levels, err
}

func (r *gameLevelRepository) UpsertBatch(ctx context.Context, levels []models.GameLevel) (int64, error) {
	if len(levels) == 0 {
		return 0, nil
	}

	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_id"}, {Name: "level_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"activities_count", "difficulty", "config", "updated_at"}),
	})

	result := tx.Create(&levels)
	return result.RowsAffected, result.Error
}

func (r *gameLevelRepository) TotalActivities(ctx context.Context, gameID string) (int, error) {
	var total int
	err := r.db.WithContext(ctx).
		Model(&models.GameLevel{}).
		Where("game_id = ?", gameID).
		Select("COALESCE(SUM(activities_count), 0)").
		Scan(&total).Error
	return total, err
}
