package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ludika/ludika-api/internal/models"
)

// StatisticsRepository provides read access to the per-activity statistic
// facts recorded by the game clients.
type StatisticsRepository interface {
	ListByStudent(ctx context.Context, studentID uint) ([]models.GameStatistic, error)
	ListByStudentAndGame(ctx context.Context, studentID uint, gameID string) ([]models.GameStatistic, error)
	// LastCompletedActivity returns the furthest completed position for the
	// student in the game, or nil when the student has not completed any
	// activity yet.
	LastCompletedActivity(ctx context.Context, studentID uint, gameID string) (*models.ActivityPosition, error)
	CompletionRate(ctx context.Context, studentID uint, gameID string) (float64, error)
	AverageAccuracy(ctx context.Context, studentID uint, gameID string) (float64, error)
	TotalPoints(ctx context.Context, studentID uint) (int, error)
}

type statisticsRepository struct {
	db *gorm.DB
}

// NewStatisticsRepository constructs a statistics repository.
func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{db: db}
}

func (r *statisticsRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.GameStatistic, error) {
	var records []models.GameStatistic
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at").
		Find(&records).Error
	return records, err
}

func (r *statisticsRepository) ListByStudentAndGame(ctx context.Context, studentID uint, gameID string) ([]models.GameStatistic, error) {
	var records []models.GameStatistic
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND game_id = ?", studentID, gameID).
		Order("created_at").
		Find(&records).Error
	return records, err
}

func (r *statisticsRepository) LastCompletedActivity(ctx context.Context, studentID uint, gameID string) (*models.ActivityPosition, error) {
	var record models.GameStatistic
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND game_id = ? AND completed = ?", studentID, gameID, true).
		Order("level DESC, activity DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &models.ActivityPosition{Level: record.Level, Activity: record.Activity}, nil
}

func (r *statisticsRepository) CompletionRate(ctx context.Context, studentID uint, gameID string) (float64, error) {
	var total, completed int64
	query := r.db.WithContext(ctx).
		Model(&models.GameStatistic{}).
		Where("student_id = ? AND game_id = ?", studentID, gameID)

	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	err := r.db.WithContext(ctx).
		Model(&models.GameStatistic{}).
		Where("student_id = ? AND game_id = ? AND completed = ?", studentID, gameID, true).
		Count(&completed).Error
	if err != nil {
		return 0, err
	}

	return float64(completed) / float64(total) * 100, nil
}

func (r *statisticsRepository) AverageAccuracy(ctx context.Context, studentID uint, gameID string) (float64, error) {
	records, err := r.ListByStudentAndGame(ctx, studentID, gameID)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	var sum float64
	for _, record := range records {
		sum += record.Accuracy()
	}

	return sum / float64(len(records)) * 100, nil
}

func (r *statisticsRepository) TotalPoints(ctx context.Context, studentID uint) (int, error) {
	var total int
	err := r.db.WithContext(ctx).
		Model(&models.GameStatistic{}).
		Where("student_id = ?", studentID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	return total, err
}
