package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ludika/ludika-api/internal/models"
)

// CourseRepository provides access to courses and their game assignments.
type CourseRepository interface {
	GetByID(ctx context.Context, id uint) (models.Course, error)
	ListGames(ctx context.Context, courseID uint) ([]models.CourseGame, error)
	UpsertGameAssignments(ctx context.Context, assignments []models.CourseGame) (int64, error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository constructs a course repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) GetByID(ctx context.Context, id uint) (models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return models.Course{}, err
	}

	return course, nil
}

func (r *courseRepository) UpsertGameAssignments(ctx context.Context, assignments []models.CourseGame) (int64, error) {
	if len(assignments) == 0 {
		return 0, nil
	}

	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "course_id"}, {Name: "game_id"}},
		DoNothing: true,
	})

	result := tx.Create(&assignments)
	return result.RowsAffected, result.Error
}

func (r *courseRepository) ListGames(ctx context.Context, courseID uint) ([]models.CourseGame, error) {
	var assignments []models.CourseGame
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("id").
		Find(&assignments).Error
	return assignments, err
}
