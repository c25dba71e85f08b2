package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ludika/ludika-api/internal/models"
	"github.com/ludika/ludika-api/internal/repository"
)

var (
	// ErrSeedDisabled indicates the seeding tools are disabled by configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedUnauthorized indicates the provided token is invalid.
	ErrSeedUnauthorized = errors.New("invalid seed token")
)

// SeedService orchestrates catalog seeding operations for local and staging
// environments.
type SeedService interface {
	SeedGameLevels(ctx context.Context, token string, levels []models.GameLevel) (int64, error)
	SeedCourseGames(ctx context.Context, token string, assignments []models.CourseGame) (int64, error)
}

type seedService struct {
	levelRepo  repository.GameLevelRepository
	courseRepo repository.CourseRepository
	enabled    bool
	token      string
	logger     zerolog.Logger
}

// NewSeedService constructs a seeding service.
func NewSeedService(levelRepo repository.GameLevelRepository, courseRepo repository.CourseRepository, enabled bool, token string, logger zerolog.Logger) SeedService {
	return &seedService{
		levelRepo:  levelRepo,
		courseRepo: courseRepo,
		enabled:    enabled,
		token:      token,
		logger:     logger.With().Str("component", "seed_service").Logger(),
	}
}

func (s *seedService) SeedGameLevels(ctx context.Context, token string, levels []models.GameLevel) (int64, error) {
	if !s.enabled {
		return 0, ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return 0, ErrSeedUnauthorized
	}
	normalized := normalizeGameLevels(levels)
	affected, err := s.levelRepo.UpsertBatch(ctx, normalized)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("affected", affected).Msg("game levels seeded")
	return affected, nil
}

func (s *seedService) SeedCourseGames(ctx context.Context, token string, assignments []models.CourseGame) (int64, error) {
	if !s.enabled {
		return 0, ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return 0, ErrSeedUnauthorized
	}
	normalized := normalizeCourseGames(assignments)
	affected, err := s.courseRepo.UpsertGameAssignments(ctx, normalized)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("affected", affected).Msg("course game assignments seeded")
	return affected, nil
}

func (s *seedService) validateToken(token string) bool {
	expected := strings.TrimSpace(s.token)
	if expected == "" {
		return false
	}
	return subtleConstantTimeCompare(expected, strings.TrimSpace(token))
}

func subtleConstantTimeCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	mismatch := byte(0)
	for i := 0; i < len(a); i++ {
		mismatch |= a[i] ^ b[i]
	}
	return mismatch == 0
}

func normalizeGameLevels(levels []models.GameLevel) []models.GameLevel {
	kept := make([]models.GameLevel, 0, len(levels))
	for _, level := range levels {
		level.GameID = strings.TrimSpace(level.GameID)
		if level.GameID == "" || level.LevelNumber < 1 || level.ActivitiesCount < 0 {
			continue
		}
		kept = append(kept, level)
	}
	return kept
}

func normalizeCourseGames(assignments []models.CourseGame) []models.CourseGame {
	kept := make([]models.CourseGame, 0, len(assignments))
	for _, assignment := range assignments {
		assignment.GameID = strings.TrimSpace(assignment.GameID)
		if assignment.CourseID == 0 || assignment.GameID == "" {
			continue
		}
		kept = append(kept, assignment)
	}
	return kept
}
