package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ludika/ludika-api/internal/models"
)

func TestSeedServiceGuards(t *testing.T) {
	levels := &memoryLevelRepo{levels: map[string][]models.GameLevel{}}
	courses := &memoryCourseRepo{}

	disabled := NewSeedService(levels, courses, false, "secret", zerolog.Nop())
	_, err := disabled.SeedGameLevels(context.Background(), "secret", nil)
	require.ErrorIs(t, err, ErrSeedDisabled)

	enabled := NewSeedService(levels, courses, true, "secret", zerolog.Nop())
	_, err = enabled.SeedGameLevels(context.Background(), "wrong", nil)
	require.ErrorIs(t, err, ErrSeedUnauthorized)

	_, err = enabled.SeedCourseGames(context.Background(), "", nil)
	require.ErrorIs(t, err, ErrSeedUnauthorized)
}

func TestSeedServiceNormalizesGameLevels(t *testing.T) {
	levels := &memoryLevelRepo{levels: map[string][]models.GameLevel{}}
	svc := NewSeedService(levels, &memoryCourseRepo{}, true, "secret", zerolog.Nop())

	affected, err := svc.SeedGameLevels(context.Background(), "secret", []models.GameLevel{
		{GameID: " ordenamiento ", LevelNumber: 1, ActivitiesCount: 10},
		{GameID: "", LevelNumber: 1, ActivitiesCount: 5},
		{GameID: "memoria", LevelNumber: 0, ActivitiesCount: 5},
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), affected, "blank ids and invalid level numbers are dropped")
	require.Len(t, levels.levels["ordenamiento"], 1)
}

func TestSeedServiceNormalizesCourseGames(t *testing.T) {
	courses := &memoryCourseRepo{}
	svc := NewSeedService(&memoryLevelRepo{levels: map[string][]models.GameLevel{}}, courses, true, "secret", zerolog.Nop())

	affected, err := svc.SeedCourseGames(context.Background(), "secret", []models.CourseGame{
		{CourseID: 1, GameID: "sumas"},
		{CourseID: 0, GameID: "memoria"},
		{CourseID: 2, GameID: "  "},
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)
	require.Len(t, courses.games, 1)
	require.Equal(t, "sumas", courses.games[0].GameID)
}
