package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ludika/ludika-api/internal/models"
)

func TestAggregateStatisticsEmptyInput(t *testing.T) {
	stats := aggregateStatistics(nil)
	require.Empty(t, stats)
}

func TestAggregateStatisticsMergesPrefixedGameIDs(t *testing.T) {
	records := []models.GameStatistic{
		{GameID: "game-x", Points: 10, Completed: true},
		{GameID: "x", Points: 20},
	}

	stats := aggregateStatistics(records)
	require.Len(t, stats, 1)

	group, ok := stats["x"]
	require.True(t, ok, "prefixed and bare ids collapse into one key")
	require.Equal(t, 1, group.CompletedCount)
	require.Equal(t, 15, group.AverageScore)
}

func TestAggregateStatisticsScoresAndTime(t *testing.T) {
	seconds := 120
	records := []models.GameStatistic{
		{GameID: "game-a", Points: 100, Completed: true, CompletionTimeSeconds: &seconds},
		{GameID: "game-a", Points: 80, Completed: true},
		{GameID: "game-a", Points: 90, Completed: false},
	}

	stats := aggregateStatistics(records)
	group := stats["a"]
	require.Equal(t, 2, group.CompletedCount)
	require.Equal(t, 90, group.AverageScore, "round((100+80+90)/3)")
	require.Equal(t, 120, group.TotalTimeSeconds, "missing completion time counts as zero")
}

func TestAggregateGameWindows(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	windowStart := now.AddDate(0, 0, -7)

	eight := 8
	ten := 10
	records := []models.GameStatistic{
		{GameID: "ordenamiento", Points: 50, Completed: true, MaxUnlockedLevel: 2, CorrectAnswers: &eight, TotalQuestions: &ten, CreatedAt: now.AddDate(0, 0, -10)},
		{GameID: "memoria", Points: 30, Completed: false, MaxUnlockedLevel: 1, CreatedAt: now.AddDate(0, 0, -2)},
		{GameID: "ordenamiento", Points: 70, Completed: false, MaxUnlockedLevel: 3, CreatedAt: now.AddDate(0, 0, -1)},
	}

	aggregates := aggregateGameWindows(records, windowStart)
	require.Len(t, aggregates, 2)
	require.Equal(t, "ordenamiento", aggregates[0].GameID, "groups keep first-seen order")
	require.Equal(t, "memoria", aggregates[1].GameID)

	ordenamiento := aggregates[0]
	require.Equal(t, 2, ordenamiento.TotalSessions)
	require.Equal(t, 120, ordenamiento.TotalPoints)
	require.Equal(t, 3, ordenamiento.MaxUnlockedLevel)
	require.Equal(t, 50, ordenamiento.CompletionRatePct)
	require.Equal(t, 40, ordenamiento.AverageAccuracyPct, "round((0.8+0)/2*100)")
	require.Equal(t, 1, ordenamiento.RecentSessions)
	require.Equal(t, 70, ordenamiento.RecentPoints)
	require.NotNil(t, ordenamiento.LastActivityAt)
	require.Equal(t, now.AddDate(0, 0, -1), *ordenamiento.LastActivityAt)
}

func TestAggregateGameWindowsBoundaryIsInclusive(t *testing.T) {
	windowStart := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	records := []models.GameStatistic{
		{GameID: "sumas", Points: 10, CreatedAt: windowStart},
		{GameID: "sumas", Points: 5, CreatedAt: windowStart.Add(-time.Second)},
	}

	aggregates := aggregateGameWindows(records, windowStart)
	require.Equal(t, 1, aggregates[0].RecentSessions, "a record exactly on the boundary is recent")
	require.Equal(t, 10, aggregates[0].RecentPoints)
}

func TestAggregateGameWindowsZeroQuestionsNeverNaN(t *testing.T) {
	zero := 0
	three := 3
	records := []models.GameStatistic{
		{GameID: "silabas", CorrectAnswers: &three, TotalQuestions: &zero},
	}

	aggregates := aggregateGameWindows(records, time.Now())
	require.Zero(t, aggregates[0].AverageAccuracyPct)
}

func TestStudentStatisticsRequiresStudentID(t *testing.T) {
	svc := NewStatisticsService(&memoryStatsRepo{}, zerolog.Nop())
	_, err := svc.StudentStatistics(context.Background(), 0)
	require.ErrorIs(t, err, ErrStudentRequired)
}

func TestStudentProgressAggregatesPerGame(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	stats := &memoryStatsRepo{records: map[uint][]models.GameStatistic{
		42: {
			{GameID: "ordenamiento", Points: 50, Completed: true, MaxUnlockedLevel: 2, CreatedAt: now.AddDate(0, 0, -1)},
			{GameID: "memoria", Points: 25, Completed: true, MaxUnlockedLevel: 1, CreatedAt: now.AddDate(0, 0, -20)},
		},
	}}

	svc := NewStatisticsService(stats, zerolog.Nop()).(*statisticsService)
	svc.now = func() time.Time { return now }

	response, err := svc.StudentProgress(context.Background(), 42, 0)
	require.NoError(t, err)

	require.Equal(t, uint(42), response.StudentID)
	require.Equal(t, 75, response.TotalPoints)
	require.Equal(t, 2, response.TotalGamesPlayed)
	require.Len(t, response.GameProgress, 2)
	require.Equal(t, 1, response.GameProgress[0].RecentSessions, "default window is seven days")
	require.Zero(t, response.GameProgress[1].RecentSessions)
}
