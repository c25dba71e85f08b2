package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/ludika/ludika-api/internal/dto"
	"github.com/ludika/ludika-api/internal/models"
	"github.com/ludika/ludika-api/internal/repository"
)

// ErrStudentRequired indicates the caller omitted the student identifier.
var ErrStudentRequired = errors.New("student id is required")

// StatisticsService aggregates a student's raw activity records into
// per-game summaries.
type StatisticsService interface {
	StudentStatistics(ctx context.Context, studentID uint) (dto.StudentStatisticsResponse, error)
	StudentProgress(ctx context.Context, studentID uint, recentDays int) (dto.StudentProgressResponse, error)
}

type statisticsService struct {
	stats  repository.StatisticsRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewStatisticsService constructs the student statistics aggregator.
func NewStatisticsService(stats repository.StatisticsRepository, logger zerolog.Logger) StatisticsService {
	return &statisticsService{
		stats:  stats,
		logger: logger.With().Str("component", "statistics_service").Logger(),
		now:    time.Now,
	}
}

func (s *statisticsService) StudentStatistics(ctx context.Context, studentID uint) (dto.StudentStatisticsResponse, error) {
	if studentID == 0 {
		return dto.StudentStatisticsResponse{}, ErrStudentRequired
	}

	records, err := s.stats.ListByStudent(ctx, studentID)
	if err != nil {
		return dto.StudentStatisticsResponse{}, fmt.Errorf("list statistics for student %d: %w", studentID, err)
	}

	return dto.StudentStatisticsResponse{
		StudentID: studentID,
		Games:     aggregateStatistics(records),
	}, nil
}

func (s *statisticsService) StudentProgress(ctx context.Context, studentID uint, recentDays int) (dto.StudentProgressResponse, error) {
	if studentID == 0 {
		return dto.StudentProgressResponse{}, ErrStudentRequired
	}
	if recentDays <= 0 {
		recentDays = defaultReportWindowDays
	}

	records, err := s.stats.ListByStudent(ctx, studentID)
	if err != nil {
		return dto.StudentProgressResponse{}, fmt.Errorf("list statistics for student %d: %w", studentID, err)
	}

	totalPoints, err := s.stats.TotalPoints(ctx, studentID)
	if err != nil {
		return dto.StudentProgressResponse{}, fmt.Errorf("total points for student %d: %w", studentID, err)
	}

	windowStart := s.now().Add(-time.Duration(recentDays) * 24 * time.Hour)
	aggregates := aggregateGameWindows(records, windowStart)

	return dto.StudentProgressResponse{
		StudentID:        studentID,
		GameProgress:     aggregates,
		TotalPoints:      totalPoints,
		TotalGamesPlayed: len(aggregates),
	}, nil
}

// aggregateStatistics groups activity records by normalized game key and
// summarises each group. Records with no completion time count as zero
// seconds.
func aggregateStatistics(records []models.GameStatistic) map[string]dto.PerGameStats {
	type accumulator struct {
		completed int
		seconds   int
		points    int
		sessions  int
	}

	groups := map[string]*accumulator{}
	for _, record := range records {
		key := NormalizeGameID(record.GameID)
		group, ok := groups[key]
		if !ok {
			group = &accumulator{}
			groups[key] = group
		}

		group.sessions++
		group.points += record.Points
		if record.Completed {
			group.completed++
		}
		if record.CompletionTimeSeconds != nil {
			group.seconds += *record.CompletionTimeSeconds
		}
	}

	stats := make(map[string]dto.PerGameStats, len(groups))
	for key, group := range groups {
		stats[key] = dto.PerGameStats{
			GameID:           key,
			CompletedCount:   group.completed,
			TotalTimeSeconds: group.seconds,
			AverageScore:     roundPct(float64(group.points) / float64(group.sessions)),
		}
	}

	return stats
}

// aggregateGameWindows groups records by raw game id and computes all-time
// plus recent-window metrics per game. The window boundary is inclusive.
// Groups keep the order each game first appears in the record history.
func aggregateGameWindows(records []models.GameStatistic, windowStart time.Time) []dto.GameAggregate {
	type accumulator struct {
		aggregate   dto.GameAggregate
		completed   int
		accuracySum float64
		last        time.Time
	}

	order := make([]string, 0)
	groups := map[string]*accumulator{}
	for _, record := range records {
		group, ok := groups[record.GameID]
		if !ok {
			group = &accumulator{aggregate: dto.GameAggregate{GameID: record.GameID}}
			groups[record.GameID] = group
			order = append(order, record.GameID)
		}

		group.aggregate.TotalSessions++
		group.aggregate.TotalPoints += record.Points
		if record.MaxUnlockedLevel > group.aggregate.MaxUnlockedLevel {
			group.aggregate.MaxUnlockedLevel = record.MaxUnlockedLevel
		}
		if record.Completed {
			group.completed++
		}
		group.accuracySum += record.Accuracy()

		if !record.CreatedAt.Before(windowStart) {
			group.aggregate.RecentSessions++
			group.aggregate.RecentPoints += record.Points
		}
		if record.CreatedAt.After(group.last) {
			group.last = record.CreatedAt
		}
	}

	aggregates := make([]dto.GameAggregate, 0, len(order))
	for _, gameID := range order {
		group := groups[gameID]
		sessions := group.aggregate.TotalSessions
		group.aggregate.CompletionRatePct = roundPct(float64(group.completed) / float64(sessions) * 100)
		group.aggregate.AverageAccuracyPct = roundPct(group.accuracySum / float64(sessions) * 100)
		last := group.last
		group.aggregate.LastActivityAt = &last
		aggregates = append(aggregates, group.aggregate)
	}

	return aggregates
}

// roundPct rounds half away from zero, the convention for every integer
// display field produced by the aggregators.
func roundPct(value float64) int {
	return int(math.Round(value))
}
