package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/ludika/ludika-api/internal/dto"
	"github.com/ludika/ludika-api/internal/models"
	"github.com/ludika/ludika-api/internal/observability"
	"github.com/ludika/ludika-api/internal/repository"
)

// ErrCourseRequired indicates the caller omitted the course identifier.
var ErrCourseRequired = errors.New("course id is required")

// courseProgressFanout bounds how many game rollups run at once.
const courseProgressFanout = 4

// ProgressService computes per-course, per-game class progress rollups.
type ProgressService interface {
	CourseProgress(ctx context.Context, courseID uint) (dto.CourseProgressResponse, error)
}

type progressService struct {
	students repository.StudentRepository
	courses  repository.CourseRepository
	levels   repository.GameLevelRepository
	stats    repository.StatisticsRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewProgressService constructs the course progress aggregator.
func NewProgressService(students repository.StudentRepository, courses repository.CourseRepository, levels repository.GameLevelRepository, stats repository.StatisticsRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) ProgressService {
	return &progressService{
		students: students,
		courses:  courses,
		levels:   levels,
		stats:    stats,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "progress_service").Logger(),
	}
}

func (s *progressService) CourseProgress(ctx context.Context, courseID uint) (dto.CourseProgressResponse, error) {
	if courseID == 0 {
		return dto.CourseProgressResponse{}, ErrCourseRequired
	}

	cacheKey := fmt.Sprintf("progress:course:%d", courseID)
	tracer := otel.Tracer("github.com/ludika/ludika-api/internal/service/progress")
	ctx, span := tracer.Start(ctx, "progress.course")
	span.SetAttributes(attribute.Int("course.id", int(courseID)))
	defer span.End()

	start := time.Now()
	defer func() {
		observability.ProgressLatency().Observe(time.Since(start).Seconds())
	}()

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.CourseProgressResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				span.SetAttributes(attribute.Bool("progress.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read course progress cache")
		}
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load_course_failed")
		return dto.CourseProgressResponse{}, fmt.Errorf("load course %d: %w", courseID, err)
	}

	students, err := s.students.ListByCourse(ctx, course.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list_students_failed")
		return dto.CourseProgressResponse{}, fmt.Errorf("list students for course %d: %w", courseID, err)
	}

	games, err := s.courses.ListGames(ctx, course.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list_games_failed")
		return dto.CourseProgressResponse{}, fmt.Errorf("list games for course %d: %w", courseID, err)
	}

	span.SetAttributes(
		attribute.Int("progress.students", len(students)),
		attribute.Int("progress.games", len(games)),
	)

	response := dto.CourseProgressResponse{
		CourseID:       course.ID,
		TotalStudents:  len(students),
		ProgressByGame: make([]dto.GameProgress, len(games)),
	}

	// Each game reads its own data and writes only its own slot, so the
	// rollups can run concurrently.
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(courseProgressFanout)
	for i, assignment := range games {
		i, assignment := i, assignment
		group.Go(func() error {
			progress, err := s.gameRollup(groupCtx, assignment.GameID, students)
			if err != nil {
				return err
			}
			response.ProgressByGame[i] = progress
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "game_rollup_failed")
		return dto.CourseProgressResponse{}, err
	}

	if s.cache != nil {
		payload, err := json.Marshal(response)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store course progress cache")
			}
		}
	}

	return response, nil
}

// gameRollup computes the class rollup for one game. A game with no content
// reports zero progress without touching any per-student data.
func (s *progressService) gameRollup(ctx context.Context, gameID string, students []models.Student) (dto.GameProgress, error) {
	progress := dto.GameProgress{
		GameID:        NormalizeGameID(gameID),
		TotalStudents: len(students),
	}

	totalActivities, err := s.levels.TotalActivities(ctx, gameID)
	if err != nil {
		return dto.GameProgress{}, fmt.Errorf("total activities for game %s: %w", gameID, err)
	}
	if totalActivities == 0 || len(students) == 0 {
		return progress, nil
	}

	var sum float64
	for _, outcome := range s.collectGamePercents(ctx, students, gameID, totalActivities) {
		if outcome.err != nil {
			// One broken student must not sink the whole class rollup;
			// the student counts as having no progress.
			s.logger.Warn().Err(outcome.err).
				Uint("student_id", outcome.studentID).
				Str("game_id", gameID).
				Msg("failed to compute student progress, substituting zero")
			continue
		}
		sum += outcome.percent
		if outcome.percent > 0 {
			progress.StudentsWithProgress++
		}
	}

	// The denominator is the whole roster, errored students included.
	progress.PercentComplete = int(math.Round(sum / float64(len(students))))
	return progress, nil
}

// studentOutcome records one student's computed percentage or the failure
// that was recovered in its place.
type studentOutcome struct {
	studentID uint
	percent   float64
	err       error
}

func (s *progressService) collectGamePercents(ctx context.Context, students []models.Student, gameID string, totalActivities int) []studentOutcome {
	outcomes := make([]studentOutcome, 0, len(students))
	for _, student := range students {
		percent, err := s.studentGamePercent(ctx, student.ID, gameID, totalActivities)
		outcomes = append(outcomes, studentOutcome{studentID: student.ID, percent: percent, err: err})
	}
	return outcomes
}

// studentGamePercent computes one student's completion percentage for one
// game. totalActivities must be positive; callers guard the zero case.
func (s *progressService) studentGamePercent(ctx context.Context, studentID uint, gameID string, totalActivities int) (float64, error) {
	position, err := s.stats.LastCompletedActivity(ctx, studentID, gameID)
	if err != nil {
		return 0, fmt.Errorf("last completed activity: %w", err)
	}
	if position == nil {
		// Nothing completed yet is a valid state, not an error.
		return 0, nil
	}

	levels, err := s.levels.ListByGame(ctx, gameID)
	if err != nil {
		return 0, fmt.Errorf("list levels for game %s: %w", gameID, err)
	}

	index := absoluteActivityIndex(levels, *position)
	percent := float64(index) / float64(totalActivities) * 100
	if percent > 100 {
		// Stale level definitions must never report more than 100%.
		percent = 100
	}

	return percent, nil
}

// absoluteActivityIndex returns the 1-based count of activities reached when
// the game's levels are walked in ascending level order up to and including
// the target position. Levels past the target are never visited. If the
// target level is missing from the list the accumulated sum is returned
// as-is. Duplicate level numbers are a caller error and the result for them
// is undefined.
func absoluteActivityIndex(levels []models.GameLevel, target models.ActivityPosition) int {
	ordered := make([]models.GameLevel, len(levels))
	copy(ordered, levels)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].LevelNumber < ordered[j].LevelNumber
	})

	index := 0
	for _, level := range ordered {
		if level.LevelNumber < target.Level {
			index += level.ActivitiesCount
			continue
		}
		if level.LevelNumber == target.Level {
			return index + target.Activity
		}
		break
	}

	return index
}
