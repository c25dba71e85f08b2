package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/ludika/ludika-api/internal/dto"
	"github.com/ludika/ludika-api/internal/models"
	"github.com/ludika/ludika-api/internal/observability"
	"github.com/ludika/ludika-api/internal/repository"
	"github.com/ludika/ludika-api/pkg/ai"
)

const (
	defaultReportWindowDays = 7

	fallbackProvider = "system"
	fallbackModel    = "static-fallback"
)

// ReportService builds narrative progress reports for students.
type ReportService interface {
	BuildReport(ctx context.Context, studentID uint, recentDays int) (dto.StudentReportResponse, error)
}

type reportService struct {
	students    repository.StudentRepository
	stats       repository.StatisticsRepository
	generator   ai.TextGenerator
	sanitizer   *bluemonday.Policy
	nats        *nats.Conn
	natsSubject string
	logger      zerolog.Logger
	now         func() time.Time
}

// NewReportService constructs the report builder. The NATS connection is
// optional; without one the generated-report event is simply not published.
func NewReportService(students repository.StudentRepository, stats repository.StatisticsRepository, generator ai.TextGenerator, natsConn *nats.Conn, natsSubject string, logger zerolog.Logger) ReportService {
	if natsSubject == "" {
		natsSubject = "ludika.report.generated"
	}
	return &reportService{
		students:    students,
		stats:       stats,
		generator:   generator,
		sanitizer:   bluemonday.StrictPolicy(),
		nats:        natsConn,
		natsSubject: natsSubject,
		logger:      logger.With().Str("component", "report_service").Logger(),
		now:         time.Now,
	}
}

func (s *reportService) BuildReport(ctx context.Context, studentID uint, recentDays int) (dto.StudentReportResponse, error) {
	if studentID == 0 {
		return dto.StudentReportResponse{}, ErrStudentRequired
	}
	if recentDays <= 0 {
		recentDays = defaultReportWindowDays
	}

	tracer := otel.Tracer("github.com/ludika/ludika-api/internal/service/report")
	ctx, span := tracer.Start(ctx, "report.build")
	span.SetAttributes(
		attribute.Int("student.id", int(studentID)),
		attribute.Int("report.recent_days", recentDays),
	)
	defer span.End()

	start := s.now()
	defer func() {
		observability.ReportLatency().Observe(time.Since(start).Seconds())
	}()

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load_student_failed")
		return dto.StudentReportResponse{}, fmt.Errorf("load student %d: %w", studentID, err)
	}

	records, err := s.stats.ListByStudent(ctx, studentID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list_statistics_failed")
		return dto.StudentReportResponse{}, fmt.Errorf("list statistics for student %d: %w", studentID, err)
	}

	label := fmt.Sprintf("student-%d", studentID)
	now := s.now()

	if len(records) == 0 {
		// A student without statistics gets a canned report. This is a
		// valid terminal state and never reaches the text generator.
		span.SetAttributes(attribute.Bool("report.fallback", true))
		return dto.StudentReportResponse{
			StudentID:    studentID,
			StudentName:  student.Name,
			Report:       fallbackReportText(label, recentDays),
			Provider:     fallbackProvider,
			Model:        fallbackModel,
			RecentDays:   recentDays,
			Metadata:     dto.ReportMetadata{},
			UsedFallback: true,
			GeneratedAt:  now,
		}, nil
	}

	windowStart := now.Add(-time.Duration(recentDays) * 24 * time.Hour)
	aggregates := aggregateGameWindows(records, windowStart)
	metadata := buildReportMetadata(records, aggregates, windowStart)
	prompt := buildReportPrompt(label, recentDays, metadata, aggregates)

	generation, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation_failed")
		return dto.StudentReportResponse{}, fmt.Errorf("generate report for student %d: %w", studentID, err)
	}

	response := dto.StudentReportResponse{
		StudentID:    studentID,
		StudentName:  student.Name,
		Report:       s.sanitizer.Sanitize(generation.Text),
		Provider:     generation.Provider,
		Model:        generation.Model,
		RecentDays:   recentDays,
		Prompt:       prompt,
		Metadata:     metadata,
		UsedFallback: false,
		GeneratedAt:  now,
	}

	s.publishGenerated(response)
	return response, nil
}

func (s *reportService) publishGenerated(response dto.StudentReportResponse) {
	if s.nats == nil {
		return
	}

	event := struct {
		StudentID   uint      `json:"student_id"`
		Provider    string    `json:"provider"`
		Model       string    `json:"model"`
		GeneratedAt time.Time `json:"generated_at"`
	}{
		StudentID:   response.StudentID,
		Provider:    response.Provider,
		Model:       response.Model,
		GeneratedAt: response.GeneratedAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.nats.Publish(s.natsSubject, payload); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish report event")
	}
}

func buildReportMetadata(records []models.GameStatistic, aggregates []dto.GameAggregate, windowStart time.Time) dto.ReportMetadata {
	metadata := dto.ReportMetadata{
		TotalRecords: len(records),
		GamesPlayed:  len(aggregates),
	}

	var accuracySum float64
	var last time.Time
	for _, record := range records {
		metadata.TotalPoints += record.Points
		metadata.TotalAttempts += record.Attempts
		if record.Completed {
			metadata.CompletedLevels++
		}
		accuracySum += record.Accuracy()
		if !record.CreatedAt.Before(windowStart) {
			metadata.RecentSessions++
			metadata.RecentPoints += record.Points
		}
		if record.CreatedAt.After(last) {
			last = record.CreatedAt
		}
	}

	if len(records) > 0 {
		metadata.AverageAccuracyPct = roundPct(accuracySum / float64(len(records)) * 100)
		metadata.LastActivityAt = &last
	}

	return metadata
}

// buildReportPrompt renders the fixed-structure prompt handed to the text
// generator. The student is identified only by an anonymous label.
func buildReportPrompt(label string, recentDays int, metadata dto.ReportMetadata, aggregates []dto.GameAggregate) string {
	builder := strings.Builder{}
	builder.WriteString(fmt.Sprintf("Write a progress report about %s for their teacher.\n\n", label))
	builder.WriteString("## Overall\n")
	builder.WriteString(fmt.Sprintf("- Recorded sessions: %d\n", metadata.TotalRecords))
	builder.WriteString(fmt.Sprintf("- Total points: %d\n", metadata.TotalPoints))
	builder.WriteString(fmt.Sprintf("- Completed activities: %d\n", metadata.CompletedLevels))
	builder.WriteString(fmt.Sprintf("- Average accuracy: %d%%\n", metadata.AverageAccuracyPct))
	builder.WriteString(fmt.Sprintf("- Total attempts: %d\n", metadata.TotalAttempts))
	if metadata.LastActivityAt != nil {
		builder.WriteString(fmt.Sprintf("- Last activity: %s\n", metadata.LastActivityAt.UTC().Format(time.RFC3339)))
	}

	builder.WriteString("\n## Per game\n")
	for _, aggregate := range aggregates {
		builder.WriteString(fmt.Sprintf(
			"- %s: %d sessions, %d points, max level %d, completion rate %d%%, accuracy %d%%\n",
			aggregate.GameID,
			aggregate.TotalSessions,
			aggregate.TotalPoints,
			aggregate.MaxUnlockedLevel,
			aggregate.CompletionRatePct,
			aggregate.AverageAccuracyPct,
		))
	}

	builder.WriteString(fmt.Sprintf("\n## Last %d days\n", recentDays))
	builder.WriteString(fmt.Sprintf("- Sessions: %d\n", metadata.RecentSessions))
	builder.WriteString(fmt.Sprintf("- Points: %d\n", metadata.RecentPoints))

	builder.WriteString("\nWrite two or three short paragraphs in plain prose. Mention strengths, recent activity, and one suggestion.")
	return builder.String()
}

func fallbackReportText(label string, recentDays int) string {
	return fmt.Sprintf(
		"%s has no recorded game activity yet, so there is nothing to summarise for the last %d days. Once they start playing their assigned games, this report will describe their progress.",
		label, recentDays,
	)
}
