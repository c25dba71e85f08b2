package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ludika/ludika-api/internal/dto"
	"github.com/ludika/ludika-api/internal/handler"
)

type stubReportService struct {
	result dto.StudentReportResponse
	err    error
	days   int
}

func (s *stubReportService) BuildReport(ctx context.Context, studentID uint, recentDays int) (dto.StudentReportResponse, error) {
	s.days = recentDays
	return s.result, s.err
}

func TestReportHandlerReturnsReport(t *testing.T) {
	app := fiber.New()
	result := dto.StudentReportResponse{
		StudentID:    42,
		StudentName:  "Diego",
		Report:       "Doing great.",
		Provider:     "openai",
		Model:        "gpt-4o-mini",
		RecentDays:   14,
		UsedFallback: false,
	}

	svc := &stubReportService{result: result}
	h := handler.NewReportHandler(svc, zerolog.Nop())
	h.Register(app.Group("/api/v2/students"))

	req := httptest.NewRequest(http.MethodGet, "/api/v2/students/42/report?days=14", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 14, svc.days)

	var payload struct {
		Data dto.StudentReportResponse `json:"data"`
	}
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, result.Report, payload.Data.Report)
	require.False(t, payload.Data.UsedFallback)
}

func TestReportHandlerStudentNotFound(t *testing.T) {
	app := fiber.New()
	h := handler.NewReportHandler(&stubReportService{err: gorm.ErrRecordNotFound}, zerolog.Nop())
	h.Register(app.Group("/api/v2/students"))

	req := httptest.NewRequest(http.MethodGet, "/api/v2/students/42/report", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReportHandlerRejectsNegativeDays(t *testing.T) {
	app := fiber.New()
	h := handler.NewReportHandler(&stubReportService{}, zerolog.Nop())
	h.Register(app.Group("/api/v2/students"))

	req := httptest.NewRequest(http.MethodGet, "/api/v2/students/42/report?days=-3", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
