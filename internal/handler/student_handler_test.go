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

	"github.com/ludika/ludika-api/internal/dto"
	"github.com/ludika/ludika-api/internal/handler"
)

type stubStatisticsService struct {
	statistics dto.StudentStatisticsResponse
	progress   dto.StudentProgressResponse
	err        error
}

func (s stubStatisticsService) StudentStatistics(context.Context, uint) (dto.StudentStatisticsResponse, error) {
	return s.statistics, s.err
}

func (s stubStatisticsService) StudentProgress(context.Context, uint, int) (dto.StudentProgressResponse, error) {
	return s.progress, s.err
}

func TestStudentHandlerStatistics(t *testing.T) {
	app := fiber.New()
	statistics := dto.StudentStatisticsResponse{
		StudentID: 42,
		Games: map[string]dto.PerGameStats{
			"ordenamiento": {GameID: "ordenamiento", CompletedCount: 2, AverageScore: 90},
		},
	}

	h := handler.NewStudentHandler(stubStatisticsService{statistics: statistics}, zerolog.Nop())
	h.Register(app.Group("/api/v2/students"))

	req := httptest.NewRequest(http.MethodGet, "/api/v2/students/42/statistics", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Data dto.StudentStatisticsResponse `json:"data"`
	}
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, statistics, payload.Data)
}

func TestStudentHandlerProgressRejectsBadDays(t *testing.T) {
	app := fiber.New()
	h := handler.NewStudentHandler(stubStatisticsService{}, zerolog.Nop())
	h.Register(app.Group("/api/v2/students"))

	req := httptest.NewRequest(http.MethodGet, "/api/v2/students/42/progress?days=x", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStudentHandlerInvalidStudentID(t *testing.T) {
	app := fiber.New()
	h := handler.NewStudentHandler(stubStatisticsService{}, zerolog.Nop())
	h.Register(app.Group("/api/v2/students"))

	req := httptest.NewRequest(http.MethodGet, "/api/v2/students/nope/statistics", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
