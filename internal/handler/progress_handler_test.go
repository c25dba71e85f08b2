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

type stubProgressService struct {
	result dto.CourseProgressResponse
	err    error
}

func (s stubProgressService) CourseProgress(context.Context, uint) (dto.CourseProgressResponse, error) {
	return s.result, s.err
}

func TestProgressHandlerCourseProgress(t *testing.T) {
	app := fiber.New()
	result := dto.CourseProgressResponse{
		CourseID:      5,
		TotalStudents: 2,
		ProgressByGame: []dto.GameProgress{
			{GameID: "ordenamiento", PercentComplete: 20, TotalStudents: 2, StudentsWithProgress: 1},
		},
	}

	h := handler.NewProgressHandler(stubProgressService{result: result}, zerolog.Nop())
	h.Register(app.Group("/api/v2/courses"))

	req := httptest.NewRequest(http.MethodGet, "/api/v2/courses/5/progress", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Data dto.CourseProgressResponse `json:"data"`
	}
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, result, payload.Data)
}

func TestProgressHandlerInvalidCourseID(t *testing.T) {
	app := fiber.New()
	h := handler.NewProgressHandler(stubProgressService{}, zerolog.Nop())
	h.Register(app.Group("/api/v2/courses"))

	req := httptest.NewRequest(http.MethodGet, "/api/v2/courses/abc/progress", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProgressHandlerCourseNotFound(t *testing.T) {
	app := fiber.New()
	h := handler.NewProgressHandler(stubProgressService{err: gorm.ErrRecordNotFound}, zerolog.Nop())
	h.Register(app.Group("/api/v2/courses"))

	req := httptest.NewRequest(http.MethodGet, "/api/v2/courses/5/progress", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
