package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/ludika/ludika-api/internal/service"
	"github.com/ludika/ludika-api/internal/utils"
)

// ProgressHandler exposes the per-course progress rollup endpoint.
type ProgressHandler struct {
	service service.ProgressService
	logger  zerolog.Logger
}

// NewProgressHandler creates a new handler instance.
func NewProgressHandler(service service.ProgressService, logger zerolog.Logger) *ProgressHandler {
	return &ProgressHandler{
		service: service,
		logger:  logger.With().Str("component", "progress_handler").Logger(),
	}
}

// Register attaches the course progress endpoint.
func (h *ProgressHandler) Register(router fiber.Router) {
	router.Get("/:courseID/progress", h.courseProgress)
}

func (h *ProgressHandler) courseProgress(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "courseID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course id")
	}

	progress, err := h.service.CourseProgress(c.Context(), courseID)
	if err != nil {
		if errors.Is(err, service.ErrCourseRequired) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "course not found")
		}
		h.logger.Error().Err(err).Uint("course_id", courseID).Msg("failed to compute course progress")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to compute course progress")
	}

	return utils.SendSuccess(c, "course progress retrieved", progress)
}
