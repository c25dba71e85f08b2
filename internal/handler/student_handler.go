package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ludika/ludika-api/internal/service"
	"github.com/ludika/ludika-api/internal/utils"
)

// StudentHandler exposes per-student statistics and progress endpoints.
type StudentHandler struct {
	service service.StatisticsService
	logger  zerolog.Logger
}

// NewStudentHandler creates a new handler instance.
func NewStudentHandler(service service.StatisticsService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		service: service,
		logger:  logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register attaches the student statistics endpoints.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Get("/:studentID/statistics", h.statistics)
	router.Get("/:studentID/progress", h.progress)
}

func (h *StudentHandler) statistics(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	statistics, err := h.service.StudentStatistics(c.Context(), studentID)
	if err != nil {
		if errors.Is(err, service.ErrStudentRequired) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Uint("student_id", studentID).Msg("failed to aggregate statistics")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to aggregate statistics")
	}

	return utils.SendSuccess(c, "student statistics retrieved", statistics)
}

func (h *StudentHandler) progress(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	days, err := parseQueryInt(c, "days")
	if err != nil || days < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid days parameter")
	}

	progress, err := h.service.StudentProgress(c.Context(), studentID, days)
	if err != nil {
		if errors.Is(err, service.ErrStudentRequired) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Uint("student_id", studentID).Msg("failed to compute student progress")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to compute student progress")
	}

	return utils.SendSuccess(c, "student progress retrieved", progress)
}
