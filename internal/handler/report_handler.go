package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/ludika/ludika-api/internal/service"
	"github.com/ludika/ludika-api/internal/utils"
)

// ReportHandler exposes the narrative progress report endpoint.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler creates a new handler instance.
func NewReportHandler(service service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("component", "report_handler").Logger(),
	}
}

// Register attaches the report endpoint.
func (h *ReportHandler) Register(router fiber.Router) {
	router.Get("/:studentID/report", h.report)
}

func (h *ReportHandler) report(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	days, err := parseQueryInt(c, "days")
	if err != nil || days < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid days parameter")
	}

	report, err := h.service.BuildReport(c.Context(), studentID, days)
	if err != nil {
		if errors.Is(err, service.ErrStudentRequired) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		h.logger.Error().Err(err).Uint("student_id", studentID).Msg("failed to build report")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build report")
	}

	return utils.SendSuccess(c, "report generated", report)
}
