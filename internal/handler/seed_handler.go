package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/ludika/ludika-api/internal/dto"
	"github.com/ludika/ludika-api/internal/models"
	"github.com/ludika/ludika-api/internal/service"
	"github.com/ludika/ludika-api/internal/utils"
)

// SeedHandler exposes tooling endpoints for seeding catalog data.
type SeedHandler struct {
	service   service.SeedService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSeedHandler constructs a seed handler.
func NewSeedHandler(service service.SeedService, validate *validator.Validate, logger zerolog.Logger) *SeedHandler {
	return &SeedHandler{
		service:   service,
		validator: validate,
		logger:    logger.With().Str("component", "seed_handler").Logger(),
	}
}

// Register wires seed routes.
func (h *SeedHandler) Register(router fiber.Router) {
	router.Post("/game-levels", h.gameLevels)
	router.Post("/course-games", h.courseGames)
}

func (h *SeedHandler) gameLevels(c *fiber.Ctx) error {
	token := c.Get("X-Seed-Token")
	var payload dto.SeedGameLevelsRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	levels := make([]models.GameLevel, 0, len(payload.Items))
	for _, item := range payload.Items {
		levels = append(levels, models.GameLevel{
			GameID:          item.GameID,
			LevelNumber:     item.LevelNumber,
			ActivitiesCount: item.ActivitiesCount,
			Difficulty:      item.Difficulty,
			Config:          datatypes.JSONMap(item.Config),
		})
	}

	affected, err := h.service.SeedGameLevels(c.Context(), token, levels)
	if err != nil {
		return h.seedError(c, err)
	}

	return utils.SendSuccess(c, "game levels seeded", fiber.Map{"affected": affected})
}

func (h *SeedHandler) courseGames(c *fiber.Ctx) error {
	token := c.Get("X-Seed-Token")
	var payload dto.SeedCourseGamesRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	assignments := make([]models.CourseGame, 0, len(payload.Items))
	for _, item := range payload.Items {
		assignments = append(assignments, models.CourseGame{
			CourseID: item.CourseID,
			GameID:   item.GameID,
		})
	}

	affected, err := h.service.SeedCourseGames(c.Context(), token, assignments)
	if err != nil {
		return h.seedError(c, err)
	}

	return utils.SendSuccess(c, "course game assignments seeded", fiber.Map{"affected": affected})
}

func (h *SeedHandler) seedError(c *fiber.Ctx, err error) error {
	switch err {
	case service.ErrSeedDisabled:
		return utils.SendError(c, fiber.StatusForbidden, "seeding disabled")
	case service.ErrSeedUnauthorized:
		return utils.SendError(c, fiber.StatusForbidden, "invalid token")
	default:
		h.logger.Error().Err(err).Msg("seed operation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "seed operation failed")
	}
}
