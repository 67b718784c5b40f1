package tournament

import (
	"errors"

	"bcds-membership/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for tournaments.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the tournament routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/tournaments")
	group.Get("/:id", h.HandleTournament)
	group.Get("/:id/report", h.HandleReport)
}

// HandleTournament returns a tournament as the registry knows it.
// @Summary Get Tournament
// @Tags tournaments
// @Produce json
// @Param id path string true "Tournament ID"
// @Success 200 {object} pdga.Tournament
// @Failure 404 {object} map[string]string "Not Found"
// @Router /tournaments/{id} [get]
func (h *Handler) HandleTournament(c *fiber.Ctx) error {
	t, err := h.service.Tournament(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(t)
}

// HandleReport returns the membership state of every player of a tournament.
// @Summary Tournament Membership Report
// @Tags tournaments
// @Produce json
// @Param id path string true "Tournament ID"
// @Success 200 {object} Report
// @Failure 404 {object} map[string]string "Not Found"
// @Router /tournaments/{id}/report [get]
func (h *Handler) HandleReport(c *fiber.Ctx) error {
	report, err := h.service.Report(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(report)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrTournamentNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.service.logger, c).Error("Tournament request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
