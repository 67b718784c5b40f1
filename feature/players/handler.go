package players

import (
	"errors"

	"bcds-membership/core/logger"
	"bcds-membership/core/reconcile"
	"bcds-membership/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PlayerResponse is the JSON shape of a player.
type PlayerResponse struct {
	ID             uint     `json:"id"`
	FullName       string   `json:"full_name"`
	Aliases        []string `json:"aliases"`
	RegistryNumber string   `json:"registry_number,omitempty"`
	BirthDate      string   `json:"birth_date,omitempty"`
	Email          string   `json:"email,omitempty"`
	Address        string   `json:"address,omitempty"`
	City           string   `json:"city,omitempty"`
}

// NewPlayerResponse renders a player for clients.
func NewPlayerResponse(p *reconcile.Player) PlayerResponse {
	aliases := p.Aliases
	if aliases == nil {
		aliases = []string{}
	}
	return PlayerResponse{
		ID:             p.ID,
		FullName:       p.FullName,
		Aliases:        aliases,
		RegistryNumber: p.RegistryNumber,
		BirthDate:      utils.FormatDate(p.BirthDate),
		Email:          p.Email,
		Address:        p.Address,
		City:           p.City,
	}
}

// Handler handles HTTP requests for players.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the player routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/players")
	group.Get("/search", h.HandleSearch)
	group.Get("/registry/:number", h.HandleByRegistryNumber)
	group.Get("/:id", h.HandleByID)
}

// HandleSearch searches players by name or alias.
// @Summary Search Players
// @Tags players
// @Produce json
// @Param q query string true "Name fragment"
// @Success 200 {array} PlayerResponse
// @Router /players/search [get]
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	found, err := h.service.Search(c.Context(), c.Query("q"))
	if err != nil {
		return h.fail(c, err)
	}

	out := make([]PlayerResponse, 0, len(found))
	for _, p := range found {
		out = append(out, NewPlayerResponse(p))
	}
	return c.JSON(out)
}

// HandleByRegistryNumber returns the player carrying a registry number.
// @Summary Get Player By Registry Number
// @Tags players
// @Produce json
// @Param number path string true "Registry number"
// @Success 200 {object} PlayerResponse
// @Router /players/registry/{number} [get]
func (h *Handler) HandleByRegistryNumber(c *fiber.Ctx) error {
	p, err := h.service.ByRegistryNumber(c.Context(), c.Params("number"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(NewPlayerResponse(p))
}

// HandleByID returns a player by id.
// @Summary Get Player
// @Tags players
// @Produce json
// @Param id path int true "Player id"
// @Success 200 {object} PlayerResponse
// @Router /players/{id} [get]
func (h *Handler) HandleByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid player id"})
	}

	p, err := h.service.ByID(c.Context(), uint(id))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(NewPlayerResponse(p))
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrPlayerNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrInvalidRegistryNumber), errors.Is(err, ErrQueryTooShort):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.service.logger, c).Error("Player lookup failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
