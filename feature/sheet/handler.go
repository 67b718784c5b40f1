package sheet

import (
	"errors"

	"bcds-membership/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the sheet import.
type Handler struct {
	importer *Importer
}

// NewHandler creates a new HTTP handler.
func NewHandler(importer *Importer) *Handler {
	return &Handler{importer: importer}
}

// RegisterRoutes registers the sheet routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sheet")
	group.Post("/import", h.HandleImport)
	group.Get("/import/last", h.HandleLast)
}

// HandleImport imports the membership sheet.
// @Summary Import Membership Sheet
// @Description Reads the sheet export and reconciles every new payment. Refused within the reload latency unless forced.
// @Tags sheet
// @Produce json
// @Param force query boolean false "Ignore the reload latency"
// @Success 200 {object} JobStats
// @Failure 429 {object} map[string]string "Too Many Requests"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /sheet/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.importer.logger, c)
	force := c.QueryBool("force", false)

	stats, err := h.importer.Run(c.Context(), force)
	if errors.Is(err, ErrReloadThrottled) {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Sheet import failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
			"stats": stats,
		})
	}
	return c.JSON(stats)
}

// HandleLast returns the stats of the last import.
// @Summary Last Import
// @Tags sheet
// @Produce json
// @Success 200 {object} JobStats
// @Router /sheet/import/last [get]
func (h *Handler) HandleLast(c *fiber.Ctx) error {
	last := h.importer.Last()
	if last == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no import has run yet"})
	}
	return c.JSON(last)
}
