package memberships

import (
	"errors"
	"time"

	"bcds-membership/core/logger"
	"bcds-membership/core/membership"
	"bcds-membership/core/reconcile"
	"bcds-membership/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// IntervalResponse is the JSON shape of a membership interval.
type IntervalResponse struct {
	ValidFrom  string `json:"valid_from"`
	ValidUntil string `json:"valid_until"`
}

// HistoryResponse is returned by GET /memberships.
type HistoryResponse struct {
	PlayerID    uint               `json:"player_id,omitempty"`
	FullName    string             `json:"full_name,omitempty"`
	Memberships []IntervalResponse `json:"memberships"`
}

// StateResponse is returned by GET /memberships/check.
type StateResponse struct {
	State membership.State `json:"state"`
	Date  string           `json:"date"`
}

// Handler handles HTTP requests for memberships.
type Handler struct {
	service *Service
	now     func() time.Time
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service, now: time.Now}
}

// RegisterRoutes registers the membership routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/memberships")
	group.Get("/", h.HandleHistory)
	group.Get("/check", h.HandleCheck)
}

// HandleCheck returns the membership state of a player on a date.
// @Summary Check Membership
// @Tags memberships
// @Produce json
// @Param firstName query string false "First name"
// @Param lastName query string false "Last name"
// @Param pdgaNumber query string false "PDGA number"
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} StateResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /memberships/check [get]
func (h *Handler) HandleCheck(c *fiber.Ctx) error {
	q, err := h.query(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if q.Date.IsZero() {
		q.Date = utils.DateOf(h.now())
	}

	state, err := h.service.CheckMembership(c.Context(), q)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(StateResponse{State: state, Date: utils.FormatDate(q.Date)})
}

// HandleHistory returns the memberships of a player.
// @Summary Membership History
// @Tags memberships
// @Produce json
// @Param firstName query string false "First name"
// @Param lastName query string false "Last name"
// @Param pdgaNumber query string false "PDGA number"
// @Success 200 {object} HistoryResponse
// @Router /memberships [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	q, err := h.query(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	p, intervals, err := h.service.History(c.Context(), q)
	if err != nil {
		return h.fail(c, err)
	}

	resp := HistoryResponse{Memberships: make([]IntervalResponse, 0, len(intervals))}
	if p != nil {
		resp.PlayerID = p.ID
		resp.FullName = p.FullName
	}
	for _, i := range intervals {
		resp.Memberships = append(resp.Memberships, IntervalResponse{
			ValidFrom:  utils.FormatDate(i.ValidFrom),
			ValidUntil: utils.FormatDate(i.ValidUntil),
		})
	}
	return c.JSON(resp)
}

func (h *Handler) query(c *fiber.Ctx) (Query, error) {
	q := Query{
		FirstName:      c.Query("firstName"),
		LastName:       c.Query("lastName"),
		RegistryNumber: c.Query("pdgaNumber"),
	}
	if raw := c.Query("date"); raw != "" {
		d, err := utils.ParseDate(raw)
		if err != nil {
			return q, err
		}
		q.Date = d
	}
	if q.RegistryNumber == "" && utils.NormalizeName(q.FirstName+" "+q.LastName) == "" {
		return q, errors.New("a name or a pdga number is required")
	}
	return q, nil
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNameMismatch),
		errors.Is(err, ErrInvalidRegistryNumber),
		errors.Is(err, reconcile.ErrAmbiguousMatch):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.service.logger, c).Error("Membership query failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
