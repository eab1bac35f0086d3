package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-admin-service/internal/service"
)

// StatsHandler serves the dashboard overview.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Overview handles GET /api/stats.
func (h *StatsHandler) Overview(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	stats, err := h.stats.Overview(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}
