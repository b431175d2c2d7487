package handlers

import (
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/repository"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	logs repository.SystemLogRepository
}

func NewAdminHandler(logs repository.SystemLogRepository) *AdminHandler {
	return &AdminHandler{logs: logs}
}

// Logs lists persisted system logs, newest first.
// Query: level (e.g. ERROR), since (RFC3339), limit (max 200).
func (h *AdminHandler) Logs(c *fiber.Ctx) error {
	filter := repository.SystemLogFilter{
		Level: strings.ToUpper(c.Query("level")),
		Limit: c.QueryInt("limit", 50),
	}
	if raw := c.Query("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(c, "since must be an RFC3339 timestamp")
		}
		filter.Since = since
	}

	logs, err := h.logs.Recent(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err, nil)
	}
	return c.JSON(logs)
}
