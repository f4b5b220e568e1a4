// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"hearth/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetLeaderboard handles GET /api/leaderboard
// It returns the top karma earners over the rolling window, ranked from 1.
func (s *Server) GetLeaderboard(c *fiber.Ctx) error {
	entries, err := s.leaderboardService.Top(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"leaderboard": entries,
	})
}
