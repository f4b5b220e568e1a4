// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"hearth/internal/models"

	"github.com/gofiber/fiber/v2"
)

// likeRequest is the JSON body for POST/DELETE /api/likes. Exactly one of
// post_id or comment_id must be set.
type likeRequest struct {
	PostID    uint `json:"post_id,omitempty"`
	CommentID uint `json:"comment_id,omitempty"`
}

// target converts the request body into a like target. It returns an invalid
// target when zero or both IDs are set; callers reject that as a 400.
func (r likeRequest) target() models.LikeTarget {
	if r.PostID != 0 && r.CommentID != 0 {
		return models.LikeTarget{}
	}
	if r.PostID != 0 {
		return models.PostTarget(r.PostID)
	}
	if r.CommentID != 0 {
		return models.CommentTarget(r.CommentID)
	}
	return models.LikeTarget{}
}

// CreateLike handles POST /api/likes
func (s *Server) CreateLike(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req likeRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	like, err := s.likeService.Like(ctx, userID, req.target())
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(like)
}

// DeleteLike handles DELETE /api/likes
func (s *Server) DeleteLike(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req likeRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.likeService.Unlike(ctx, userID, req.target()); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
