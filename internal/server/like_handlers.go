package server

import (
	"github.com/gofiber/fiber/v2"
)

// LikeModel handles POST /api/models/{id}/like
// @Summary Like a model
// @Tags interactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Model ID"
// @Success 201 {object} models.Like
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/models/{id}/like [post]
func (s *Server) LikeModel(c *fiber.Ctx) error {
	modelID := parseID(c, "id")

	like, err := s.likeService.Like(c.UserContext(), currentUserID(c), modelID)
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(like)
}

// UnlikeModel handles DELETE /api/models/{id}/like
// @Summary Remove a like
// @Tags interactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Model ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /api/models/{id}/like [delete]
func (s *Server) UnlikeModel(c *fiber.Ctx) error {
	modelID := parseID(c, "id")

	if err := s.likeService.Unlike(c.UserContext(), currentUserID(c), modelID); err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Like removed"})
}

// LikeStatus handles GET /api/models/{id}/like/status
// @Summary Like status
// @Tags interactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Model ID"
// @Success 200 {object} object{liked=bool}
// @Router /api/models/{id}/like/status [get]
func (s *Server) LikeStatus(c *fiber.Ctx) error {
	modelID := parseID(c, "id")

	liked, err := s.likeService.Status(c.UserContext(), currentUserID(c), modelID)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}
