package server

import (
	"modelhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListComments returns a page of comments for a model (public)
// @Summary List comments
// @Tags interactions
// @Produce json
// @Param id path string true "Model ID"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {array} models.Comment
// @Router /api/models/{id}/comments [get]
func (s *Server) ListComments(c *fiber.Ctx) error {
	modelID := parseID(c, "id")
	page, err := parsePage(c)
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListComments(c.UserContext(), service.ListCommentsInput{
		Page:    page,
		ModelID: modelID,
	})
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(comments)
}

// CreateComment creates a comment on a model (protected)
// @Summary Comment on a model
// @Tags interactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Model ID"
// @Param request body service.CreateCommentInput true "Comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/models/{id}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	modelID := parseID(c, "id")

	var req service.CreateCommentInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.UserID = currentUserID(c)
	req.ModelID = modelID

	comment, err := s.commentService.CreateComment(c.UserContext(), req)
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// DeleteComment deletes a comment (owner only)
// @Summary Delete a comment
// @Tags interactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/comments/{id} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID := parseID(c, "id")

	if err := s.commentService.DeleteComment(c.UserContext(), service.DeleteCommentInput{
		UserID:    currentUserID(c),
		CommentID: commentID,
	}); err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted"})
}
