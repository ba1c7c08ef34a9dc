package server

import (
	"modelhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListModels handles GET /api/models
// @Summary List models
// @Tags models
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param category query string false "Category filter"
// @Param search query string false "Case-insensitive match on name or description"
// @Param sort query string false "latest, popular or downloads" default(latest)
// @Success 200 {object} models.ModelList
// @Failure 400 {object} models.ErrorResponse
// @Router /api/models [get]
func (s *Server) ListModels(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return nil
	}

	list, err := s.modelService.ListModels(c.UserContext(), service.ListModelsInput{
		Page:     page,
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
	})
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(list)
}

// GetModel handles GET /api/models/{id}. Every call counts as a view.
// @Summary Get a model
// @Tags models
// @Produce json
// @Param id path string true "Model ID"
// @Success 200 {object} models.Model
// @Failure 404 {object} models.ErrorResponse
// @Router /api/models/{id} [get]
func (s *Server) GetModel(c *fiber.Ctx) error {
	id := parseID(c, "id")

	model, err := s.modelService.GetModel(c.UserContext(), id)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(model)
}

// CreateModel handles POST /api/models
// @Summary Create a model
// @Tags models
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateModelInput true "Model"
// @Success 201 {object} models.Model
// @Failure 400 {object} models.ErrorResponse
// @Router /api/models [post]
func (s *Server) CreateModel(c *fiber.Ctx) error {
	var req service.CreateModelInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.AuthorID = currentUserID(c)

	model, err := s.modelService.CreateModel(c.UserContext(), req)
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(model)
}

// UpdateModel handles PUT /api/models/{id}
// @Summary Update a model
// @Description Only fields present in the body are changed; null clears optional fields.
// @Tags models
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Model ID"
// @Param request body service.ModelPatch true "Fields to change"
// @Success 200 {object} models.Model
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/models/{id} [put]
func (s *Server) UpdateModel(c *fiber.Ctx) error {
	id := parseID(c, "id")

	var patch service.ModelPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "Invalid request body")
	}

	model, err := s.modelService.UpdateModel(c.UserContext(), service.UpdateModelInput{
		UserID:  currentUserID(c),
		ModelID: id,
		Patch:   patch,
	})
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(model)
}

// DeleteModel handles DELETE /api/models/{id}. Comments and likes go with it.
// @Summary Delete a model
// @Tags models
// @Produce json
// @Security BearerAuth
// @Param id path string true "Model ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/models/{id} [delete]
func (s *Server) DeleteModel(c *fiber.Ctx) error {
	id := parseID(c, "id")

	if err := s.modelService.DeleteModel(c.UserContext(), service.DeleteModelInput{
		UserID:  currentUserID(c),
		ModelID: id,
	}); err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Model deleted"})
}

// DownloadModel handles POST /api/models/{id}/download
// @Summary Download a model
// @Tags models
// @Produce json
// @Param id path string true "Model ID"
// @Success 200 {object} models.Download
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/models/{id}/download [post]
func (s *Server) DownloadModel(c *fiber.Ctx) error {
	id := parseID(c, "id")

	download, err := s.modelService.DownloadModel(c.UserContext(), id)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(download)
}
