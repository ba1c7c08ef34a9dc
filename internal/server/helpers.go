package server

import (
	"errors"
	"strconv"

	"modelhub/internal/models"
	"modelhub/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// respond writes err with the status matching its AppError code.
func respond(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}

func badRequest(c *fiber.Ctx, message string) error {
	return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError(message))
}

// parseID extracts a route parameter by name as a UUID. A value that is not a
// UUID cannot name any row, so it maps to uuid.Nil and the lookup that follows
// answers as it would for any unknown ID.
func parseID(c *fiber.Ctx, param string) uuid.UUID {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil
	}
	return id
}

// queryInt reads an integer query parameter. Unlike c.QueryInt it rejects
// values that are present but not numbers.
func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		_ = badRequest(c, key+" must be an integer")
		return 0, errResponseWritten
	}
	return v, nil
}

// parsePage reads the page and page_size query parameters.
func parsePage(c *fiber.Ctx) (service.Page, error) {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return service.Page{}, err
	}
	size, err := queryInt(c, "page_size", service.DefaultPageSize)
	if err != nil {
		return service.Page{}, err
	}
	return service.Page{Page: page, PageSize: size}, nil
}

// currentUser returns the user stored by AuthRequired.
func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}

func currentUserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals("userID").(uuid.UUID)
	return id
}
