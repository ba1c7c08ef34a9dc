package server

import (
	"modelhub/internal/models"
	"modelhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/auth/register
// @Summary User registration
// @Description Create a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.RegisterInput true "Registration request"
// @Success 201 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Router /api/auth/register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req service.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := s.userService.Register(c.UserContext(), req)
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login handles POST /api/auth/login
// @Summary User login
// @Description Authenticate and return a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.LoginInput true "Login credentials"
// @Success 200 {object} object{access_token=string,token_type=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req service.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	token, err := s.userService.Login(c.UserContext(), req)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// GetMe handles GET /api/auth/me
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /api/auth/me [get]
func (s *Server) GetMe(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}

// UpdateMe handles PUT /api/auth/me. Fields may be sent as query parameters
// or as a JSON body; query parameters win when both are present.
// @Summary Update current user
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username query string false "New username"
// @Param bio query string false "New bio"
// @Param avatar query string false "New avatar URL"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Router /api/auth/me [put]
func (s *Server) UpdateMe(c *fiber.Ctx) error {
	var req service.UpdateProfileInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
	}

	args := c.Request().URI().QueryArgs()
	for key, field := range map[string]*models.Optional[string]{
		"username": &req.Username,
		"bio":      &req.Bio,
		"avatar":   &req.Avatar,
	} {
		if args.Has(key) {
			*field = models.Some(string(args.Peek(key)))
		}
	}

	req.User = currentUser(c)
	user, err := s.userService.UpdateProfile(c.UserContext(), req)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(user)
}

// Logout handles POST /api/auth/logout. The token is revoked when Redis is
// configured; otherwise the client is expected to discard it.
// @Summary User logout
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string}
// @Router /api/auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	claims, _ := c.Locals("claims").(*service.TokenClaims)
	if err := s.credentials.Revoke(c.UserContext(), claims); err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Successfully logged out"})
}
