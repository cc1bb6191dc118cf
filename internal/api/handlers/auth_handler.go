package handlers

import (
	"errors"
	"strings"

	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/dto"
	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// ValidateEmail godoc
// @Summary Check whether an email is still available
// @Tags auth
// @Produce json
// @Param email query string true "Email to check"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Router /auth/validate-email [get]
func (h *AuthHandler) ValidateEmail(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email query parameter is required",
		})
	}

	available, err := h.authService.EmailAvailable(c.Context(), email)
	if err != nil {
		h.logger.Error("Email lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Email lookup failed",
		})
	}
	if !available {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email already registered",
		})
	}

	return c.JSON(fiber.Map{"available": true})
}

// SignUp godoc
// @Summary Register a new user with profile and financial details
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignUpRequest true "Signup request"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /auth/signup [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email and password are required",
		})
	}

	if err := h.authService.Register(c.Context(), &req); err != nil {
		if errors.Is(err, service.ErrUserExists) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Email already registered",
			})
		}
		h.logger.Error("Registration failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Registration failed",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
	})
}

// SignIn godoc
// @Summary Exchange email and password for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignInRequest true "Signin request"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} map[string]string
// @Router /auth/signin [post]
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.authService.Login(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid credentials",
			})
		}
		h.logger.Error("Login failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Login failed",
		})
	}

	return c.JSON(resp)
}
