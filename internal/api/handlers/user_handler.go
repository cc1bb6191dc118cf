package handlers

import (
	"errors"

	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/dto"
	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *service.UserService
	logger      *zap.Logger
}

func NewUserHandler(userService *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// getUserEmail returns the authenticated subject placed by the auth middleware.
func getUserEmail(c *fiber.Ctx) string {
	email, _ := c.Locals("userEmail").(string)
	return email
}

// Home godoc
// @Summary Greet the authenticated user
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /home [get]
func (h *UserHandler) Home(c *fiber.Ctx) error {
	user, err := h.userService.GetProfile(c.Context(), getUserEmail(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		h.logger.Error("Profile lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Profile lookup failed",
		})
	}

	return c.JSON(fiber.Map{
		"email": user.Email,
	})
}

// GetUserData godoc
// @Summary Fetch the authenticated user's profile
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} map[string]string
// @Router /getUserData [get]
func (h *UserHandler) GetUserData(c *fiber.Ctx) error {
	user, err := h.userService.GetProfile(c.Context(), getUserEmail(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		h.logger.Error("Profile lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Profile lookup failed",
		})
	}

	return c.JSON(user)
}

// UpdateUserData godoc
// @Summary Patch the authenticated user's profile
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} map[string]string
// @Router /updateUserData [put]
func (h *UserHandler) UpdateUserData(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, err := h.userService.UpdateProfile(c.Context(), getUserEmail(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyUpdate):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "No fields to update",
			})
		case errors.Is(err, service.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		h.logger.Error("Profile update failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Profile update failed",
		})
	}

	return c.JSON(user)
}
