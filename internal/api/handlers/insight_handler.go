package handlers

import (
	"errors"
	"regexp"
	"time"

	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/dto"
	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/models"
	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

type InsightHandler struct {
	insightService *service.InsightService
	logger         *zap.Logger
}

func NewInsightHandler(insightService *service.InsightService, logger *zap.Logger) *InsightHandler {
	return &InsightHandler{
		insightService: insightService,
		logger:         logger,
	}
}

// SetGoal godoc
// @Summary Set or replace the monthly financial goal
// @Tags insights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GoalRequest true "Goal description and month"
// @Success 201 {object} dto.GoalResponse
// @Failure 400 {object} map[string]string
// @Router /goals [post]
func (h *InsightHandler) SetGoal(c *fiber.Ctx) error {
	var req dto.GoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.GoalDescription == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "goal_description is required",
		})
	}
	if !monthPattern.MatchString(req.Month) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "month must be in YYYY-MM format",
		})
	}

	goal, err := h.insightService.SetGoal(c.Context(), getUserEmail(c), &req)
	if err != nil {
		h.logger.Error("Goal upsert failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save goal",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(goalResponse(goal))
}

// GetExpenses godoc
// @Summary List the user's stored bill items
// @Tags insights
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User id (must match the token subject)"
// @Success 200 {array} dto.ExpenseItem
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /expenses/{user_id} [get]
func (h *InsightHandler) GetExpenses(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	if userID != getUserEmail(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Cannot access another user's expenses",
		})
	}

	items, err := h.insightService.ListExpenses(c.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoExpenses) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No expenses found",
			})
		}
		h.logger.Error("Expense listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Expense listing failed",
		})
	}

	expenses := make([]dto.ExpenseItem, 0, len(items))
	for _, item := range items {
		expenses = append(expenses, dto.ExpenseItem{
			StoreName: item.StoreName,
			BillDate:  item.BillDate,
			ItemName:  item.ItemName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Category:  string(item.Category),
		})
	}
	return c.JSON(expenses)
}

// GetInsights godoc
// @Summary Generate spending insights against the current month's goal
// @Tags insights
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User id (must match the token subject)"
// @Success 200 {object} dto.InsightResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /insights/{user_id} [get]
func (h *InsightHandler) GetInsights(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	if userID != getUserEmail(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Cannot access another user's insights",
		})
	}

	resp, err := h.insightService.GenerateInsights(c.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGoalNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No goal set for the current month. Please set a goal first.",
			})
		case errors.Is(err, service.ErrNoExpenses):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No expenses found",
			})
		case errors.Is(err, service.ErrNotConfigured):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "AI service is not configured",
			})
		}
		h.logger.Error("Insight generation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Insight generation failed",
		})
	}

	return c.JSON(resp)
}

func goalResponse(goal *models.Goal) dto.GoalResponse {
	return dto.GoalResponse{
		ID:              goal.ID.String(),
		UserID:          goal.UserID,
		GoalDescription: goal.GoalDescription,
		Month:           goal.Month,
		CreatedAt:       goal.CreatedAt.Format(time.RFC3339),
	}
}
