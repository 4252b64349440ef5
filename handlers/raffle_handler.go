package handlers

import (
	"github.com/fenilmodi00/raffle-admin/models"
	"github.com/fenilmodi00/raffle-admin/services"
	"github.com/fenilmodi00/raffle-admin/shared"
	"github.com/gofiber/fiber/v2"
)

type RaffleHandler struct {
	Service *services.RaffleService
}

func NewRaffleHandler(service *services.RaffleService) *RaffleHandler {
	return &RaffleHandler{Service: service}
}

// CreateRaffle persists a new raffle. Validation and remote rejections come
// back as a 400 with per-field messages; transport failures as a 500 with a
// generic message only.
func (h *RaffleHandler) CreateRaffle(c *fiber.Ctx) error {
	var input models.RaffleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	raffleID, err := h.Service.CreateRaffle(c.Context(), input)
	if err != nil {
		workflowErr := shared.AsWorkflowError(err)
		workflowErr.LogError("raffle_create")
		if len(workflowErr.Fields) > 0 {
			return c.Status(workflowErr.HTTPStatus()).JSON(fiber.Map{
				"success": false,
				"error":   workflowErr.UserMessage(),
				"errors":  workflowErr.Fields,
			})
		}
		return c.Status(workflowErr.HTTPStatus()).JSON(fiber.Map{
			"success": false,
			"error":   workflowErr.UserMessage(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"id": raffleID},
	})
}

// ListRaffles returns persisted raffles in store order.
func (h *RaffleHandler) ListRaffles(c *fiber.Ctx) error {
	raffles, err := h.Service.ListRaffles(c.Context())
	if err != nil {
		workflowErr := shared.AsWorkflowError(err)
		workflowErr.LogError("raffle_list")
		return c.Status(workflowErr.HTTPStatus()).JSON(fiber.Map{
			"success": false,
			"error":   workflowErr.UserMessage(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    raffles,
		"count":   len(raffles),
	})
}
