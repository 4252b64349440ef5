package handlers

import (
	"github.com/fenilmodi00/raffle-admin/services"
	"github.com/fenilmodi00/raffle-admin/shared"
	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Service *services.RaffleService
}

func NewProductHandler(service *services.RaffleService) *ProductHandler {
	return &ProductHandler{Service: service}
}

// SearchProducts handles type-ahead catalog search. Terms below the minimum
// length answer with an empty list without touching the Admin API.
func (h *ProductHandler) SearchProducts(c *fiber.Ctx) error {
	term := c.Query("q")

	products, err := h.Service.SearchProducts(c.Context(), term)
	if err != nil {
		workflowErr := shared.AsWorkflowError(err)
		workflowErr.LogError("product_search")
		return c.Status(workflowErr.HTTPStatus()).JSON(fiber.Map{
			"success": false,
			"error":   workflowErr.UserMessage(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
		"count":   len(products),
	})
}
