package handlers

import (
	"strconv"
	"time"

	"github.com/fenilmodi00/raffle-admin/models"
	"github.com/fenilmodi00/raffle-admin/services"
	"github.com/fenilmodi00/raffle-admin/shared"
	"github.com/gofiber/fiber/v2"
)

// PageHandler serves the server-rendered admin pages: the raffle list and the
// create-raffle form. The form page speaks the same intent protocol as the
// embedded admin app it replaces (intent=search_products|create_raffle).
type PageHandler struct {
	Service *services.RaffleService
	Search  *services.SearchSession
}

func NewPageHandler(service *services.RaffleService) *PageHandler {
	return &PageHandler{
		Service: service,
		Search:  services.NewSearchSession(service),
	}
}

// raffleRow is one rendered list entry. The deadline is formatted here, at
// render time, from the stored ISO instant.
type raffleRow struct {
	ID                string
	ProductTitle      string
	ProductAdminID    string
	QuantityAvailable int
	Deadline          string
	Status            string
}

// RafflesPage renders the raffle list.
func (h *PageHandler) RafflesPage(c *fiber.Ctx) error {
	raffles, err := h.Service.ListRaffles(c.Context())
	if err != nil {
		workflowErr := shared.AsWorkflowError(err)
		workflowErr.LogError("raffles_page")
		return c.Status(workflowErr.HTTPStatus()).Render("raffles", fiber.Map{
			"Error": workflowErr.UserMessage(),
		})
	}

	rows := make([]raffleRow, 0, len(raffles))
	for _, raffle := range raffles {
		deadline := raffle.Deadline
		if instant, err := raffle.DeadlineTime(); err == nil {
			deadline = instant.Format("Jan 2, 2006 15:04 MST")
		}
		rows = append(rows, raffleRow{
			ID:                raffle.ID,
			ProductTitle:      raffle.ProductTitle,
			ProductAdminID:    raffle.ProductAdminID(),
			QuantityAvailable: raffle.QuantityAvailable,
			Deadline:          deadline,
			Status:            raffle.StatusLabel(),
		})
	}

	return c.Render("raffles", fiber.Map{
		"Raffles": rows,
		"Count":   len(rows),
	})
}

// NewRafflePage renders the create form. Selecting a search result links back
// here with the product's identity in the query string.
func (h *PageHandler) NewRafflePage(c *fiber.Ctx) error {
	state := services.NewRaffleFormState()

	if productID := c.Query("product_id"); productID != "" {
		state, _ = services.ApplyCommand(state, services.ProductSelected{Product: models.Product{
			ID:     productID,
			Handle: c.Query("product_handle"),
			Title:  c.Query("product_title"),
		}})
	}

	return h.renderForm(c, state, "")
}

// SubmitRafflePage handles form posts from the create page.
func (h *PageHandler) SubmitRafflePage(c *fiber.Ctx) error {
	state := h.formStateFromRequest(c)

	switch c.FormValue("intent") {
	case "search_products":
		return h.handleSearch(c, state)
	case "create_raffle":
		return h.handleCreate(c, state)
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   "Invalid request intent",
	})
}

func (h *PageHandler) handleSearch(c *fiber.Ctx, state services.RaffleFormState) error {
	state, effect := services.ApplyCommand(state, services.SearchChanged{Term: c.FormValue("search_term")})
	searchEffect, ok := effect.(services.SearchEffect)
	if !ok {
		// Below the minimum term length: render with cleared results.
		return h.renderForm(c, state, "")
	}

	results, applied, err := h.Search.Search(c.Context(), searchEffect.Term)
	if err != nil {
		workflowErr := shared.AsWorkflowError(err)
		workflowErr.LogError("product_search")
		return h.renderForm(c, state, workflowErr.UserMessage())
	}
	if applied {
		state, _ = services.ApplySearchResults(state, searchEffect.Seq, results)
	}

	return h.renderForm(c, state, "")
}

func (h *PageHandler) handleCreate(c *fiber.Ctx, state services.RaffleFormState) error {
	state, effect := services.ApplyCommand(state, services.Submit{})
	createEffect, ok := effect.(services.CreateEffect)
	if !ok {
		return h.renderForm(c, state, "")
	}

	if _, err := h.Service.CreateRaffle(c.Context(), createEffect.Input); err != nil {
		workflowErr := shared.AsWorkflowError(err)
		workflowErr.LogError("raffle_create")
		for field, message := range workflowErr.Fields {
			state.FieldErrors[field] = message
		}
		generalMessage := ""
		if len(workflowErr.Fields) == 0 {
			generalMessage = workflowErr.UserMessage()
		}
		return h.renderForm(c, state, generalMessage)
	}

	return c.Redirect("/raffles", fiber.StatusSeeOther)
}

// formStateFromRequest rebuilds the form view-model from the posted fields by
// replaying them as commands over the initial state.
func (h *PageHandler) formStateFromRequest(c *fiber.Ctx) services.RaffleFormState {
	state := services.NewRaffleFormState()

	if quantity, err := strconv.Atoi(c.FormValue("quantity")); err == nil {
		state, _ = services.ApplyCommand(state, services.QuantityChanged{Quantity: quantity})
	}

	date := c.FormValue("deadline_date")
	timeOfDay := c.FormValue("deadline_time")
	if date != "" || timeOfDay != "" {
		if date == "" {
			date = time.Now().UTC().Format("2006-01-02")
		}
		if timeOfDay == "" {
			timeOfDay = "23:59"
		}
		state, _ = services.ApplyCommand(state, services.DeadlineChanged{Date: date, Time: timeOfDay})
	}

	state, _ = services.ApplyCommand(state, services.ActiveToggled{IsActive: c.FormValue("is_active") != "false"})

	if productID := c.FormValue("product_id"); productID != "" {
		state, _ = services.ApplyCommand(state, services.ProductSelected{Product: models.Product{
			ID:     productID,
			Handle: c.FormValue("product_handle"),
			Title:  c.FormValue("product_title"),
		}})
	}

	if term := c.FormValue("search_term"); term != "" && state.Selected == nil {
		state.SearchTerm = term
	}

	return state
}

func (h *PageHandler) renderForm(c *fiber.Ctx, state services.RaffleFormState, generalError string) error {
	return c.Render("raffle_new", fiber.Map{
		"State":        state,
		"GeneralError": generalError,
		"MinSearch":    services.MinSearchLength,
	})
}
