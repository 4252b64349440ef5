package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenilmodi00/raffle-admin/models"
	"github.com/fenilmodi00/raffle-admin/services"
	"github.com/fenilmodi00/raffle-admin/shared"
)

// stubPlatform is an in-memory store standing in for the Admin API.
type stubPlatform struct {
	mu            sync.Mutex
	searchCalls   int
	searchResults []models.Product
	searchErr     error
	createErr     error
	created       []models.Metaobject
	nextID        int
}

func (s *stubPlatform) SearchProducts(ctx context.Context, term string) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchCalls++
	return s.searchResults, s.searchErr
}

func (s *stubPlatform) CreateMetaobject(ctx context.Context, objectType string, fields []models.MetaobjectField) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return "", s.createErr
	}
	s.nextID++
	id := fmt.Sprintf("gid://shopify/Metaobject/%d", s.nextID)
	s.created = append(s.created, models.Metaobject{ID: id, Fields: fields})
	return id, nil
}

func (s *stubPlatform) ListMetaobjects(ctx context.Context, objectType string, first int) ([]models.Metaobject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Metaobject(nil), s.created...), nil
}

func newTestApp(platform *stubPlatform) *fiber.App {
	service := services.NewRaffleService(platform, nil, nil)

	app := fiber.New()
	productHandler := NewProductHandler(service)
	raffleHandler := NewRaffleHandler(service)
	pageHandler := NewPageHandler(service)

	app.Get("/api/v1/products/search", productHandler.SearchProducts)
	app.Get("/api/v1/raffles", raffleHandler.ListRaffles)
	app.Post("/api/v1/raffles", raffleHandler.CreateRaffle)
	app.Post("/raffles/new", pageHandler.SubmitRafflePage)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, target, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := app.Test(request)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(response.Body).Decode(&decoded))
	return response, decoded
}

func validCreatePayload() map[string]interface{} {
	return map[string]interface{}{
		"product_id":         "gid://shopify/Product/1234567890",
		"product_handle":     "the-collection-snowboard",
		"product_title":      "The Collection Snowboard",
		"quantity_available": 5,
		"deadline":           "2025-12-31T23:59:00Z",
		"is_active":          true,
	}
}

func TestCreateRaffleReturns201(t *testing.T) {
	platform := &stubPlatform{}
	app := newTestApp(platform)

	response, body := doJSON(t, app, http.MethodPost, "/api/v1/raffles", validCreatePayload())

	assert.Equal(t, fiber.StatusCreated, response.StatusCode)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "gid://shopify/Metaobject/1", data["id"])
}

func TestCreateRaffleValidationReturns400WithFieldErrors(t *testing.T) {
	platform := &stubPlatform{}
	app := newTestApp(platform)

	payload := validCreatePayload()
	payload["product_id"] = ""
	payload["quantity_available"] = 0

	response, body := doJSON(t, app, http.MethodPost, "/api/v1/raffles", payload)

	assert.Equal(t, fiber.StatusBadRequest, response.StatusCode)
	assert.Equal(t, false, body["success"])

	fieldErrors := body["errors"].(map[string]interface{})
	assert.Contains(t, fieldErrors, "productId")
	assert.Contains(t, fieldErrors, "quantityAvailable")
	assert.Empty(t, platform.created, "invalid input must not reach the store")
}

func TestCreateRaffleRemoteRejectionReturns400(t *testing.T) {
	platform := &stubPlatform{
		createErr: shared.NewRemoteRejection(map[string]string{
			"quantity_available": "Value must be a positive integer",
		}),
	}
	app := newTestApp(platform)

	response, body := doJSON(t, app, http.MethodPost, "/api/v1/raffles", validCreatePayload())

	assert.Equal(t, fiber.StatusBadRequest, response.StatusCode)
	fieldErrors := body["errors"].(map[string]interface{})
	assert.Equal(t, "Value must be a positive integer", fieldErrors["quantity_available"])
}

func TestCreateRaffleFatalReturns500WithGenericMessage(t *testing.T) {
	platform := &stubPlatform{
		createErr: shared.NewFatalError("Admin API request failed", context.DeadlineExceeded),
	}
	app := newTestApp(platform)

	response, body := doJSON(t, app, http.MethodPost, "/api/v1/raffles", validCreatePayload())

	assert.Equal(t, fiber.StatusInternalServerError, response.StatusCode)
	assert.Equal(t, shared.FatalUserMessage, body["error"])
	assert.NotContains(t, body, "errors")
}

func TestCreateRaffleRejectsMalformedBody(t *testing.T) {
	app := newTestApp(&stubPlatform{})

	request := httptest.NewRequest(http.MethodPost, "/api/v1/raffles", strings.NewReader("{not json"))
	request.Header.Set("Content-Type", "application/json")

	response, err := app.Test(request)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, response.StatusCode)
}

func TestListRafflesReturnsStoredRecords(t *testing.T) {
	platform := &stubPlatform{}
	app := newTestApp(platform)

	_, _ = doJSON(t, app, http.MethodPost, "/api/v1/raffles", validCreatePayload())

	response, body := doJSON(t, app, http.MethodGet, "/api/v1/raffles", nil)

	assert.Equal(t, fiber.StatusOK, response.StatusCode)
	assert.Equal(t, float64(1), body["count"])

	records := body["data"].([]interface{})
	record := records[0].(map[string]interface{})
	assert.Equal(t, "The Collection Snowboard", record["product_title"])
	assert.Equal(t, float64(5), record["quantity_available"])
	assert.Equal(t, true, record["is_active"])
}

func TestSearchBelowMinLengthReturnsEmptyList(t *testing.T) {
	platform := &stubPlatform{searchResults: []models.Product{{ID: "gid://shopify/Product/1"}}}
	app := newTestApp(platform)

	response, body := doJSON(t, app, http.MethodGet, "/api/v1/products/search?q=sn", nil)

	assert.Equal(t, fiber.StatusOK, response.StatusCode)
	assert.Equal(t, float64(0), body["count"])
	assert.Zero(t, platform.searchCalls)
}

func TestSearchReturnsMatches(t *testing.T) {
	platform := &stubPlatform{searchResults: []models.Product{
		{ID: "gid://shopify/Product/1", Title: "The Collection Snowboard", Handle: "the-collection-snowboard", Status: "ACTIVE"},
	}}
	app := newTestApp(platform)

	response, body := doJSON(t, app, http.MethodGet, "/api/v1/products/search?q=snowboard", nil)

	assert.Equal(t, fiber.StatusOK, response.StatusCode)
	assert.Equal(t, float64(1), body["count"])

	products := body["data"].([]interface{})
	product := products[0].(map[string]interface{})
	assert.Equal(t, "The Collection Snowboard", product["title"])
}

func TestSearchFatalReturns500(t *testing.T) {
	platform := &stubPlatform{searchErr: shared.NewFatalError("Admin API request failed", context.DeadlineExceeded)}
	app := newTestApp(platform)

	response, body := doJSON(t, app, http.MethodGet, "/api/v1/products/search?q=snowboard", nil)

	assert.Equal(t, fiber.StatusInternalServerError, response.StatusCode)
	assert.Equal(t, shared.FatalUserMessage, body["error"])
}

func TestSubmitPageRejectsUnknownIntent(t *testing.T) {
	app := newTestApp(&stubPlatform{})

	request := httptest.NewRequest(http.MethodPost, "/raffles/new", strings.NewReader("intent=launch_rocket"))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := app.Test(request)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, response.StatusCode)
}
