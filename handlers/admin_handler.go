package handlers

import (
	"time"

	"github.com/fenilmodi00/raffle-admin/services"
	"github.com/fenilmodi00/raffle-admin/shared"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AdminHandler struct {
	Service *services.RaffleService
	Audit   *services.AuditService
	Metrics *shared.ServiceMetrics
}

func NewAdminHandler(service *services.RaffleService, audit *services.AuditService, metrics *shared.ServiceMetrics) *AdminHandler {
	return &AdminHandler{
		Service: service,
		Audit:   audit,
		Metrics: metrics,
	}
}

// GetAuditLog returns the most recent create attempts from the local audit
// trail.
func (h *AdminHandler) GetAuditLog(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)

	attempts, err := h.Audit.RecentAttempts(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to query audit log",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    attempts,
		"count":   len(attempts),
	})
}

// RefreshListCache manually re-primes the raffle list cache.
func (h *AdminHandler) RefreshListCache(c *fiber.Ctx) error {
	logrus.Info("Manual raffle list refresh triggered via admin endpoint")

	startTime := time.Now()
	raffles, err := h.Service.RefreshRaffleList(c.Context())
	if err != nil {
		workflowErr := shared.AsWorkflowError(err)
		workflowErr.LogError("list_cache_refresh")
		return c.Status(workflowErr.HTTPStatus()).JSON(fiber.Map{
			"success": false,
			"error":   workflowErr.UserMessage(),
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"count":    len(raffles),
		"duration": time.Since(startTime).String(),
	})
}

// GetPerformanceMetrics exposes the Admin API client counters.
func (h *AdminHandler) GetPerformanceMetrics(c *fiber.Ctx) error {
	snapshot := h.Metrics.Snapshot()
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"service":                 snapshot.ServiceName,
			"total_requests":          snapshot.TotalRequests,
			"successful_requests":     snapshot.SuccessfulRequests,
			"failed_requests":         snapshot.FailedRequests,
			"average_processing_time": snapshot.AverageProcessingTime.String(),
			"success_rate":            h.Metrics.SuccessRate(),
			"last_updated":            snapshot.LastUpdated,
		},
	})
}
