package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	appMode      string
	storageName  string
	storageCheck func() error
}

// NewHealthHandler creates a new health handler. storageCheck pings whichever
// storage driver is in use.
func NewHealthHandler(appMode, storageName string, storageCheck func() error) *HealthHandler {
	return &HealthHandler{
		appMode:      appMode,
		storageName:  storageName,
		storageCheck: storageCheck,
	}
}

// Root handles root endpoint
// @Summary Root endpoint
// @Description Returns API status
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "📚 Library Desk API v1.0 is running",
		"mode":    h.appMode,
		"docs":    "/swagger/index.html",
	})
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check API and storage health
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	storageStatus := "healthy"
	overall := "ok"
	code := fiber.StatusOK
	if h.storageCheck != nil {
		if err := h.storageCheck(); err != nil {
			storageStatus = "unhealthy"
			overall = "degraded"
			code = fiber.StatusServiceUnavailable
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"api":         "healthy",
			h.storageName: storageStatus,
		},
	})
}

// APIInfo handles API v1 info
func (h *HealthHandler) APIInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Library Desk API v1.0",
		"version": "1.0.0",
	})
}
