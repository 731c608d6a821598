package handlers

import (
	"context"
	"strconv"

	"library-desk/internal/config"
	"library-desk/internal/core/services"
	"library-desk/internal/pkg/logger"
	"library-desk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DemoSeeder seeds demo data
type DemoSeeder interface {
	Run(ctx context.Context) (*config.SeedResult, error)
}

// AdminHandler handles seed, reset and activity endpoints
type AdminHandler struct {
	library  *services.LibraryService
	seeder   DemoSeeder
	activity *logger.ActivityLog
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(library *services.LibraryService, seeder DemoSeeder, activity *logger.ActivityLog) *AdminHandler {
	return &AdminHandler{
		library:  library,
		seeder:   seeder,
		activity: activity,
	}
}

// Seed handles seeding demo data
// @Summary Seed demo data
// @Description Adds demo books and members to empty collections
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/seed [post]
func (h *AdminHandler) Seed(c *fiber.Ctx) error {
	result, err := h.seeder.Run(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to seed demo data")
	}

	return response.Success(c, "Demo data seeded", result)
}

// Reset handles clearing all library data
// @Summary Reset library
// @Description Removes every book and member
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/reset [post]
func (h *AdminHandler) Reset(c *fiber.Ctx) error {
	if err := h.library.Reset(c.Context()); err != nil {
		return response.InternalServerError(c, "Failed to reset library")
	}

	return response.Success(c, "Library reset", nil)
}

// Activity handles listing recent service activity
// @Summary Recent activity
// @Tags Admin
// @Produce json
// @Param limit query int false "Number of entries" default(10)
// @Success 200 {object} response.Response
// @Router /admin/activity [get]
func (h *AdminHandler) Activity(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	return response.Success(c, "Activity retrieved successfully", fiber.Map{
		"entries": h.activity.Recent(limit),
	})
}

// Stats handles library statistics
// @Summary Library statistics
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.library.Stats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get stats")
	}

	return response.Success(c, "Stats retrieved successfully", stats)
}
