package routes

import (
	"time"

	"library-desk/internal/adapters/http/handlers"
	"library-desk/internal/adapters/http/middleware"
	"library-desk/internal/config"
	"library-desk/internal/core/services"
	"library-desk/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Dependencies are the already-built pieces the routes hand to handlers
type Dependencies struct {
	Library      *services.LibraryService
	Seeder       handlers.DemoSeeder
	Activity     *logger.ActivityLog
	StorageCheck func() error
}

// Setup configures all routes for the application
func Setup(app *fiber.App, cfg *config.Config, deps *Dependencies) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.AppMode, cfg.Storage.Driver, deps.StorageCheck)
	libraryHandler := handlers.NewLibraryHandler(deps.Library)
	adminHandler := handlers.NewAdminHandler(deps.Library, deps.Seeder, deps.Activity)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", middleware.CacheControl(time.Hour), swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1", middleware.NoCacheHeaders())
	setupAPIV1Routes(apiV1, healthHandler, libraryHandler, adminHandler)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	libraryHandler *handlers.LibraryHandler,
	adminHandler *handlers.AdminHandler,
) {
	router.Get("/", healthHandler.APIInfo)

	setupBookRoutes(router.Group("/books"), libraryHandler)
	setupMemberRoutes(router.Group("/members"), libraryHandler)

	router.Post("/checkouts", libraryHandler.Checkout)

	setupAdminRoutes(router.Group("/admin"), adminHandler)
}

// setupBookRoutes configures catalogue routes
func setupBookRoutes(router fiber.Router, handler *handlers.LibraryHandler) {
	router.Get("/", handler.ListBooks)
	router.Get("/:id", handler.GetBook)
	router.Post("/", handler.AddBook)
}

// setupMemberRoutes configures membership routes
func setupMemberRoutes(router fiber.Router, handler *handlers.LibraryHandler) {
	router.Get("/", handler.ListMembers)
	router.Get("/:id", handler.GetMember)
	router.Post("/", handler.RegisterMember)
}

// setupAdminRoutes configures seed/reset/activity routes
func setupAdminRoutes(router fiber.Router, handler *handlers.AdminHandler) {
	router.Post("/seed", middleware.StrictRateLimiter(), handler.Seed)
	router.Post("/reset", middleware.StrictRateLimiter(), handler.Reset)
	router.Get("/activity", handler.Activity)
	router.Get("/stats", handler.Stats)
}
