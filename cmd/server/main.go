package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"library-desk/internal/adapters/http/middleware"
	"library-desk/internal/adapters/http/routes"
	"library-desk/internal/adapters/notification"
	"library-desk/internal/adapters/payment"
	"library-desk/internal/adapters/persistence/models"
	"library-desk/internal/adapters/persistence/repositories"
	"library-desk/internal/adapters/persistence/storage"
	"library-desk/internal/config"
	"library-desk/internal/core/services"
	"library-desk/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	_ "library-desk/docs" // Swagger docs
)

// @title Library Desk API
// @version 1.0
// @description Small library checkout service: catalogue, members, checkouts with late fees.

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	activity := logger.NewActivityLog(logger.DefaultActivityCapacity)
	zlog, err := logger.New(cfg.IsDev(), activity)
	if err != nil {
		log.Fatalf("❌ Failed to create logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck

	// Storage
	var (
		bookRepo     repositories.BookRepository
		memberRepo   repositories.MemberRepository
		storageCheck func() error
	)
	switch cfg.Storage.Driver {
	case config.StorageMySQL:
		db, err := config.ConnectDatabase(cfg, zlog)
		if err != nil {
			zlog.Fatal("❌ Failed to connect to database", zap.Error(err))
		}
		defer config.CloseDatabase()

		if err := models.AutoMigrate(db); err != nil {
			zlog.Fatal("❌ Failed to auto migrate", zap.Error(err))
		}
		zlog.Info("✅ Database migration completed")

		bookRepo = repositories.NewBookRepository(db)
		memberRepo = repositories.NewMemberRepository(db)
		storageCheck = config.HealthCheck
	default:
		fileStorage, err := storage.NewFileStorage(cfg.Storage.DataDir)
		if err != nil {
			zlog.Fatal("❌ Failed to open data directory", zap.String("dir", cfg.Storage.DataDir), zap.Error(err))
		}
		store := storage.NewLibraryStore(fileStorage, cfg.Storage.Key, zlog)

		bookRepo = repositories.NewJSONBookRepository(store)
		memberRepo = repositories.NewJSONMemberRepository(store)
		storageCheck = store.Ping
		zlog.Info("✅ JSON storage ready", zap.String("dir", cfg.Storage.DataDir), zap.String("key", store.Key()))
	}

	// Notifications
	var notifier services.NotifierPort
	switch cfg.Notifier.Driver {
	case config.NotifierKafka:
		kafkaNotifier := notification.NewKafkaNotifier(
			notification.NewKafkaWriter(cfg.Notifier.KafkaBrokers, cfg.Notifier.KafkaTopic),
		)
		defer kafkaNotifier.Close()
		notifier = kafkaNotifier
	default:
		notifier = notification.NewConsoleNotifier(zlog)
	}

	library := services.NewLibraryService(
		bookRepo,
		memberRepo,
		payment.NewStubGateway(zlog),
		notifier,
		newFeePolicy(cfg.Fees),
		zlog,
	)

	seeder := config.NewSeeder(library)
	if cfg.SeedOnStart {
		result, err := seeder.Run(context.Background())
		if err != nil {
			zlog.Warn("⚠️ Failed to seed demo data", zap.Error(err))
		} else {
			zlog.Info("🌱 Demo data seeded",
				zap.Int("books", result.BooksAdded),
				zap.Int("members", result.MembersAdded),
			)
		}
	}

	// Start fee reminders
	reminders := services.NewFeeReminderService(library, cfg.Reminder.Schedule, zlog)
	if err := reminders.Start(); err != nil {
		zlog.Fatal("❌ Failed to start fee reminders", zap.Error(err))
	}
	defer reminders.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Library Desk API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, cfg, &routes.Dependencies{
		Library:      library,
		Seeder:       seeder,
		Activity:     activity,
		StorageCheck: storageCheck,
	})

	// Graceful shutdown
	go gracefulShutdown(app, zlog)

	// Start server
	zlog.Info("🚀 Server starting", zap.String("port", cfg.Port), zap.String("mode", cfg.AppMode))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Error("❌ Failed to start server", zap.Error(err))
	}
}

func newFeePolicy(cfg config.FeeConfig) services.FeePolicy {
	if cfg.Policy == config.FeePolicyFlat {
		return &services.FlatFeePolicy{Amount: cfg.FlatFee}
	}
	return &services.LateFeePolicy{FreeDays: cfg.FreeDays, DailyRate: cfg.DailyRate}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, zlog *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		zlog.Error("❌ Error during shutdown", zap.Error(err))
	}
	zlog.Info("✅ Server stopped gracefully")
}
