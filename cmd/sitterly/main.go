package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sablegrove/sitterly/internal/api"
	"github.com/sablegrove/sitterly/internal/db"
	"github.com/sablegrove/sitterly/internal/services"
)

func main() {
	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location

	secretKey := getEnv("SECRET_KEY", "change_me_in_production")
	dbPath := getEnv("DB_PATH", filepath.Join("data", "sitterly.db"))
	port := getEnv("PORT", "8080")
	cookieSecure := getEnv("COOKIE_SECURE", "") == "true"

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	handler := api.NewHandler(database, secretKey, cookieSecure)

	app := fiber.New(fiber.Config{
		AppName:               "Sitterly",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)

	repositories := db.NewRepositories(database)
	sweeper := services.NewNotificationService(repositories.Notifications, repositories.Invites)
	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	sweeper.Start(lifecycleCtx, time.Hour)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Sitterly listening on http://0.0.0.0:%s (db: %s, tz: %s)", port, dbPath, location.String())
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
