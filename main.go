package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog/log"

	"github.com/campanion-connect/backend/src/lib"
	"github.com/campanion-connect/backend/src/realtime"
	"github.com/campanion-connect/backend/src/routes"
)

func main() {

	cfg := lib.LoadConfig()
	logger := lib.NewLogger(cfg)
	log.Logger = logger

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowedOrigins, ", "),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Connect to SQLite database
	lib.ConnectDB(cfg.DBPath)

	lib.AutoMigrate()

	// The presence registry is owned here and handed to the event router;
	// nothing else holds it.
	registry := realtime.NewRegistry()
	router := realtime.NewRouter(registry, logger)

	// Register routes
	routes.AuthRoutes(app)
	routes.UserRoutes(app)
	routes.ConnectionRoutes(app)
	routes.NotificationRoutes(app)
	routes.MessageRoutes(app, router)
	routes.RealtimeRoutes(app, router)

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info().Msg("shutting down...")
		_ = app.Shutdown()
	}()

	logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
