package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campanion-connect/backend/src/realtime"
)

// RealtimeRoutes sets up the websocket channel for presence and message relay
func RealtimeRoutes(app *fiber.App, router *realtime.Router) {
	app.Use("/ws", realtime.Upgrade)
	app.Get("/ws", router.Handler())
}
