package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campanion-connect/backend/src/controllers"
	"github.com/campanion-connect/backend/src/middleware"
	"github.com/campanion-connect/backend/src/realtime"
)

// MessageRoutes sets up message-related routes for sending and fetching chat history
func MessageRoutes(app *fiber.App, router *realtime.Router) {
	message := app.Group("/api/messages", middleware.ProtectRoute)

	message.Post("/send", controllers.SendMessage(router))
	message.Get("/:receiverId", controllers.GetChatHistory)
}
