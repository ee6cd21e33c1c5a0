package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campanion-connect/backend/src/controllers"
	"github.com/campanion-connect/backend/src/middleware"
)

// ConnectionRoutes sets up connection-related routes for sending, listing, responding to, withdrawing, and disconnecting requests
func ConnectionRoutes(app *fiber.App) {
	connection := app.Group("/api/connections", middleware.ProtectRoute)

	connection.Post("/send", controllers.SendConnectionRequest)
	connection.Get("/requests", controllers.GetConnectionRequests)
	connection.Get("/sent", controllers.GetSentRequests)
	connection.Get("/list", controllers.GetConnections)
	connection.Put("/respond/:requestId", controllers.RespondToRequest)
	connection.Get("/check/:receiverId", controllers.CheckRequestStatus)
	connection.Delete("/withdraw/:requestId", controllers.WithdrawRequest)
	connection.Delete("/disconnect/:connectionId", controllers.DisconnectConnection)
}
