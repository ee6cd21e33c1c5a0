package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campanion-connect/backend/src/controllers"
	"github.com/campanion-connect/backend/src/middleware"
)

// NotificationRoutes sets up notification-related routes for the merged feed, marking as read, and deleting notifications
func NotificationRoutes(app *fiber.App) {
	notification := app.Group("/api/notifications", middleware.ProtectRoute)

	notification.Get("/", controllers.GetNotifications)
	notification.Put("/:id/read", controllers.MarkNotificationAsRead)
	notification.Delete("/:id", controllers.DeleteNotification)
}
