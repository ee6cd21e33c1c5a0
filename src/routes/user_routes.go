package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campanion-connect/backend/src/controllers"
	"github.com/campanion-connect/backend/src/middleware"
)

// UserRoutes sets up user-related routes for companion suggestions and public profiles
func UserRoutes(app *fiber.App) {
	user := app.Group("/api/users", middleware.ProtectRoute)

	user.Get("/suggestions", controllers.GetSuggestedCompanions)
	user.Get("/:id", controllers.GetPublicProfile)
}
