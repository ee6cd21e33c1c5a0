package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campanion-connect/backend/src/controllers"
	"github.com/campanion-connect/backend/src/middleware"
)

// AuthRoutes sets up authentication-related routes for signup, login, logout, and getting the current user
func AuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")

	auth.Post("/signup", controllers.Signup)
	auth.Post("/login", controllers.Login)
	auth.Post("/logout", controllers.Logout)
	auth.Get("/me", middleware.ProtectRoute, controllers.GetCurrentUser)
}
