package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/campanion-connect/backend/src/lib"
	"github.com/campanion-connect/backend/src/models"
	"github.com/campanion-connect/backend/src/realtime"
	"github.com/campanion-connect/backend/src/services"
)

// SendMessage persists a direct message and then relays it to the receiver's
// live channel if one is registered. The relay only ever happens after the
// write has committed; a failed persist emits nothing.
func SendMessage(router *realtime.Router) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			ReceiverID uint               `json:"receiverId"`
			Message    string             `json:"message"`
			Kind       models.MessageKind `json:"type"`
			MediaURL   string             `json:"imageUrl"`
		}
		if err := c.BodyParser(&body); err != nil || body.ReceiverID == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Receiver ID is required"))
		}

		// Obtener usuario autenticado del middleware
		user := c.Locals("user").(models.User)

		message, err := services.NewMessageService(lib.DB).Send(
			user.ID, body.ReceiverID, body.Message, body.Kind, body.MediaURL)
		if err != nil {
			return serviceError(c, err)
		}

		// Persistencia confirmada; ahora el relay en tiempo real
		router.Relay(realtime.NewMessagePayload(message), uuid.Nil)

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"data":    message,
		})
	}
}

// GetChatHistory returns the full message history between the authenticated user and another user
func GetChatHistory(c *fiber.Ctx) error {
	receiverID, err := strconv.ParseUint(c.Params("receiverId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid user ID format"))
	}

	user := c.Locals("user").(models.User)

	messages, err := services.NewMessageService(lib.DB).History(user.ID, uint(receiverID))
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    messages,
	})
}
