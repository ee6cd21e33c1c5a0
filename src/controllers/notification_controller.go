package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/campanion-connect/backend/src/lib"
	"github.com/campanion-connect/backend/src/models"
	"github.com/campanion-connect/backend/src/services"
)

// GetNotifications returns the merged notification feed for the authenticated user
func GetNotifications(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	feed, err := services.NewNotificationService(lib.DB).Feed(user.ID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": len(feed),
		"data":  feed,
	})
}

// MarkNotificationAsRead marks a notification as read for the authenticated user
func MarkNotificationAsRead(c *fiber.Ctx) error {
	notificationID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid notification ID format"))
	}

	user := c.Locals("user").(models.User)

	notification, err := services.NewNotificationService(lib.DB).MarkRead(user.ID, uint(notificationID))
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(notification)
}

// DeleteNotification deletes a notification for the authenticated user
func DeleteNotification(c *fiber.Ctx) error {
	notificationID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid notification ID format"))
	}

	user := c.Locals("user").(models.User)

	if err := services.NewNotificationService(lib.DB).Delete(user.ID, uint(notificationID)); err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(lib.MessageResponse("Notification deleted successfully"))
}
