package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/campanion-connect/backend/src/lib"
	"github.com/campanion-connect/backend/src/models"
	"github.com/campanion-connect/backend/src/services"
)

// SendConnectionRequest sends a connection request from the authenticated user to another user
func SendConnectionRequest(c *fiber.Ctx) error {
	var body struct {
		ReceiverID uint `json:"receiverId"`
	}
	if err := c.BodyParser(&body); err != nil || body.ReceiverID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Receiver ID is required"))
	}

	// Obtener usuario autenticado del middleware
	user := c.Locals("user").(models.User)

	request, err := services.NewConnectionService(lib.DB).Send(user.ID, body.ReceiverID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Request sent successfully",
		"data":    request,
	})
}

// RespondToRequest accepts or rejects a pending connection request addressed to the authenticated user
func RespondToRequest(c *fiber.Ctx) error {
	requestID, err := strconv.ParseUint(c.Params("requestId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request ID format"))
	}

	var body struct {
		Action string `json:"action"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	// Obtener usuario autenticado del middleware
	user := c.Locals("user").(models.User)

	request, err := services.NewConnectionService(lib.DB).Respond(user.ID, uint(requestID), body.Action)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Request " + body.Action + "ed successfully",
		"data":    request,
	})
}

// WithdrawRequest deletes a pending request the authenticated user sent
func WithdrawRequest(c *fiber.Ctx) error {
	requestID, err := strconv.ParseUint(c.Params("requestId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request ID format"))
	}

	user := c.Locals("user").(models.User)

	if err := services.NewConnectionService(lib.DB).Withdraw(user.ID, uint(requestID)); err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(lib.MessageResponse("Request withdrawn successfully"))
}

// DisconnectConnection removes an accepted connection the authenticated user participates in
func DisconnectConnection(c *fiber.Ctx) error {
	connectionID, err := strconv.ParseUint(c.Params("connectionId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid connection ID format"))
	}

	user := c.Locals("user").(models.User)

	if err := services.NewConnectionService(lib.DB).Disconnect(user.ID, uint(connectionID)); err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(lib.MessageResponse("Connection disconnected successfully"))
}

// GetConnectionRequests returns all pending connection requests for the authenticated user
func GetConnectionRequests(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	requests, err := services.NewConnectionService(lib.DB).Incoming(user.ID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": len(requests),
		"data":  requests,
	})
}

// GetSentRequests returns the requests the authenticated user sent, grouped by recency
func GetSentRequests(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	groups, count, err := services.NewConnectionService(lib.DB).Sent(user.ID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": count,
		"data":  groups,
	})
}

// GetConnections returns the authenticated user's accepted connections, grouped by recency
func GetConnections(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	groups, count, err := services.NewConnectionService(lib.DB).Connections(user.ID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": count,
		"data":  groups,
	})
}

// CheckRequestStatus returns the connection status between the authenticated user and another user
func CheckRequestStatus(c *fiber.Ctx) error {
	receiverID, err := strconv.ParseUint(c.Params("receiverId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid user ID format"))
	}

	user := c.Locals("user").(models.User)

	status, err := services.NewConnectionService(lib.DB).Status(user.ID, uint(receiverID))
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": status,
	})
}
