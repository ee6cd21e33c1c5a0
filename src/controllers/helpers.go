package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/campanion-connect/backend/src/lib"
	"github.com/campanion-connect/backend/src/services"
)

// serviceError maps the service error taxonomy onto HTTP statuses.
// Infrastructure failures stay opaque to the client.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(err.Error()))
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse(err.Error()))
	case errors.Is(err, services.ErrAuthorization):
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse(err.Error()))
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
}
