package controllers

import (
	"errors"
	"sort"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/campanion-connect/backend/src/lib"
	"github.com/campanion-connect/backend/src/models"
)

const suggestionLimit = 20

// GetSuggestedCompanions returns users who share interests with the authenticated user, most overlap first
func GetSuggestedCompanions(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	// Usuarios ya conectados quedan fuera de las sugerencias
	connected := make(map[uint]bool)
	var connections []models.Connection
	err := lib.DB.
		Where("(sender_id = ? OR receiver_id = ?) AND status = ?",
			user.ID, user.ID, models.ConnectionStatusAccepted).
		Find(&connections).Error
	if err != nil {
		log.Error().Err(err).Msg("connection lookup failed")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	for _, connection := range connections {
		connected[connection.SenderID] = true
		connected[connection.ReceiverID] = true
	}

	interests := make(map[string]bool, len(user.Interests))
	for _, interest := range user.Interests {
		interests[interest] = true
	}

	var users []models.User
	if err := lib.DB.Where("id <> ?", user.ID).Find(&users).Error; err != nil {
		log.Error().Err(err).Msg("user listing failed")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	type suggestion struct {
		models.UserDto
		SharedInterests int `json:"sharedInterests"`
	}

	suggestions := make([]suggestion, 0, len(users))
	for _, candidate := range users {
		if connected[candidate.ID] {
			continue
		}
		shared := 0
		for _, interest := range candidate.Interests {
			if interests[interest] {
				shared++
			}
		}
		suggestions = append(suggestions, suggestion{UserDto: candidate.ToDto(), SharedInterests: shared})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].SharedInterests > suggestions[j].SharedInterests
	})
	if len(suggestions) > suggestionLimit {
		suggestions = suggestions[:suggestionLimit]
	}

	return c.Status(fiber.StatusOK).JSON(suggestions)
}

// GetPublicProfile returns another user's public profile by ID
func GetPublicProfile(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid user ID format"))
	}

	user, err := lib.FindUserByID(uint(userID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("User not found"))
		}
		log.Error().Err(err).Msg("user lookup failed")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.Status(fiber.StatusOK).JSON(user)
}
