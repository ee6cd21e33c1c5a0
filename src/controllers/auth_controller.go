package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/campanion-connect/backend/src/lib"
	"github.com/campanion-connect/backend/src/models"
)

// Signup handles user registration, validates input, checks for duplicates, hashes password, and creates the user
func Signup(c *fiber.Ctx) error {

	var userData struct {
		Name      string   `json:"fullName"`
		Username  string   `json:"username"`
		Email     string   `json:"email"`
		Password  string   `json:"password"`
		Location  string   `json:"location"`
		Interests []string `json:"interests"`
	}

	if err := c.BodyParser(&userData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	if userData.Name == "" || userData.Username == "" || userData.Email == "" || userData.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("All fields are required"))
	}

	if len(userData.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Password must be at least 6 characters"))
	}

	var existingUser models.User
	if err := lib.DB.Where("email = ?", userData.Email).First(&existingUser).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Email already exists"))
	}

	if err := lib.DB.Where("username = ?", userData.Username).First(&existingUser).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Username already exists"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(userData.Password), 11)
	if err != nil {
		log.Error().Err(err).Msg("password hashing failed")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	// Create user
	newUser := models.User{
		Name:      userData.Name,
		Username:  userData.Username,
		Email:     userData.Email,
		Password:  string(hashedPassword),
		Location:  userData.Location,
		Interests: userData.Interests,
	}

	if err := lib.DB.Create(&newUser).Error; err != nil {
		log.Error().Err(err).Msg("user creation failed")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to create user"))
	}

	token, err := lib.GenerateJWT(newUser.ID)
	if err != nil {
		log.Error().Err(err).Msg("token generation failed")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"token":   token,
	})
}

// Login authenticates a user by username and password and returns a JWT
func Login(c *fiber.Ctx) error {

	var loginData struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&loginData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	if loginData.Username == "" || loginData.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Username and password are required"))
	}

	var user models.User
	err := lib.DB.Where("username = ?", loginData.Username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid credentials"))
		}

		log.Error().Err(err).Msg("user lookup failed")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(loginData.Password))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid credentials"))
	}

	token, err := lib.GenerateJWT(user.ID)
	if err != nil {
		log.Error().Err(err).Msg("token generation failed")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// GetCurrentUser returns the currently authenticated user's data
func GetCurrentUser(c *fiber.Ctx) error {

	user := c.Locals("user")
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Not authenticated"))
	}
	return c.JSON(user)
}

// Logout clears the authentication cookie to log out the user
func Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt-campanion",
		Value:    "",
		Expires:  time.Now().Add(-1 * time.Hour),
		HTTPOnly: true,
		SameSite: "Strict",
		Path:     "/",
	})
	return c.Status(fiber.StatusOK).JSON(lib.MessageResponse("Logged out successfully"))
}
