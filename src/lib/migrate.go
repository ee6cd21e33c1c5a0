package lib

import (
	"log"

	"github.com/campanion-connect/backend/src/models"
)

// AutoMigrate runs all database migrations
func AutoMigrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Connection{},
		&models.Message{},
		&models.Notification{},
	)

	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database migration completed!")
}
