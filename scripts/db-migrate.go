package main

import (
	"log"
	"os"

	"github.com/tracklite/database"
)

func main() {
	log.Println("Starting database migration...")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL must be set")
	}

	// Connect runs AutoMigrate for all tracker entities
	if _, err := database.Connect(dbURL); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Database migration completed successfully!")
}
