package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/mealsafe/backend/config"
	"github.com/mealsafe/backend/internal/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[Migrate] no .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("[Migrate] migrations completed")
}
