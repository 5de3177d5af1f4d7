package main

import (
	"fmt"
	"log"

	"github.com/bdutucu/Optical-Store-Database/config"
	"github.com/bdutucu/Optical-Store-Database/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fmt.Println("🌱 Starting Database Seed Tool")

	if err := database.Initialize(&cfg.Database); err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	defer database.Close()

	if err := database.SeedData(database.DB); err != nil {
		log.Fatalf("❌ Failed to seed database: %v", err)
	}

	fmt.Println("✅ Seeding completed successfully!")
}
