package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"github.com/bdutucu/Optical-Store-Database/config"
	"github.com/bdutucu/Optical-Store-Database/database"
	"github.com/bdutucu/Optical-Store-Database/models"
)

func main() {
	// Parse command line flags
	var (
		startDate  = flag.String("start", "2026-08-01", "Simulation start date (YYYY-MM-DD)")
		endDate    = flag.String("end", "2026-08-28", "Simulation end date (YYYY-MM-DD)")
		clear      = flag.Bool("clear", false, "Clear existing transaction data before running")
		seed       = flag.Bool("seed", false, "Run initial seed if database is empty")
		noQueryLog = flag.Bool("no-query-log", false, "Disable query logging during simulation")
	)
	flag.Parse()

	rand.Seed(time.Now().UnixNano())

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	if err := database.InitializeWithOptions(&cfg.Database, *noQueryLog); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	db := database.GetDB()
	log.Println("✅ Connected to database successfully")

	// Check if initial seed is needed
	if *seed {
		var productCount int64
		db.Model(&models.Product{}).Count(&productCount)

		if productCount == 0 {
			log.Println("Database is empty, running initial seed...")
			if err := database.SeedData(db); err != nil {
				log.Fatalf("Failed to seed initial data: %v", err)
			}
			log.Println("✅ Initial seed completed")
		} else {
			log.Printf("Database already has %d products, skipping seed", productCount)
		}
	}

	// Clear existing transaction data if requested
	if *clear {
		if err := clearTransactionData(db); err != nil {
			log.Fatalf("Failed to clear transaction data: %v", err)
		}
		log.Println("✅ Cleared existing transaction data")
	}

	// Parse dates
	start, err := time.Parse("2006-01-02", *startDate)
	if err != nil {
		log.Fatalf("Invalid start date: %v", err)
	}

	end, err := time.Parse("2006-01-02", *endDate)
	if err != nil {
		log.Fatalf("Invalid end date: %v", err)
	}

	if end.Before(start) {
		log.Fatalf("End date must be after start date")
	}

	// Warn if transaction data already exists for the period
	if !*clear {
		var count int64
		db.Model(&models.Transaction{}).
			Where("created_at BETWEEN ? AND ?", start, end).
			Count(&count)
		if count > 0 {
			log.Println("⚠️  Warning: Transaction data already exists for this period.")
			log.Println("   Use -clear flag to remove existing data before running.")
		}
	}

	// Run simulation
	if err := database.RunSimulation(db, start, end); err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}
}

// clearTransactionData removes the ledger's transactional data while
// preserving master data (customers, staff, products, prescriptions).
func clearTransactionData(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		tables := []string{"payments", "sale_items", "repair_transactions", "transactions"}
		for _, table := range tables {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
