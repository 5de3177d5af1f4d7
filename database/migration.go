package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/bdutucu/Optical-Store-Database/models"
)

// AutoMigrate runs auto migration for all models
func AutoMigrate(db *gorm.DB) error {
	log.Println("Starting GORM AutoMigrate...")

	// First pass: create tables
	for _, model := range allModelsForMigration() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Second pass: foreign keys, constraints, indexes
	log.Println("Creating foreign key constraints...")
	if err := CreateForeignKeys(db); err != nil {
		log.Printf("Warning: Some foreign keys could not be created: %v", err)
	}

	log.Println("Adding custom constraints...")
	if err := AddCustomConstraints(db); err != nil {
		log.Printf("Warning: Some custom constraints could not be added: %v", err)
	}

	log.Println("Creating indexes...")
	if err := CreateIndexes(db); err != nil {
		log.Printf("Warning: Some indexes could not be created: %v", err)
	}

	log.Println("GORM AutoMigrate completed successfully")
	return nil
}

func allModelsForMigration() []interface{} {
	return models.AllModels()
}

// CreateForeignKeys creates all foreign key constraints
func CreateForeignKeys(db *gorm.DB) error {
	foreignKeys := []struct {
		table      string
		name       string
		definition string
	}{
		{"customers", "fk_customers_registered_by",
			"FOREIGN KEY (registered_by_staff_id) REFERENCES staff(staff_id)"},
		{"prescriptions", "fk_prescriptions_customer",
			"FOREIGN KEY (customer_id) REFERENCES customers(customer_id)"},
		{"prescriptions", "fk_prescriptions_staff",
			"FOREIGN KEY (staff_id) REFERENCES staff(staff_id)"},
		{"transactions", "fk_transactions_customer",
			"FOREIGN KEY (customer_id) REFERENCES customers(customer_id)"},
		{"transactions", "fk_transactions_staff",
			"FOREIGN KEY (staff_id) REFERENCES staff(staff_id)"},
		// Owned rows go away with their transaction
		{"sale_items", "fk_sale_items_transaction",
			"FOREIGN KEY (transaction_id) REFERENCES transactions(transaction_id) ON DELETE CASCADE"},
		{"sale_items", "fk_sale_items_product",
			"FOREIGN KEY (product_id) REFERENCES products(product_id)"},
		{"sale_items", "fk_sale_items_prescription",
			"FOREIGN KEY (prescription_id) REFERENCES prescriptions(prescription_id)"},
		{"payments", "fk_payments_transaction",
			"FOREIGN KEY (transaction_id) REFERENCES transactions(transaction_id) ON DELETE CASCADE"},
		{"repair_transactions", "fk_repair_transactions_transaction",
			"FOREIGN KEY (transaction_id) REFERENCES transactions(transaction_id) ON DELETE CASCADE"},
	}

	var firstErr error
	for _, fk := range foreignKeys {
		stmt := fmt.Sprintf(
			"ALTER TABLE %s ADD CONSTRAINT %s %s", fk.table, fk.name, fk.definition)
		if err := db.Exec(stmt).Error; err != nil {
			// Constraint probably exists already
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		log.Printf("  ✓ Created foreign key: %s", fk.name)
	}
	return firstErr
}

// AddCustomConstraints adds the balance checks the application relies on
func AddCustomConstraints(db *gorm.DB) error {
	constraints := []struct {
		table      string
		name       string
		definition string
	}{
		// Store-level backstop for the balance window
		{"transactions", "chk_transactions_balance_window",
			"CHECK (remaining_balance >= 0 AND remaining_balance <= total_amount)"},
		{"transactions", "chk_transactions_total_nonnegative",
			"CHECK (total_amount >= 0)"},
		{"payments", "chk_payments_subtype",
			"CHECK ((payment_type = 'CASH' AND received_by IS NOT NULL AND card_owner IS NULL) OR " +
				"(payment_type = 'CREDIT_CARD' AND card_owner IS NOT NULL AND received_by IS NULL))"},
	}

	var firstErr error
	for _, c := range constraints {
		stmt := fmt.Sprintf(
			"ALTER TABLE %s ADD CONSTRAINT %s %s", c.table, c.name, c.definition)
		if err := db.Exec(stmt).Error; err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		log.Printf("  ✓ Added constraint: %s", c.name)
	}
	return firstErr
}

// CreateIndexes creates indexes used by the list and report queries
func CreateIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_transactions_customer ON transactions(customer_id)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_type ON transactions(transaction_type)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_created_at ON transactions(created_at)",
		"CREATE INDEX IF NOT EXISTS idx_payments_paid_at ON payments(paid_at)",
		"CREATE INDEX IF NOT EXISTS idx_prescriptions_customer ON prescriptions(customer_id)",
	}

	var firstErr error
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
