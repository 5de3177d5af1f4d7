package database

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bdutucu/Optical-Store-Database/models"
)

func newSimulationDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	staff := models.Staff{
		FirstName:    "Ayşe",
		LastName:     "Yılmaz",
		Email:        "ayse@optik.test",
		Salary:       decimal.RequireFromString("30000.00"),
		JobStartDate: time.Date(2023, 1, 9, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&staff).Error)

	customer := models.Customer{
		NationalID:          "12345678901",
		FirstName:           "Elif",
		LastName:            "Kaya",
		RegisteredByStaffID: staff.StaffID,
	}
	require.NoError(t, db.Create(&customer).Error)

	product := models.Product{
		Brand:         "Ray-Ban",
		ProductType:   models.ProductFrame,
		Price:         decimal.RequireFromString("50.00"),
		TaxRate:       decimal.RequireFromString("20.00"),
		StockQuantity: 10000,
	}
	require.NoError(t, db.Create(&product).Error)

	return db
}

// Simulated activity must land under the simulated dates, not the wall
// clock, or date-filtered listings and revenue reports cannot see it.
func TestSimulationStampsSimulatedDates(t *testing.T) {
	db := newSimulationDB(t)

	// Monday through Wednesday, well in the past relative to time.Now()
	start := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)

	sim, err := NewStoreSimulation(SimulationConfig{
		StartDate:         start,
		EndDate:           end,
		DB:                db,
		AverageDailySales: 4,
		RepairChance:      0.5,
		PartialPayChance:  0.25,
	})
	require.NoError(t, err)
	require.NoError(t, sim.Run())

	var transactions []models.Transaction
	require.NoError(t, db.Find(&transactions).Error)
	require.NotEmpty(t, transactions)

	window := end.AddDate(0, 0, 1)
	for _, tx := range transactions {
		assert.False(t, tx.CreatedAt.Before(start),
			"transaction %d created_at %s before simulation start", tx.TransactionID, tx.CreatedAt)
		assert.True(t, tx.CreatedAt.Before(window),
			"transaction %d created_at %s after simulation end", tx.TransactionID, tx.CreatedAt)
	}

	var payments []models.Payment
	require.NoError(t, db.Find(&payments).Error)
	require.NotEmpty(t, payments)

	for _, p := range payments {
		assert.False(t, p.PaidAt.Before(start),
			"payment %d paid_at %s before simulation start", p.PaymentID, p.PaidAt)
		assert.True(t, p.PaidAt.Before(window),
			"payment %d paid_at %s after simulation end", p.PaymentID, p.PaidAt)
	}
}
