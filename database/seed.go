package database

import (
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bdutucu/Optical-Store-Database/ledger"
	"github.com/bdutucu/Optical-Store-Database/models"
)

// SeedData populates the database with sample data for development.
// Idempotent: skips seeding when staff already exist.
func SeedData(db *gorm.DB) error {
	var staffCount int64
	if err := db.Model(&models.Staff{}).Count(&staffCount).Error; err != nil {
		return fmt.Errorf("failed to check existing data: %w", err)
	}
	if staffCount > 0 {
		log.Println("Database already seeded, skipping")
		return nil
	}

	staff := []models.Staff{
		{FirstName: "Ayşe", LastName: "Yılmaz", Email: "ayse.yilmaz@gulenoptik.example",
			Salary: decimal.NewFromInt(42000), Position: strPtr("Manager"),
			JobStartDate: date(2018, 3, 1)},
		{FirstName: "Mehmet", LastName: "Demir", Email: "mehmet.demir@gulenoptik.example",
			Salary: decimal.NewFromInt(31000), Position: strPtr("Optician"),
			JobStartDate: date(2021, 9, 15)},
	}
	if err := db.Create(&staff).Error; err != nil {
		return fmt.Errorf("failed to seed staff: %w", err)
	}

	customers := []models.Customer{
		{NationalID: "12345678901", FirstName: "Elif", LastName: "Kaya",
			MailAddress: strPtr("elif.kaya@example.com"), RegisteredByStaffID: staff[0].StaffID},
		{NationalID: "98765432109", FirstName: "Can", LastName: "Öztürk",
			InsuranceInfo: strPtr("SGK"), RegisteredByStaffID: staff[1].StaffID},
	}
	if err := db.Create(&customers).Error; err != nil {
		return fmt.Errorf("failed to seed customers: %w", err)
	}

	materials := []models.Material{
		{MaterialName: "Acetate"},
		{MaterialName: "Titanium"},
		{MaterialName: "Polycarbonate"},
	}
	if err := db.Create(&materials).Error; err != nil {
		return fmt.Errorf("failed to seed materials: %w", err)
	}

	products := []models.Product{
		{Brand: "Ray-Ban", ProductType: models.ProductFrame,
			Price: decimal.RequireFromString("50.00"), TaxRate: decimal.RequireFromString("20.00"),
			StockQuantity: 25, ModelOrSerial: strPtr("RB5154"), ColorInfo: strPtr("Black"),
			Materials: []models.Material{materials[0]}},
		{Brand: "Persol", ProductType: models.ProductSunglasses,
			Price: decimal.RequireFromString("120.00"), TaxRate: decimal.RequireFromString("20.00"),
			StockQuantity: 10, ModelOrSerial: strPtr("PO0714"), ColorInfo: strPtr("Havana"),
			Materials: []models.Material{materials[0], materials[1]}},
		{Brand: "Zeiss", ProductType: models.ProductLens,
			Price: decimal.RequireFromString("85.50"), TaxRate: decimal.RequireFromString("20.00"),
			StockQuantity: 40, Materials: []models.Material{materials[2]}},
		{Brand: "Acuvue", ProductType: models.ProductContactLens,
			Price: decimal.RequireFromString("32.90"), TaxRate: decimal.RequireFromString("20.00"),
			StockQuantity: 60},
	}
	if err := db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	prescription := models.Prescription{
		CustomerID:         customers[0].CustomerID,
		StaffID:            &staff[1].StaffID,
		DateOfPrescription: date(2026, 1, 12),
		DoctorName:         strPtr("Dr. Arslan"),
		RightSPH:           decPtr("-1.25"),
		RightCYL:           decPtr("-0.50"),
		RightAX:            intPtr(90),
		LeftSPH:            decPtr("-1.00"),
	}
	if err := db.Create(&prescription).Error; err != nil {
		return fmt.Errorf("failed to seed prescription: %w", err)
	}

	// Walk one sale and one repair through the ledger so the seeded data
	// satisfies the balance invariants.
	led := ledger.New(db)

	sale, err := led.OpenSale(customers[0].CustomerID, staff[0].StaffID)
	if err != nil {
		return fmt.Errorf("failed to seed sale: %w", err)
	}
	if _, err := led.AddItem(sale.TransactionID, products[0].ProductID, 1, &prescription.PrescriptionID); err != nil {
		return fmt.Errorf("failed to seed sale item: %w", err)
	}
	if _, err := led.AddItem(sale.TransactionID, products[2].ProductID, 2, nil); err != nil {
		return fmt.Errorf("failed to seed sale item: %w", err)
	}
	if _, err := led.Pay(sale.TransactionID, decimal.RequireFromString("100.00"),
		ledger.CashPayment(staff[0].FirstName+" "+staff[0].LastName)); err != nil {
		return fmt.Errorf("failed to seed payment: %w", err)
	}

	eta := date(2026, 9, 10)
	if _, err := led.OpenRepair(customers[1].CustomerID, staff[1].StaffID,
		"lens scratch polish", decimal.RequireFromString("250.00"), &eta); err != nil {
		return fmt.Errorf("failed to seed repair: %w", err)
	}

	log.Println("Database seeded successfully")
	return nil
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}
