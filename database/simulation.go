package database

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bdutucu/Optical-Store-Database/ledger"
	"github.com/bdutucu/Optical-Store-Database/models"
)

// SimulationConfig holds simulation parameters
type SimulationConfig struct {
	StartDate         time.Time
	EndDate           time.Time
	DB                *gorm.DB
	AverageDailySales int     // Average number of sales per day
	RepairChance      float64 // Chance of a repair drop-off per day (e.g. 0.3 = 30%)
	PartialPayChance  float64 // Chance a sale is only partially paid at the counter
}

// StoreSimulation drives randomized shop activity through the ledger
type StoreSimulation struct {
	config      SimulationConfig
	ledger      *ledger.Ledger
	customers   []models.Customer
	staff       []models.Staff
	products    []models.Product
	currentDate time.Time
	openRepairs []uint
}

// NewStoreSimulation creates a new simulation instance
func NewStoreSimulation(config SimulationConfig) (*StoreSimulation, error) {
	sim := &StoreSimulation{
		config:      config,
		ledger:      ledger.New(config.DB),
		currentDate: config.StartDate,
	}

	if err := sim.loadExistingData(); err != nil {
		return nil, fmt.Errorf("failed to load existing data: %w", err)
	}

	return sim, nil
}

// loadExistingData loads the master data the simulation draws from
func (s *StoreSimulation) loadExistingData() error {
	if err := s.config.DB.Find(&s.customers).Error; err != nil {
		return fmt.Errorf("failed to load customers: %w", err)
	}
	if err := s.config.DB.Find(&s.staff).Error; err != nil {
		return fmt.Errorf("failed to load staff: %w", err)
	}
	if err := s.config.DB.Find(&s.products).Error; err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}

	log.Printf("Loaded: %d customers, %d staff, %d products",
		len(s.customers), len(s.staff), len(s.products))

	if len(s.customers) == 0 || len(s.staff) == 0 || len(s.products) == 0 {
		return fmt.Errorf("master data missing, run the seed first")
	}

	return nil
}

// Run executes the simulation day by day
func (s *StoreSimulation) Run() error {
	log.Printf("Starting simulation from %s to %s",
		s.config.StartDate.Format("2006-01-02"),
		s.config.EndDate.Format("2006-01-02"))

	for s.currentDate = s.config.StartDate; !s.currentDate.After(s.config.EndDate); s.currentDate = s.currentDate.AddDate(0, 0, 1) {
		// Shop closed on Sundays
		if s.currentDate.Weekday() == time.Sunday {
			continue
		}

		log.Printf("=== Processing Date: %s ===", s.currentDate.Format("2006-01-02"))

		if err := s.processDailySales(); err != nil {
			return fmt.Errorf("failed to process daily sales: %w", err)
		}

		if rand.Float64() < s.config.RepairChance {
			if err := s.processRepairDropOff(); err != nil {
				log.Printf("Warning: repair drop-off failed: %v", err)
			}
		}

		if err := s.processRepairProgress(); err != nil {
			log.Printf("Warning: repair progress failed: %v", err)
		}

		if err := s.processInstallmentPayments(); err != nil {
			log.Printf("Warning: installment payments failed: %v", err)
		}
	}

	log.Println("✅ Simulation completed successfully!")
	s.printSimulationSummary()
	return nil
}

// processDailySales creates the day's sale transactions
func (s *StoreSimulation) processDailySales() error {
	numSales := s.calculateDailySalesCount()

	created := 0
	for i := 0; i < numSales; i++ {
		if err := s.createSale(); err != nil {
			log.Printf("Warning: sale %d failed: %v", i+1, err)
			continue
		}
		created++
	}

	log.Printf("  ✓ Processed %d sales", created)
	return nil
}

// calculateDailySalesCount varies volume by day of week
func (s *StoreSimulation) calculateDailySalesCount() int {
	base := s.config.AverageDailySales
	if base == 0 {
		base = 5
	}

	switch s.currentDate.Weekday() {
	case time.Saturday:
		return base + rand.Intn(4)
	case time.Monday:
		n := base - rand.Intn(3)
		if n < 1 {
			n = 1
		}
		return n
	default:
		return base - 1 + rand.Intn(3)
	}
}

// createSale opens a sale, adds 1-3 items and takes a payment at the counter
func (s *StoreSimulation) createSale() error {
	customer := s.customers[rand.Intn(len(s.customers))]
	staff := s.staff[rand.Intn(len(s.staff))]

	tx, err := s.ledger.OpenSale(customer.CustomerID, staff.StaffID)
	if err != nil {
		return err
	}
	if err := s.backdateTransaction(tx.TransactionID); err != nil {
		return err
	}

	numItems := 1 + rand.Intn(3)
	added := 0
	for i := 0; i < numItems; i++ {
		product := s.products[rand.Intn(len(s.products))]
		quantity := 1 + rand.Intn(2)

		if _, err := s.ledger.AddItem(tx.TransactionID, product.ProductID, quantity, nil); err != nil {
			if errors.Is(err, ledger.ErrInsufficientStock) {
				continue
			}
			return err
		}
		added++
	}

	if added == 0 {
		return s.ledger.DeleteTransaction(tx.TransactionID)
	}

	current, err := s.ledger.GetTransaction(tx.TransactionID)
	if err != nil {
		return err
	}

	// Most customers pay in full, some leave a balance
	amount := current.RemainingBalance
	if rand.Float64() < s.config.PartialPayChance {
		amount = current.RemainingBalance.Div(decimal.NewFromInt(2)).Round(2)
	}
	if !amount.IsPositive() {
		return nil
	}

	details := s.randomPaymentDetails(staff)
	payment, err := s.ledger.Pay(tx.TransactionID, amount, details)
	if err != nil {
		return err
	}

	return s.backdatePayment(payment)
}

// processRepairDropOff opens a repair transaction with a random cost
func (s *StoreSimulation) processRepairDropOff() error {
	customer := s.customers[rand.Intn(len(s.customers))]
	staff := s.staff[rand.Intn(len(s.staff))]

	descriptions := []string{
		"Broken hinge replacement",
		"Lens scratch polish",
		"Frame realignment",
		"Nose pad replacement",
		"Temple arm repair",
	}
	description := descriptions[rand.Intn(len(descriptions))]

	cost := decimal.NewFromInt(int64(50 + rand.Intn(300))).Round(2)
	estimated := s.currentDate.AddDate(0, 0, 3+rand.Intn(7))

	tx, err := s.ledger.OpenRepair(customer.CustomerID, staff.StaffID, description, cost, &estimated)
	if err != nil {
		return err
	}
	if err := s.backdateTransaction(tx.TransactionID); err != nil {
		return err
	}

	s.openRepairs = append(s.openRepairs, tx.TransactionID)
	log.Printf("  🔧 Repair dropped off: %s (%s)", description, cost.StringFixed(2))
	return nil
}

// processRepairProgress advances open repairs through their statuses
func (s *StoreSimulation) processRepairProgress() error {
	remaining := s.openRepairs[:0]

	for _, id := range s.openRepairs {
		var repair models.RepairTransaction
		if err := s.config.DB.First(&repair, "transaction_id = ?", id).Error; err != nil {
			continue
		}

		switch repair.Status {
		case models.RepairPending:
			if rand.Float64() < 0.6 {
				if _, err := s.ledger.UpdateRepairStatus(id, models.RepairInProgress); err != nil {
					return err
				}
			}
			remaining = append(remaining, id)

		case models.RepairInProgress:
			if rand.Float64() < 0.5 {
				if _, err := s.ledger.UpdateRepairStatus(id, models.RepairCompleted); err != nil {
					return err
				}
				// Customer pays on pickup
				tx, err := s.ledger.GetTransaction(id)
				if err != nil {
					return err
				}
				if tx.RemainingBalance.IsPositive() {
					staff := s.staff[rand.Intn(len(s.staff))]
					payment, err := s.ledger.Pay(id, tx.RemainingBalance, s.randomPaymentDetails(staff))
					if err != nil {
						return err
					}
					if err := s.backdatePayment(payment); err != nil {
						return err
					}
				}
			} else {
				remaining = append(remaining, id)
			}
		}
	}

	s.openRepairs = remaining
	return nil
}

// processInstallmentPayments pays down a random outstanding balance
func (s *StoreSimulation) processInstallmentPayments() error {
	outstanding, err := s.ledger.Outstanding()
	if err != nil {
		return err
	}
	if len(outstanding) == 0 {
		return nil
	}

	// One installment per day at most
	tx := outstanding[rand.Intn(len(outstanding))]
	amount := tx.RemainingBalance
	if rand.Float64() < 0.5 {
		amount = amount.Div(decimal.NewFromInt(2)).Round(2)
	}
	if !amount.IsPositive() {
		return nil
	}

	staff := s.staff[rand.Intn(len(s.staff))]
	payment, err := s.ledger.Pay(tx.TransactionID, amount, s.randomPaymentDetails(staff))
	if errors.Is(err, ledger.ErrOverpayment) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.backdatePayment(payment)
}

// businessHour returns the simulated day at a random shop hour (9AM-6PM).
func (s *StoreSimulation) businessHour() time.Time {
	return s.currentDate.Add(time.Duration(9+rand.Intn(9)) * time.Hour)
}

// backdateTransaction stamps a freshly created transaction with the
// simulated day instead of the wall clock, so date-filtered listings and
// revenue reports see the data under the simulated dates.
func (s *StoreSimulation) backdateTransaction(transactionID uint) error {
	return s.config.DB.Model(&models.Transaction{}).
		Where("transaction_id = ?", transactionID).
		Update("created_at", s.businessHour()).Error
}

// backdatePayment stamps a freshly recorded payment with the simulated day.
func (s *StoreSimulation) backdatePayment(payment *models.Payment) error {
	return s.config.DB.Model(&models.Payment{}).
		Where("payment_id = ?", payment.PaymentID).
		Update("paid_at", s.businessHour()).Error
}

// randomPaymentDetails picks cash or card roughly 60/40
func (s *StoreSimulation) randomPaymentDetails(staff models.Staff) ledger.PaymentDetails {
	if rand.Float64() < 0.6 {
		return ledger.CashPayment(staff.FullName())
	}
	customer := s.customers[rand.Intn(len(s.customers))]
	return ledger.CardPayment(customer.FullName())
}

// printSimulationSummary prints summary statistics
func (s *StoreSimulation) printSimulationSummary() {
	log.Println("=== Simulation Summary ===")

	var saleCount, repairCount, paymentCount int64
	s.config.DB.Model(&models.Transaction{}).Where("transaction_type = ?", models.TransactionSale).Count(&saleCount)
	s.config.DB.Model(&models.Transaction{}).Where("transaction_type = ?", models.TransactionRepair).Count(&repairCount)
	s.config.DB.Model(&models.Payment{}).Count(&paymentCount)

	var totals struct {
		Billed      decimal.Decimal
		Outstanding decimal.Decimal
	}
	s.config.DB.Model(&models.Transaction{}).
		Select("COALESCE(SUM(total_amount), 0) as billed, COALESCE(SUM(remaining_balance), 0) as outstanding").
		Scan(&totals)

	log.Printf("💰 Sales: %d", saleCount)
	log.Printf("🔧 Repairs: %d", repairCount)
	log.Printf("🧾 Payments: %d", paymentCount)
	log.Printf("💵 Total Billed: %s", totals.Billed.StringFixed(2))
	log.Printf("📉 Outstanding: %s", totals.Outstanding.StringFixed(2))
}

// RunSimulation is the main entry point for the simulation
func RunSimulation(db *gorm.DB, startDate, endDate time.Time) error {
	config := SimulationConfig{
		StartDate:         startDate,
		EndDate:           endDate,
		DB:                db,
		AverageDailySales: 5,
		RepairChance:      0.3,
		PartialPayChance:  0.25,
	}

	sim, err := NewStoreSimulation(config)
	if err != nil {
		return fmt.Errorf("failed to create simulation: %w", err)
	}

	return sim.Run()
}
