package ledger

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bdutucu/Optical-Store-Database/models"
)

// Ledger is the sole authority over transaction totals and remaining
// balances. Every mutating operation runs inside a single store
// transaction: the balance adjustment and its dependent row insert
// commit together or not at all.
//
// Balance writes are guarded updates keyed on the values read at the
// start of the operation. A lost race rolls the whole unit back and the
// operation is retried from a fresh read, so a concurrent payment is
// re-validated against the post-commit balance, never a stale one.
type Ledger struct {
	db *gorm.DB
}

// New returns a Ledger backed by db.
func New(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// balanceRetries bounds how often an operation is re-run after losing a
// guarded balance update before giving up with ErrConcurrentModification.
const balanceRetries = 3

// errBalanceConflict signals that the transaction row changed between
// read and guarded write. Internal; callers see ErrConcurrentModification
// only after retries are exhausted.
var errBalanceConflict = errors.New("balance changed since read")

// PaymentDetails is the variant payload of a payment: CASH carries the
// name of the staff member who took the money, CREDIT_CARD the
// cardholder name. Tag and payload are checked together before anything
// reaches the store.
type PaymentDetails struct {
	Type       models.PaymentType
	ReceivedBy string
	CardOwner  string
}

// CashPayment builds the CASH variant.
func CashPayment(receivedBy string) PaymentDetails {
	return PaymentDetails{Type: models.PaymentCash, ReceivedBy: receivedBy}
}

// CardPayment builds the CREDIT_CARD variant.
func CardPayment(cardOwner string) PaymentDetails {
	return PaymentDetails{Type: models.PaymentCreditCard, CardOwner: cardOwner}
}

// Validate rejects unknown payment types and tag/payload mismatches.
func (d PaymentDetails) Validate() error {
	switch d.Type {
	case models.PaymentCash:
		if d.ReceivedBy == "" || d.CardOwner != "" {
			return ErrInvalidPaymentType
		}
	case models.PaymentCreditCard:
		if d.CardOwner == "" || d.ReceivedBy != "" {
			return ErrInvalidPaymentType
		}
	default:
		return ErrInvalidPaymentType
	}
	return nil
}

func (d PaymentDetails) apply(p *models.Payment) {
	switch d.Type {
	case models.PaymentCash:
		received := d.ReceivedBy
		p.ReceivedBy = &received
	case models.PaymentCreditCard:
		owner := d.CardOwner
		p.CardOwner = &owner
	}
}

// ComputeLine calculates the amounts of one sale line from the price and
// tax snapshot. Tax is rounded half-up to two decimals once per line;
// nothing is accumulated in floating point.
func ComputeLine(unitPrice, taxRate decimal.Decimal, quantity int) (subTotal, taxAmount, lineTotal decimal.Decimal) {
	subTotal = unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	taxAmount = subTotal.Mul(taxRate).Div(decimal.NewFromInt(100)).Round(2)
	lineTotal = subTotal.Add(taxAmount)
	return subTotal, taxAmount, lineTotal
}

// OpenSale creates an empty SALE transaction for the customer, stamped
// with the acting staff member. Totals start at zero; items are added
// one call at a time afterwards.
func (l *Ledger) OpenSale(customerID, staffID uint) (*models.Transaction, error) {
	t := &models.Transaction{
		CustomerID:       customerID,
		StaffID:          staffID,
		TransactionType:  models.TransactionSale,
		TotalAmount:      decimal.Zero,
		RemainingBalance: decimal.Zero,
	}

	err := l.db.Transaction(func(tx *gorm.DB) error {
		if err := customerExists(tx, customerID); err != nil {
			return err
		}
		if err := staffExists(tx, staffID); err != nil {
			return err
		}
		return tx.Create(t).Error
	})
	if err != nil {
		return nil, wrapStore(err)
	}
	return t, nil
}

// AddItem appends one line to an open SALE transaction. The product's
// current price and tax rate are snapshotted onto the line, stock is
// decremented, and the transaction's total and remaining balance grow by
// the line total — all in one unit of work. Duplicate products are two
// separate lines; nothing is merged.
func (l *Ledger) AddItem(transactionID, productID uint, quantity int, prescriptionID *uint) (*models.SaleItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var item *models.SaleItem
	err := withBalanceRetry(func() error {
		return l.db.Transaction(func(tx *gorm.DB) error {
			var t models.Transaction
			if err := tx.First(&t, "transaction_id = ?", transactionID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrInvalidTransaction
				}
				return err
			}
			if t.TransactionType != models.TransactionSale {
				return ErrInvalidTransaction
			}

			var product models.Product
			if err := tx.First(&product, "product_id = ?", productID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrInvalidProduct
				}
				return err
			}

			if prescriptionID != nil {
				var n int64
				if err := tx.Model(&models.Prescription{}).
					Where("prescription_id = ?", *prescriptionID).
					Count(&n).Error; err != nil {
					return err
				}
				if n == 0 {
					return ErrInvalidPrescription
				}
			}

			subTotal, taxAmount, lineTotal := ComputeLine(product.Price, product.TaxRate, quantity)
			item = &models.SaleItem{
				TransactionID:  t.TransactionID,
				ProductID:      product.ProductID,
				PrescriptionID: prescriptionID,
				Quantity:       quantity,
				UnitPrice:      product.Price,
				TaxRate:        product.TaxRate,
				SubTotal:       subTotal,
				TaxAmount:      taxAmount,
				LineTotal:      lineTotal,
			}
			if err := tx.Create(item).Error; err != nil {
				return err
			}

			// Stock moves in the same unit of work as the line insert.
			res := tx.Model(&models.Product{}).
				Where("product_id = ? AND stock_quantity >= ?", product.ProductID, quantity).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrInsufficientStock
			}

			return increaseTotal(tx, &t, lineTotal)
		})
	})
	if err != nil {
		return nil, wrapStore(err)
	}
	return item, nil
}

// Pay records a payment against a transaction of either type and
// decrements the remaining balance by the same amount atomically with
// the payment insert. Overpayment is rejected, never clamped, and the
// check runs against the balance inside the same unit of work as the
// decrement. A fully paid transaction stays payable-queryable; only the
// overpayment check stops further attempts.
func (l *Ledger) Pay(transactionID uint, amount decimal.Decimal, details PaymentDetails) (*models.Payment, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if err := details.Validate(); err != nil {
		return nil, err
	}

	var payment *models.Payment
	err := withBalanceRetry(func() error {
		return l.db.Transaction(func(tx *gorm.DB) error {
			var t models.Transaction
			if err := tx.First(&t, "transaction_id = ?", transactionID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrInvalidTransaction
				}
				return err
			}
			if amount.GreaterThan(t.RemainingBalance) {
				return ErrOverpayment
			}

			payment = &models.Payment{
				TransactionID: t.TransactionID,
				AmountPaid:    amount,
				PaymentType:   details.Type,
				PaidAt:        time.Now(),
			}
			details.apply(payment)
			if err := tx.Create(payment).Error; err != nil {
				return err
			}

			return applyPayment(tx, &t, amount)
		})
	})
	if err != nil {
		return nil, wrapStore(err)
	}
	return payment, nil
}

// OpenRepair creates a REPAIR transaction whose total is fixed to the
// quoted cost, with the linked repair record starting PENDING. The
// remaining balance starts equal to the cost and only payments move it.
func (l *Ledger) OpenRepair(customerID, staffID uint, description string, cost decimal.Decimal, estimatedCompletion *time.Time) (*models.Transaction, error) {
	if !cost.IsPositive() {
		return nil, ErrInvalidCost
	}

	t := &models.Transaction{
		CustomerID:       customerID,
		StaffID:          staffID,
		TransactionType:  models.TransactionRepair,
		TotalAmount:      cost,
		RemainingBalance: cost,
	}
	repair := &models.RepairTransaction{
		Description:         description,
		Status:              models.RepairPending,
		EstimatedCompletion: estimatedCompletion,
	}

	err := l.db.Transaction(func(tx *gorm.DB) error {
		if err := customerExists(tx, customerID); err != nil {
			return err
		}
		if err := staffExists(tx, staffID); err != nil {
			return err
		}
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		repair.TransactionID = t.TransactionID
		return tx.Create(repair).Error
	})
	if err != nil {
		return nil, wrapStore(err)
	}
	t.Repair = repair
	return t, nil
}

// UpdateRepairStatus moves a repair between PENDING, IN_PROGRESS and
// COMPLETED. Status is independent of the balance columns.
func (l *Ledger) UpdateRepairStatus(transactionID uint, status models.RepairStatus) (*models.RepairTransaction, error) {
	if !models.ValidRepairStatus(status) {
		return nil, ErrInvalidStatus
	}

	var repair models.RepairTransaction
	err := l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&repair, "transaction_id = ?", transactionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidTransaction
			}
			return err
		}
		repair.Status = status
		return tx.Model(&models.RepairTransaction{}).
			Where("transaction_id = ?", transactionID).
			Update("status", status).Error
	})
	if err != nil {
		return nil, wrapStore(err)
	}
	return &repair, nil
}

// DeleteTransaction removes a transaction together with its items,
// payments and repair record. Administrative use only.
func (l *Ledger) DeleteTransaction(transactionID uint) error {
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var t models.Transaction
		if err := tx.First(&t, "transaction_id = ?", transactionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidTransaction
			}
			return err
		}
		if err := tx.Where("transaction_id = ?", transactionID).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("transaction_id = ?", transactionID).Delete(&models.SaleItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("transaction_id = ?", transactionID).Delete(&models.RepairTransaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&t).Error
	})
	return wrapStore(err)
}

// increaseTotal adds amount to both total and remaining balance of t,
// guarded by the values t was read with. Zero rows affected means a
// concurrent writer got there first.
func increaseTotal(tx *gorm.DB, t *models.Transaction, amount decimal.Decimal) error {
	res := tx.Model(&models.Transaction{}).
		Where("transaction_id = ? AND total_amount = ? AND remaining_balance = ?",
			t.TransactionID, t.TotalAmount, t.RemainingBalance).
		Updates(map[string]interface{}{
			"total_amount":      t.TotalAmount.Add(amount),
			"remaining_balance": t.RemainingBalance.Add(amount),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errBalanceConflict
	}
	t.TotalAmount = t.TotalAmount.Add(amount)
	t.RemainingBalance = t.RemainingBalance.Add(amount)
	return nil
}

// applyPayment decrements the remaining balance, guarded the same way as
// increaseTotal.
func applyPayment(tx *gorm.DB, t *models.Transaction, amount decimal.Decimal) error {
	res := tx.Model(&models.Transaction{}).
		Where("transaction_id = ? AND remaining_balance = ?",
			t.TransactionID, t.RemainingBalance).
		Update("remaining_balance", t.RemainingBalance.Sub(amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errBalanceConflict
	}
	t.RemainingBalance = t.RemainingBalance.Sub(amount)
	return nil
}

// withBalanceRetry re-runs op from scratch after a guarded-update
// conflict so the fresh read sees the committed balance. Conflicts after
// the last attempt surface as ErrConcurrentModification.
func withBalanceRetry(op func() error) error {
	for attempt := 0; attempt < balanceRetries; attempt++ {
		err := op()
		if !errors.Is(err, errBalanceConflict) {
			return err
		}
	}
	return ErrConcurrentModification
}

func customerExists(tx *gorm.DB, customerID uint) error {
	var n int64
	if err := tx.Model(&models.Customer{}).Where("customer_id = ?", customerID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrInvalidCustomer
	}
	return nil
}

func staffExists(tx *gorm.DB, staffID uint) error {
	var n int64
	if err := tx.Model(&models.Staff{}).Where("staff_id = ?", staffID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrInvalidStaff
	}
	return nil
}
