package ledger

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/bdutucu/Optical-Store-Database/models"
)

// TransactionFilter narrows ListTransactions. Nil fields are ignored.
type TransactionFilter struct {
	CustomerID *uint
	Type       *models.TransactionType
	From       *time.Time
	To         *time.Time
}

// GetTransaction loads a transaction with its items, payments and repair
// record.
func (l *Ledger) GetTransaction(transactionID uint) (*models.Transaction, error) {
	var t models.Transaction
	err := l.db.
		Preload("Customer").
		Preload("Staff").
		Preload("Items").
		Preload("Items.Product").
		Preload("Payments").
		Preload("Repair").
		First(&t, "transaction_id = ?", transactionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidTransaction
		}
		return nil, wrapStore(err)
	}
	return &t, nil
}

// ListTransactions returns transactions matching the filter, newest
// first.
func (l *Ledger) ListTransactions(filter TransactionFilter) ([]models.Transaction, error) {
	query := l.db.Model(&models.Transaction{}).
		Preload("Customer").
		Preload("Staff")

	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Type != nil {
		query = query.Where("transaction_type = ?", *filter.Type)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}

	var transactions []models.Transaction
	if err := query.Order("created_at DESC").Find(&transactions).Error; err != nil {
		return nil, wrapStore(err)
	}
	return transactions, nil
}

// ListPayments returns the payments recorded against a transaction,
// newest first.
func (l *Ledger) ListPayments(transactionID uint) ([]models.Payment, error) {
	var n int64
	if err := l.db.Model(&models.Transaction{}).
		Where("transaction_id = ?", transactionID).
		Count(&n).Error; err != nil {
		return nil, wrapStore(err)
	}
	if n == 0 {
		return nil, ErrInvalidTransaction
	}

	var payments []models.Payment
	err := l.db.
		Where("transaction_id = ?", transactionID).
		Order("paid_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, wrapStore(err)
	}
	return payments, nil
}

// Outstanding returns transactions that still carry a balance, newest
// first.
func (l *Ledger) Outstanding() ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := l.db.Model(&models.Transaction{}).
		Preload("Customer").
		Where("remaining_balance > 0").
		Order("created_at DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, wrapStore(err)
	}
	return transactions, nil
}
