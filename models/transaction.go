package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType type for transactions
type TransactionType string

const (
	TransactionSale   TransactionType = "SALE"
	TransactionRepair TransactionType = "REPAIR"
)

// PaymentType type for payment variants
type PaymentType string

const (
	PaymentCash       PaymentType = "CASH"
	PaymentCreditCard PaymentType = "CREDIT_CARD"
)

// RepairStatus type for repair lifecycle
type RepairStatus string

const (
	RepairPending    RepairStatus = "PENDING"
	RepairInProgress RepairStatus = "IN_PROGRESS"
	RepairCompleted  RepairStatus = "COMPLETED"
)

// ValidRepairStatus reports whether s is a known repair status.
func ValidRepairStatus(s RepairStatus) bool {
	switch s {
	case RepairPending, RepairInProgress, RepairCompleted:
		return true
	}
	return false
}

// Transaction represents transactions table.
// Invariant after every committed operation:
// 0 <= remaining_balance <= total_amount.
type Transaction struct {
	TransactionID    uint            `gorm:"primaryKey;column:transaction_id" json:"transaction_id"`
	CustomerID       uint            `gorm:"not null" json:"customer_id"`
	StaffID          uint            `gorm:"not null" json:"staff_id"`
	TransactionType  TransactionType `gorm:"type:varchar(10);not null" json:"transaction_type"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_amount"`
	RemainingBalance decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"remaining_balance"`
	CreatedAt        time.Time       `json:"created_at"`

	// Relationships
	Customer Customer           `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Staff    Staff              `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	Items    []SaleItem         `gorm:"foreignKey:TransactionID" json:"items,omitempty"`
	Payments []Payment          `gorm:"foreignKey:TransactionID" json:"payments,omitempty"`
	Repair   *RepairTransaction `gorm:"foreignKey:TransactionID" json:"repair,omitempty"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}

// SaleItem represents sale_items table.
// Line amounts are always recomputed from quantity, unit price and tax
// rate at insert time, never accepted from the caller.
type SaleItem struct {
	SaleItemID     uint            `gorm:"primaryKey;column:sale_item_id" json:"sale_item_id"`
	TransactionID  uint            `gorm:"not null;index" json:"transaction_id"`
	ProductID      uint            `gorm:"not null" json:"product_id"`
	PrescriptionID *uint           `json:"prescription_id,omitempty"`
	Quantity       int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	TaxRate        decimal.Decimal `gorm:"type:decimal(5,2);not null;default:20.00" json:"tax_rate"`
	SubTotal       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"sub_total"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"tax_amount"`
	LineTotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"line_total"`
	CreatedAt      time.Time       `json:"created_at"`

	// Relationships
	Product      Product       `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Prescription *Prescription `gorm:"foreignKey:PrescriptionID" json:"prescription,omitempty"`
}

// TableName specifies the table name for SaleItem
func (SaleItem) TableName() string {
	return "sale_items"
}

// Payment represents payments table.
// Exactly one of ReceivedBy (CASH) or CardOwner (CREDIT_CARD) is set,
// matching PaymentType. Rows are immutable once committed.
type Payment struct {
	PaymentID     uint            `gorm:"primaryKey;column:payment_id" json:"payment_id"`
	TransactionID uint            `gorm:"not null;index" json:"transaction_id"`
	AmountPaid    decimal.Decimal `gorm:"type:decimal(12,2);not null;check:amount_paid > 0" json:"amount_paid"`
	PaymentType   PaymentType     `gorm:"type:varchar(20);not null" json:"payment_type"`
	ReceivedBy    *string         `gorm:"type:varchar(50)" json:"received_by,omitempty"`
	CardOwner     *string         `gorm:"type:varchar(100)" json:"card_owner,omitempty"`
	PaidAt        time.Time       `gorm:"not null" json:"paid_at"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// RepairTransaction represents repair_transactions table, 1:1 with the
// owning REPAIR transaction.
type RepairTransaction struct {
	TransactionID       uint         `gorm:"primaryKey;column:transaction_id" json:"transaction_id"`
	Description         string       `gorm:"type:text;not null" json:"description"`
	Status              RepairStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	EstimatedCompletion *time.Time   `gorm:"type:date" json:"estimated_completion,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

// TableName specifies the table name for RepairTransaction
func (RepairTransaction) TableName() string {
	return "repair_transactions"
}
