package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/bdutucu/Optical-Store-Database/database"
	"github.com/bdutucu/Optical-Store-Database/ledger"
	"github.com/bdutucu/Optical-Store-Database/models"
)

type createPaymentRequest struct {
	Amount      decimal.Decimal    `json:"amount"`
	PaymentType models.PaymentType `json:"payment_type" validate:"required"`
	ReceivedBy  string             `json:"received_by,omitempty"`
	CardOwner   string             `json:"card_owner,omitempty"`
}

// PaymentCreate records a payment against a transaction
// POST /transactions/:id/payments
func PaymentCreate(c *fiber.Ctx) error {
	transactionID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req createPaymentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	details := ledger.PaymentDetails{
		Type:       req.PaymentType,
		ReceivedBy: req.ReceivedBy,
		CardOwner:  req.CardOwner,
	}
	payment, err := getLedger().Pay(transactionID, req.Amount, details)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(payment)
}

// PaymentList returns the payments of one transaction
// GET /transactions/:id/payments
func PaymentList(c *fiber.Ctx) error {
	transactionID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	payments, err := getLedger().ListPayments(transactionID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"payments": payments,
	})
}

// PaymentIndex lists all payments with customer context
// GET /payments
func PaymentIndex(c *fiber.Ctx) error {
	db := database.GetDB()

	var payments []struct {
		PaymentID       uint               `json:"payment_id"`
		TransactionID   uint               `json:"transaction_id"`
		AmountPaid      decimal.Decimal    `json:"amount_paid"`
		PaymentType     models.PaymentType `json:"payment_type"`
		PaidAt          time.Time          `json:"paid_at"`
		CustomerName    string             `json:"customer_name"`
		TransactionType string             `json:"transaction_type"`
	}

	err := db.Raw(`
		SELECT p.payment_id, p.transaction_id, p.amount_paid, p.payment_type, p.paid_at,
		       c.first_name || ' ' || c.last_name AS customer_name,
		       t.transaction_type
		FROM payments p
		JOIN transactions t ON p.transaction_id = t.transaction_id
		JOIN customers c ON t.customer_id = c.customer_id
		ORDER BY p.paid_at DESC
	`).Scan(&payments).Error
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"payments": payments,
	})
}
