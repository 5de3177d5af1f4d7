package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bdutucu/Optical-Store-Database/ledger"
	"github.com/bdutucu/Optical-Store-Database/models"
)

// TransactionList lists transactions with optional filters
// GET /transactions?customer_id=&type=&from=&to=
func TransactionList(c *fiber.Ctx) error {
	var filter ledger.TransactionFilter

	if raw := c.Query("customer_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid customer_id filter")
		}
		customerID := uint(id)
		filter.CustomerID = &customerID
	}

	if raw := c.Query("type"); raw != "" {
		transactionType := models.TransactionType(raw)
		if transactionType != models.TransactionSale && transactionType != models.TransactionRepair {
			return fiber.NewError(fiber.StatusBadRequest, "type must be SALE or REPAIR")
		}
		filter.Type = &transactionType
	}

	if raw := c.Query("from"); raw != "" {
		from, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid from date, expected YYYY-MM-DD")
		}
		filter.From = &from
	}

	if raw := c.Query("to"); raw != "" {
		to, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid to date, expected YYYY-MM-DD")
		}
		// Inclusive end of day
		end := to.AddDate(0, 0, 1).Add(-time.Second)
		filter.To = &end
	}

	transactions, err := getLedger().ListTransactions(filter)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"transactions": transactions,
		"count":        len(transactions),
	})
}

// TransactionView returns one transaction with items and payments
// GET /transactions/:id
func TransactionView(c *fiber.Ctx) error {
	transactionID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	transaction, err := getLedger().GetTransaction(transactionID)
	if err != nil {
		return err
	}

	return c.JSON(transaction)
}

// TransactionDelete removes a transaction and everything it owns
// DELETE /transactions/:id
func TransactionDelete(c *fiber.Ctx) error {
	transactionID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := getLedger().DeleteTransaction(transactionID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
