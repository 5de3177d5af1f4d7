package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type createSaleRequest struct {
	CustomerID uint `json:"customer_id" validate:"required"`
	StaffID    uint `json:"staff_id" validate:"required"`
}

type addItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	// Quantity is range-checked by the ledger so that zero and negative
	// values surface as INVALID_QUANTITY, not as a body validation error.
	Quantity       int   `json:"quantity"`
	PrescriptionID *uint `json:"prescription_id,omitempty"`
}

// SaleCreate opens an empty SALE transaction
// POST /sales
func SaleCreate(c *fiber.Ctx) error {
	var req createSaleRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	transaction, err := getLedger().OpenSale(req.CustomerID, req.StaffID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(transaction)
}

// SaleAddItem appends a line item to an open sale
// POST /sales/:id/items
func SaleAddItem(c *fiber.Ctx) error {
	transactionID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req addItemRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	item, err := getLedger().AddItem(transactionID, req.ProductID, req.Quantity, req.PrescriptionID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}
