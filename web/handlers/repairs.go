package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/bdutucu/Optical-Store-Database/models"
)

type createRepairRequest struct {
	CustomerID          uint            `json:"customer_id" validate:"required"`
	StaffID             uint            `json:"staff_id" validate:"required"`
	Description         string          `json:"description" validate:"required"`
	Cost                decimal.Decimal `json:"cost"`
	EstimatedCompletion *time.Time      `json:"estimated_completion,omitempty"`
}

type updateRepairStatusRequest struct {
	Status models.RepairStatus `json:"status" validate:"required"`
}

// RepairCreate opens a REPAIR transaction with a fixed quoted cost
// POST /repairs
func RepairCreate(c *fiber.Ctx) error {
	var req createRepairRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	transaction, err := getLedger().OpenRepair(
		req.CustomerID, req.StaffID, req.Description, req.Cost, req.EstimatedCompletion)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(transaction)
}

// RepairUpdateStatus moves a repair between its lifecycle states
// PATCH /repairs/:id/status
func RepairUpdateStatus(c *fiber.Ctx) error {
	transactionID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req updateRepairStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	repair, err := getLedger().UpdateRepairStatus(transactionID, req.Status)
	if err != nil {
		return err
	}

	return c.JSON(repair)
}
