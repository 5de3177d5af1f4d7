package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/bdutucu/Optical-Store-Database/database"
	"github.com/bdutucu/Optical-Store-Database/models"
)

type customerRequest struct {
	NationalID          string  `json:"national_id" validate:"required,max=20"`
	FirstName           string  `json:"first_name" validate:"required,max=50"`
	LastName            string  `json:"last_name" validate:"required,max=50"`
	MailAddress         *string `json:"mail_address,omitempty" validate:"omitempty,email"`
	InsuranceInfo       *string `json:"insurance_info,omitempty"`
	RegisteredByStaffID uint    `json:"registered_by_staff_id" validate:"required"`
}

// CustomerList lists customers, optionally filtered by name
// GET /customers?search=
func CustomerList(c *fiber.Ctx) error {
	db := database.GetDB()

	query := db.Model(&models.Customer{})
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ?", pattern, pattern)
	}

	var customers []models.Customer
	if err := query.Order("first_name, last_name").Find(&customers).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"customers": customers,
		"count":     len(customers),
	})
}

// CustomerView returns one customer
// GET /customers/:id
func CustomerView(c *fiber.Ctx) error {
	customerID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var customer models.Customer
	err = database.GetDB().
		Preload("RegisteredBy").
		First(&customer, "customer_id = ?", customerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "customer not found")
		}
		return err
	}

	return c.JSON(customer)
}

// CustomerCreate registers a new customer
// POST /customers
func CustomerCreate(c *fiber.Ctx) error {
	var req customerRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	customer := models.Customer{
		NationalID:          req.NationalID,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		MailAddress:         req.MailAddress,
		InsuranceInfo:       req.InsuranceInfo,
		RegisteredByStaffID: req.RegisteredByStaffID,
	}
	if err := database.GetDB().Create(&customer).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(customer)
}

// CustomerUpdate updates a customer's details
// PUT /customers/:id
func CustomerUpdate(c *fiber.Ctx) error {
	customerID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req customerRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	db := database.GetDB()

	var customer models.Customer
	if err := db.First(&customer, "customer_id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "customer not found")
		}
		return err
	}

	customer.NationalID = req.NationalID
	customer.FirstName = req.FirstName
	customer.LastName = req.LastName
	customer.MailAddress = req.MailAddress
	customer.InsuranceInfo = req.InsuranceInfo
	customer.RegisteredByStaffID = req.RegisteredByStaffID

	if err := db.Save(&customer).Error; err != nil {
		return err
	}

	return c.JSON(customer)
}

// CustomerDelete removes a customer without transactions
// DELETE /customers/:id
func CustomerDelete(c *fiber.Ctx) error {
	customerID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	db := database.GetDB()

	var transactionCount int64
	if err := db.Model(&models.Transaction{}).
		Where("customer_id = ?", customerID).
		Count(&transactionCount).Error; err != nil {
		return err
	}
	if transactionCount > 0 {
		return fiber.NewError(fiber.StatusConflict,
			"customer has transactions and cannot be deleted")
	}

	res := db.Delete(&models.Customer{}, "customer_id = ?", customerID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "customer not found")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
