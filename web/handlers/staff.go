package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bdutucu/Optical-Store-Database/database"
	"github.com/bdutucu/Optical-Store-Database/models"
)

type staffRequest struct {
	FirstName    string          `json:"first_name" validate:"required,max=50"`
	LastName     string          `json:"last_name" validate:"required,max=50"`
	Email        string          `json:"email" validate:"required,email"`
	Salary       decimal.Decimal `json:"salary"`
	Position     *string         `json:"position,omitempty"`
	PhoneNumber  *string         `json:"phone_number,omitempty"`
	DateOfBirth  *time.Time      `json:"date_of_birth,omitempty"`
	JobStartDate time.Time       `json:"job_start_date" validate:"required"`
}

// StaffList lists all staff members
// GET /staff
func StaffList(c *fiber.Ctx) error {
	var staff []models.Staff
	if err := database.GetDB().Order("first_name, last_name").Find(&staff).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"staff": staff,
		"count": len(staff),
	})
}

// StaffView returns one staff member
// GET /staff/:id
func StaffView(c *fiber.Ctx) error {
	staffID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var staff models.Staff
	if err := database.GetDB().First(&staff, "staff_id = ?", staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "staff member not found")
		}
		return err
	}

	return c.JSON(staff)
}

// StaffCreate adds a staff member
// POST /staff
func StaffCreate(c *fiber.Ctx) error {
	var req staffRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if !req.Salary.IsPositive() {
		return fiber.NewError(fiber.StatusBadRequest, "salary must be greater than zero")
	}

	staff := models.Staff{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Salary:       req.Salary,
		Position:     req.Position,
		PhoneNumber:  req.PhoneNumber,
		DateOfBirth:  req.DateOfBirth,
		JobStartDate: req.JobStartDate,
	}
	if err := database.GetDB().Create(&staff).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(staff)
}
