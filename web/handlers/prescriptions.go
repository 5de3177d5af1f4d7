package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bdutucu/Optical-Store-Database/database"
	"github.com/bdutucu/Optical-Store-Database/models"
)

type prescriptionRequest struct {
	CustomerID         uint             `json:"customer_id" validate:"required"`
	StaffID            *uint            `json:"staff_id,omitempty"`
	DateOfPrescription time.Time        `json:"date_of_prescription" validate:"required"`
	DoctorName         *string          `json:"doctor_name,omitempty" validate:"omitempty,max=100"`
	RightSPH           *decimal.Decimal `json:"right_sph,omitempty"`
	RightCYL           *decimal.Decimal `json:"right_cyl,omitempty"`
	RightAX            *int             `json:"right_ax,omitempty" validate:"omitempty,gte=0,lte=180"`
	LeftSPH            *decimal.Decimal `json:"left_sph,omitempty"`
	LeftCYL            *decimal.Decimal `json:"left_cyl,omitempty"`
	LeftAX             *int             `json:"left_ax,omitempty" validate:"omitempty,gte=0,lte=180"`
}

// PrescriptionList lists prescriptions, optionally for one customer
// GET /prescriptions?customer_id=
func PrescriptionList(c *fiber.Ctx) error {
	db := database.GetDB()

	query := db.Model(&models.Prescription{}).Preload("Customer")
	if raw := c.Query("customer_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid customer_id filter")
		}
		query = query.Where("customer_id = ?", id)
	}

	var prescriptions []models.Prescription
	if err := query.Order("date_of_prescription DESC").Find(&prescriptions).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"prescriptions": prescriptions,
		"count":         len(prescriptions),
	})
}

// PrescriptionView returns one prescription
// GET /prescriptions/:id
func PrescriptionView(c *fiber.Ctx) error {
	prescriptionID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var prescription models.Prescription
	err = database.GetDB().
		Preload("Customer").
		Preload("Staff").
		First(&prescription, "prescription_id = ?", prescriptionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "prescription not found")
		}
		return err
	}

	return c.JSON(prescription)
}

// PrescriptionCreate records a prescription for a customer
// POST /prescriptions
func PrescriptionCreate(c *fiber.Ctx) error {
	var req prescriptionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	prescription := models.Prescription{
		CustomerID:         req.CustomerID,
		StaffID:            req.StaffID,
		DateOfPrescription: req.DateOfPrescription,
		DoctorName:         req.DoctorName,
		RightSPH:           req.RightSPH,
		RightCYL:           req.RightCYL,
		RightAX:            req.RightAX,
		LeftSPH:            req.LeftSPH,
		LeftCYL:            req.LeftCYL,
		LeftAX:             req.LeftAX,
	}
	if err := database.GetDB().Create(&prescription).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(prescription)
}
