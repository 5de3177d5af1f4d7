package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Prescription represents prescriptions table.
// SPH/CYL are stored to two decimals, axis in whole degrees (0-180).
type Prescription struct {
	PrescriptionID     uint             `gorm:"primaryKey;column:prescription_id" json:"prescription_id"`
	CustomerID         uint             `gorm:"not null" json:"customer_id"`
	StaffID            *uint            `json:"staff_id,omitempty"`
	DateOfPrescription time.Time        `gorm:"type:date;not null" json:"date_of_prescription"`
	DoctorName         *string          `gorm:"type:varchar(100)" json:"doctor_name,omitempty"`
	RightSPH           *decimal.Decimal `gorm:"type:decimal(5,2)" json:"right_sph,omitempty"`
	RightCYL           *decimal.Decimal `gorm:"type:decimal(5,2)" json:"right_cyl,omitempty"`
	RightAX            *int             `gorm:"check:right_ax BETWEEN 0 AND 180" json:"right_ax,omitempty"`
	LeftSPH            *decimal.Decimal `gorm:"type:decimal(5,2)" json:"left_sph,omitempty"`
	LeftCYL            *decimal.Decimal `gorm:"type:decimal(5,2)" json:"left_cyl,omitempty"`
	LeftAX             *int             `gorm:"check:left_ax BETWEEN 0 AND 180" json:"left_ax,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`

	// Relationships
	Customer Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Staff    *Staff   `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
}

// TableName specifies the table name for Prescription
func (Prescription) TableName() string {
	return "prescriptions"
}
