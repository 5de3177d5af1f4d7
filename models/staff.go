package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Staff represents staff table
type Staff struct {
	StaffID      uint            `gorm:"primaryKey;column:staff_id" json:"staff_id"`
	FirstName    string          `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName     string          `gorm:"type:varchar(50);not null" json:"last_name"`
	Email        string          `gorm:"type:varchar(100);not null;unique" json:"email"`
	Salary       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"salary"`
	Position     *string         `gorm:"type:varchar(50)" json:"position,omitempty"`
	PhoneNumber  *string         `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	DateOfBirth  *time.Time      `gorm:"type:date" json:"date_of_birth,omitempty"`
	JobStartDate time.Time       `gorm:"type:date;not null" json:"job_start_date"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Staff
func (Staff) TableName() string {
	return "staff"
}

// FullName returns the staff member's display name
func (s *Staff) FullName() string {
	return s.FirstName + " " + s.LastName
}
