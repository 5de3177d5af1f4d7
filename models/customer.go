package models

import "time"

// Customer represents customers table
type Customer struct {
	CustomerID          uint      `gorm:"primaryKey;column:customer_id" json:"customer_id"`
	NationalID          string    `gorm:"type:varchar(20);not null;unique" json:"national_id"`
	FirstName           string    `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName            string    `gorm:"type:varchar(50);not null" json:"last_name"`
	MailAddress         *string   `gorm:"type:varchar(100)" json:"mail_address,omitempty"`
	InsuranceInfo       *string   `gorm:"type:text" json:"insurance_info,omitempty"`
	RegisteredByStaffID uint      `gorm:"not null" json:"registered_by_staff_id"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	// Relationships
	RegisteredBy Staff `gorm:"foreignKey:RegisteredByStaffID" json:"registered_by,omitempty"`
}

// TableName specifies the table name for Customer
func (Customer) TableName() string {
	return "customers"
}

// FullName returns the customer's display name
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
