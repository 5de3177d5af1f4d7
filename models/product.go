package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductType type for product variants
type ProductType string

const (
	ProductFrame       ProductType = "FRAME"
	ProductSunglasses  ProductType = "SUNGLASSES"
	ProductLens        ProductType = "LENS"
	ProductContactLens ProductType = "CONTACT_LENS"
)

// ValidProductType reports whether t is one of the known product variants.
func ValidProductType(t ProductType) bool {
	switch t {
	case ProductFrame, ProductSunglasses, ProductLens, ProductContactLens:
		return true
	}
	return false
}

// Product represents products table
type Product struct {
	ProductID     uint            `gorm:"primaryKey;column:product_id" json:"product_id"`
	Brand         string          `gorm:"type:varchar(50);not null" json:"brand"`
	ProductType   ProductType     `gorm:"type:varchar(20);not null" json:"product_type"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(5,2);not null;default:20.00" json:"tax_rate"`
	StockQuantity int             `gorm:"not null;default:0;check:stock_quantity >= 0" json:"stock_quantity"`
	ModelOrSerial *string         `gorm:"type:varchar(100)" json:"model_or_serial,omitempty"`
	ColorInfo     *string         `gorm:"type:varchar(50)" json:"color_info,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relationships
	Materials []Material `gorm:"many2many:product_materials" json:"materials,omitempty"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}

// Material represents materials table
type Material struct {
	MaterialID   uint      `gorm:"primaryKey;column:material_id" json:"material_id"`
	MaterialName string    `gorm:"type:varchar(50);not null;unique" json:"material_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for Material
func (Material) TableName() string {
	return "materials"
}
