package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bdutucu/Optical-Store-Database/database"
	"github.com/bdutucu/Optical-Store-Database/models"
)

type productRequest struct {
	Brand         string             `json:"brand" validate:"required,max=50"`
	ProductType   models.ProductType `json:"product_type" validate:"required"`
	Price         decimal.Decimal    `json:"price"`
	TaxRate       *decimal.Decimal   `json:"tax_rate,omitempty"`
	StockQuantity int                `json:"stock_quantity" validate:"gte=0"`
	ModelOrSerial *string            `json:"model_or_serial,omitempty"`
	ColorInfo     *string            `json:"color_info,omitempty"`
	MaterialIDs   []uint             `json:"material_ids,omitempty"`
}

// defaultTaxRate applies when a product is created without one.
var defaultTaxRate = decimal.RequireFromString("20.00")

// ProductList lists products, optionally filtered by type or brand
// GET /products?type=&brand=&in_stock=
func ProductList(c *fiber.Ctx) error {
	db := database.GetDB()

	query := db.Model(&models.Product{}).Preload("Materials")
	if t := c.Query("type"); t != "" {
		if !models.ValidProductType(models.ProductType(t)) {
			return fiber.NewError(fiber.StatusBadRequest, "unknown product type")
		}
		query = query.Where("product_type = ?", t)
	}
	if brand := c.Query("brand"); brand != "" {
		query = query.Where("brand LIKE ?", "%"+brand+"%")
	}
	if c.QueryBool("in_stock") {
		query = query.Where("stock_quantity > 0")
	}

	var products []models.Product
	if err := query.Order("brand").Find(&products).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"products": products,
		"count":    len(products),
	})
}

// ProductView returns one product with its materials
// GET /products/:id
func ProductView(c *fiber.Ctx) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var product models.Product
	err = database.GetDB().
		Preload("Materials").
		First(&product, "product_id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	return c.JSON(product)
}

// ProductCreate adds a product. The product type tag must be one of the
// known variants; unknown tags never reach the store.
// POST /products
func ProductCreate(c *fiber.Ctx) error {
	var req productRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if !models.ValidProductType(req.ProductType) {
		return fiber.NewError(fiber.StatusBadRequest,
			"product_type must be FRAME, SUNGLASSES, LENS or CONTACT_LENS")
	}
	if !req.Price.IsPositive() {
		return fiber.NewError(fiber.StatusBadRequest, "price must be greater than zero")
	}

	taxRate := defaultTaxRate
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}

	db := database.GetDB()

	product := models.Product{
		Brand:         req.Brand,
		ProductType:   req.ProductType,
		Price:         req.Price,
		TaxRate:       taxRate,
		StockQuantity: req.StockQuantity,
		ModelOrSerial: req.ModelOrSerial,
		ColorInfo:     req.ColorInfo,
	}

	if len(req.MaterialIDs) > 0 {
		var materials []models.Material
		if err := db.Find(&materials, "material_id IN ?", req.MaterialIDs).Error; err != nil {
			return err
		}
		if len(materials) != len(req.MaterialIDs) {
			return fiber.NewError(fiber.StatusBadRequest, "unknown material id")
		}
		product.Materials = materials
	}

	if err := db.Create(&product).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

// ProductUpdate updates price, stock and details of a product
// PUT /products/:id
func ProductUpdate(c *fiber.Ctx) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req productRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if !models.ValidProductType(req.ProductType) {
		return fiber.NewError(fiber.StatusBadRequest,
			"product_type must be FRAME, SUNGLASSES, LENS or CONTACT_LENS")
	}
	if !req.Price.IsPositive() {
		return fiber.NewError(fiber.StatusBadRequest, "price must be greater than zero")
	}

	db := database.GetDB()

	var product models.Product
	if err := db.First(&product, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	product.Brand = req.Brand
	product.ProductType = req.ProductType
	product.Price = req.Price
	if req.TaxRate != nil {
		product.TaxRate = *req.TaxRate
	}
	product.StockQuantity = req.StockQuantity
	product.ModelOrSerial = req.ModelOrSerial
	product.ColorInfo = req.ColorInfo

	if err := db.Save(&product).Error; err != nil {
		return err
	}

	if req.MaterialIDs != nil {
		var materials []models.Material
		if err := db.Find(&materials, "material_id IN ?", req.MaterialIDs).Error; err != nil {
			return err
		}
		if err := db.Model(&product).Association("Materials").Replace(materials); err != nil {
			return err
		}
	}

	return c.JSON(product)
}

// ProductDelete removes a product that was never sold
// DELETE /products/:id
func ProductDelete(c *fiber.Ctx) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	db := database.GetDB()

	var soldCount int64
	if err := db.Model(&models.SaleItem{}).
		Where("product_id = ?", productID).
		Count(&soldCount).Error; err != nil {
		return err
	}
	if soldCount > 0 {
		return fiber.NewError(fiber.StatusConflict,
			"product appears on sale items and cannot be deleted")
	}

	res := db.Delete(&models.Product{}, "product_id = ?", productID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// MaterialList lists materials
// GET /materials
func MaterialList(c *fiber.Ctx) error {
	var materials []models.Material
	if err := database.GetDB().Order("material_name").Find(&materials).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"materials": materials,
	})
}

type materialRequest struct {
	MaterialName string `json:"material_name" validate:"required,max=50"`
}

// MaterialCreate adds a material
// POST /materials
func MaterialCreate(c *fiber.Ctx) error {
	var req materialRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	material := models.Material{MaterialName: req.MaterialName}
	if err := database.GetDB().Create(&material).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(material)
}
