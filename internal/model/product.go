package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stock status values derived from StockQuantity vs ReorderThreshold
const (
	StatusOutOfStock = "out-of-stock"
	StatusLowStock   = "low-stock"
	StatusInStock    = "in-stock"
)

type Product struct {
	BaseModel
	Code        string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"product_code"` // read-only 6-digit code
	SKU         string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"sku"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id" validate:"uuid_required"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty" validate:"-"`
	Description string    `gorm:"type:text" json:"description"`

	CostPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"cost_price"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`

	InitialQuantity  int `gorm:"not null;default:0" json:"initial_quantity"`
	StockQuantity    int `gorm:"not null;default:0" json:"stock_quantity"`
	ReorderThreshold int `gorm:"not null;default:0" json:"reorder_threshold"`

	BatchNumber string     `gorm:"type:varchar(100)" json:"batch_number,omitempty"`
	ExpiryDate  *time.Time `gorm:"type:date" json:"expiry_date,omitempty"`

	// Code values only; image rendering happens client-side
	BarcodeValue string `gorm:"type:varchar(20);uniqueIndex" json:"barcode_value"`
	QRValue      string `gorm:"type:varchar(100)" json:"qr_value"`
	Image        string `gorm:"type:text" json:"image,omitempty"`
}

// Profit is derived at read time, never stored
func (p *Product) Profit() decimal.Decimal {
	return p.Price.Sub(p.CostPrice)
}

// StockStatus derives the three-valued status from quantity vs threshold.
// The same derivation is used everywhere a product is surfaced.
func (p *Product) StockStatus() string {
	switch {
	case p.StockQuantity == 0:
		return StatusOutOfStock
	case p.StockQuantity <= p.ReorderThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}
