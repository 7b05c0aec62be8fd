package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItem keeps the unit price snapshotted at the time the product was added.
type CartItem struct {
	gorm.Model
	CartID    uint `gorm:"index;not null"`
	ProductID uint `gorm:"not null"`
	Product   Product
	Quantity  uint            `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}
