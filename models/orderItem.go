package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem is an immutable snapshot of a cart entry at placement time.
type OrderItem struct {
	gorm.Model
	OrderID   uint `gorm:"index;not null"`
	ProductID uint `gorm:"not null"`
	Product   Product
	Quantity  uint            `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}
