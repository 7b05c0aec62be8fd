package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Offer is a per-product percentage discount applied when pricing a cart.
type Offer struct {
	gorm.Model
	ProductID uint            `gorm:"index;not null"`
	Percent   decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Active    bool            `gorm:"not null;default:true"`
}
