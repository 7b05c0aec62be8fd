package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name        string          `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock       uint            `gorm:"not null"`
	Description string
	ImageURL    string
	Offers      []Offer `gorm:"foreignKey:ProductID"`
}
