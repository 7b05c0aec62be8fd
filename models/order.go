package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order status values. The intended path is Placed -> Processing -> Shipped ->
// Delivered, with Cancelled reachable from any non-terminal state. Transitions
// are not enforced; UpdateStatus overwrites unconditionally.
const (
	OrderStatusPlaced     = "Placed"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

var orderStatuses = map[string]struct{}{
	OrderStatusPlaced:     {},
	OrderStatusProcessing: {},
	OrderStatusShipped:    {},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// IsValidOrderStatus reports whether s is a member of the status enumeration.
func IsValidOrderStatus(s string) bool {
	_, ok := orderStatuses[s]
	return ok
}

type Order struct {
	gorm.Model
	OrderNumber   string `gorm:"uniqueIndex;not null"`
	UserID        uint   `gorm:"index;not null"`
	User          User
	OrderItems    []OrderItem     `gorm:"foreignKey:OrderID"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Name          string          `gorm:"not null"`
	Address       string          `gorm:"not null"`
	Phone         string
	PaymentMethod string
	Paid          bool   `gorm:"not null;default:false"`
	Status        string `gorm:"not null"`
}
