package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront/models"
)

// OrderService converts carts into orders and answers order queries.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// PlaceOrderRequest holds the delivery and payment details for placement.
type PlaceOrderRequest struct {
	Name          string
	Address       string
	Phone         string
	PaymentMethod string
}

func generateOrderNumber() string {
	return "ORD-" + uuid.New().String()
}

// PlaceOrder snapshots the current cart into an immutable order and clears
// the cart. Cart read, order write, and cart clear run in one database
// transaction, so a failure anywhere leaves both cart and orders untouched.
// Line items capture the catalog price current at placement time, so the
// order total may differ from the last cart view if the catalog changed in
// between. A carted product that has since left the catalog fails the whole
// placement.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint, req PlaceOrderRequest) (*models.Order, error) {
	var order *models.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		err := tx.
			Where("user_id = ?", userID).
			Preload("CartItems", func(db *gorm.DB) *gorm.DB {
				return db.Order("cart_items.created_at ASC")
			}).
			Preload("CartItems.Product").
			First(&cart).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return fmt.Errorf("get cart: %w", err)
		}
		if len(cart.CartItems) == 0 {
			return ErrEmptyCart
		}

		total := decimal.Zero
		orderItems := make([]models.OrderItem, len(cart.CartItems))
		for i, item := range cart.CartItems {
			// A deleted product preloads as a zero value; without this
			// check the line would be priced at zero.
			if item.Product.ID == 0 {
				return ErrProductNotFound
			}
			qty := decimal.NewFromInt(int64(item.Quantity))
			orderItems[i] = models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Product.Price,
			}
			total = total.Add(item.Product.Price.Mul(qty))
		}

		newOrder := models.Order{
			OrderNumber:   generateOrderNumber(),
			UserID:        userID,
			OrderItems:    orderItems,
			Total:         total.Round(2),
			Name:          req.Name,
			Address:       req.Address,
			Phone:         req.Phone,
			PaymentMethod: req.PaymentMethod,
			Paid:          isImmediatePayment(req.PaymentMethod),
			Status:        models.OrderStatusPlaced,
		}
		if err := tx.Create(&newOrder).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		err = tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
		if err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		// Reload with products so the caller gets a complete order.
		err = tx.Preload("OrderItems.Product").First(&newOrder, "id = ?", newOrder.ID).Error
		if err != nil {
			return fmt.Errorf("reload order: %w", err)
		}

		order = &newOrder
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// Cash on delivery is settled later; everything else is treated as paid at
// placement.
func isImmediatePayment(method string) bool {
	return method != "" && !strings.EqualFold(method, "cod")
}

// UserOrders returns all orders owned by the user, newest first.
func (s *OrderService) UserOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("OrderItems").
		Preload("OrderItems.Product").
		Order("created_at DESC").
		Find(&orders).
		Error
	if err != nil {
		return nil, fmt.Errorf("get user orders: %w", err)
	}
	return orders, nil
}

// OrderByID returns a single order, scoped to its owner.
func (s *OrderService) OrderByID(ctx context.Context, userID uint, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		Preload("OrderItems").
		Preload("OrderItems.Product").
		First(&order).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &order, nil
}

// AllOrders returns every order across users, newest first.
func (s *OrderService) AllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("OrderItems").
		Preload("OrderItems.Product").
		Order("created_at DESC").
		Find(&orders).
		Error
	if err != nil {
		return nil, fmt.Errorf("get all orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus assigns the status unconditionally. Only membership in the
// status enumeration is checked; any status may overwrite any other. When
// paid is non-nil the paid flag is updated in the same write.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, status string, paid *bool) error {
	if !models.IsValidOrderStatus(status) {
		return ErrInvalidStatus
	}

	db := s.db.WithContext(ctx)

	var order models.Order
	err := db.First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("get order: %w", err)
	}

	order.Status = status
	if paid != nil {
		order.Paid = *paid
	}
	if err := db.Save(&order).Error; err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// TotalPaid sums the totals of all orders flagged paid. The sum is computed
// in decimal arithmetic; no paid orders yields zero.
func (s *OrderService) TotalPaid(ctx context.Context) (decimal.Decimal, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Where("paid = ?", true).
		Find(&orders).
		Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("get paid orders: %w", err)
	}

	total := decimal.Zero
	for _, order := range orders {
		total = total.Add(order.Total)
	}
	return total, nil
}
