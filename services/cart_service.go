package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront/models"
)

// CartService owns every mutation of a user's cart and the cart pricing
// rules (subtotal and offer-discounted total).
type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// CartView is the read model returned by GetCart: the ordered cart entries
// plus the computed amounts.
type CartView struct {
	Items           []models.CartItem
	Subtotal        decimal.Decimal
	DiscountedTotal decimal.Decimal
}

func (s *CartService) getOrCreateCart(db *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := db.
		Where("user_id = ?", userID).
		FirstOrCreate(&cart, models.Cart{UserID: userID}).
		Error
	if err != nil {
		return nil, fmt.Errorf("get or create cart: %w", err)
	}
	return &cart, nil
}

// AddToCart upserts a cart entry. Adding a product already in the cart
// accumulates the quantity instead of replacing it. The unit price is
// snapshotted from the catalog when the entry is first created.
func (s *CartService) AddToCart(ctx context.Context, userID uint, productID uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	db := s.db.WithContext(ctx)

	var product models.Product
	err := db.First(&product, "id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	cart, err := s.getOrCreateCart(db, userID)
	if err != nil {
		return nil, err
	}

	var cartItem models.CartItem
	err = db.
		Where("cart_id = ? AND product_id = ?", cart.ID, productID).
		First(&cartItem).
		Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("get cart item: %w", err)
		}
		cartItem = models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  uint(quantity),
			Price:     product.Price,
		}
		if err := db.Create(&cartItem).Error; err != nil {
			return nil, fmt.Errorf("create cart item: %w", err)
		}
		return &cartItem, nil
	}

	cartItem.Quantity += uint(quantity)
	if err := db.Save(&cartItem).Error; err != nil {
		return nil, fmt.Errorf("update cart item: %w", err)
	}
	return &cartItem, nil
}

// GetCart returns the cart entries in insertion order together with the
// subtotal and the discounted total (subtotal minus active per-product
// offer discounts).
func (s *CartService) GetCart(ctx context.Context, userID uint) (*CartView, error) {
	db := s.db.WithContext(ctx)

	view := &CartView{
		Subtotal:        decimal.Zero,
		DiscountedTotal: decimal.Zero,
	}

	var cart models.Cart
	err := db.
		Where("user_id = ?", userID).
		Preload("CartItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at ASC")
		}).
		Preload("CartItems.Product").
		Preload("CartItems.Product.Offers", "active = ?", true).
		First(&cart).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return view, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	hundred := decimal.NewFromInt(100)
	discount := decimal.Zero
	for _, item := range cart.CartItems {
		qty := decimal.NewFromInt(int64(item.Quantity))
		lineTotal := item.Price.Mul(qty)
		view.Subtotal = view.Subtotal.Add(lineTotal)

		for _, offer := range item.Product.Offers {
			discount = discount.Add(lineTotal.Mul(offer.Percent).Div(hundred))
		}
	}

	view.Items = cart.CartItems
	view.Subtotal = view.Subtotal.Round(2)
	view.DiscountedTotal = view.Subtotal.Sub(discount).Round(2)
	if view.DiscountedTotal.IsNegative() {
		view.DiscountedTotal = decimal.Zero
	}

	return view, nil
}

// RemoveFromCart deletes the entry for the product. Removing a product that
// is not in the cart succeeds without an error.
func (s *CartService) RemoveFromCart(ctx context.Context, userID uint, productID uint) error {
	db := s.db.WithContext(ctx)

	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("get cart: %w", err)
	}

	err = db.
		Where("cart_id = ? AND product_id = ?", cart.ID, productID).
		Delete(&models.CartItem{}).
		Error
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

// UpdateQuantity sets the exact quantity of a cart entry. A quantity of 0 is
// equivalent to removal; a negative quantity is a validation error.
func (s *CartService) UpdateQuantity(ctx context.Context, userID uint, productID uint, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	if quantity == 0 {
		return s.RemoveFromCart(ctx, userID, productID)
	}

	db := s.db.WithContext(ctx)

	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return fmt.Errorf("get cart: %w", err)
	}

	var cartItem models.CartItem
	err = db.
		Where("cart_id = ? AND product_id = ?", cart.ID, productID).
		First(&cartItem).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return fmt.Errorf("get cart item: %w", err)
	}

	cartItem.Quantity = uint(quantity)
	if err := db.Save(&cartItem).Error; err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	return nil
}

// ClearCart empties the user's cart. Called directly and by order placement.
func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	db := s.db.WithContext(ctx)

	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("get cart: %w", err)
	}

	err = db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
