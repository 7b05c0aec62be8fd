package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartThenGet(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	ctx := context.Background()

	product := createTestProduct(t, db, "keyboard", "49.90", 10)

	_, err := carts.AddToCart(ctx, 1, product.ID, 2)
	require.NoError(t, err)

	view, err := carts.GetCart(ctx, 1)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, product.ID, view.Items[0].ProductID)
	assert.Equal(t, uint(2), view.Items[0].Quantity)

	// Adding the same product accumulates the quantity instead of replacing it.
	_, err = carts.AddToCart(ctx, 1, product.ID, 3)
	require.NoError(t, err)

	view, err = carts.GetCart(ctx, 1)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, uint(5), view.Items[0].Quantity)
}

func TestAddToCartValidation(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	ctx := context.Background()

	product := createTestProduct(t, db, "mouse", "19.90", 10)

	tests := []struct {
		name      string
		productID uint
		quantity  int
		wantErr   error
	}{
		{
			name:      "zero quantity",
			productID: product.ID,
			quantity:  0,
			wantErr:   ErrInvalidQuantity,
		},
		{
			name:      "negative quantity",
			productID: product.ID,
			quantity:  -3,
			wantErr:   ErrInvalidQuantity,
		},
		{
			name:      "unknown product",
			productID: 9999,
			quantity:  1,
			wantErr:   ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := carts.AddToCart(ctx, 1, tt.productID, tt.quantity)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	ctx := context.Background()

	product := createTestProduct(t, db, "monitor", "199.00", 5)

	_, err := carts.AddToCart(ctx, 1, product.ID, 2)
	require.NoError(t, err)

	require.NoError(t, carts.UpdateQuantity(ctx, 1, product.ID, 0))

	view, err := carts.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestUpdateQuantitySetsExactValue(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	ctx := context.Background()

	product := createTestProduct(t, db, "desk", "120.00", 5)

	_, err := carts.AddToCart(ctx, 1, product.ID, 4)
	require.NoError(t, err)

	require.NoError(t, carts.UpdateQuantity(ctx, 1, product.ID, 1))

	view, err := carts.GetCart(ctx, 1)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, uint(1), view.Items[0].Quantity)
}

func TestUpdateQuantityErrors(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	ctx := context.Background()

	product := createTestProduct(t, db, "lamp", "25.00", 5)

	assert.ErrorIs(t, carts.UpdateQuantity(ctx, 1, product.ID, -1), ErrInvalidQuantity)

	// No cart yet.
	assert.ErrorIs(t, carts.UpdateQuantity(ctx, 1, product.ID, 2), ErrCartItemNotFound)

	// Cart exists but the product is not in it.
	other := createTestProduct(t, db, "chair", "80.00", 5)
	_, err := carts.AddToCart(ctx, 1, other.ID, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, carts.UpdateQuantity(ctx, 1, product.ID, 2), ErrCartItemNotFound)
}

func TestRemoveFromCartIdempotent(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	ctx := context.Background()

	product := createTestProduct(t, db, "webcam", "59.00", 5)

	// Removing without any cart succeeds.
	require.NoError(t, carts.RemoveFromCart(ctx, 1, product.ID))

	_, err := carts.AddToCart(ctx, 1, product.ID, 1)
	require.NoError(t, err)

	require.NoError(t, carts.RemoveFromCart(ctx, 1, product.ID))
	// Removing an already removed entry still succeeds.
	require.NoError(t, carts.RemoveFromCart(ctx, 1, product.ID))

	view, err := carts.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestClearCart(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	ctx := context.Background()

	first := createTestProduct(t, db, "ssd", "99.00", 5)
	second := createTestProduct(t, db, "ram", "45.00", 5)

	_, err := carts.AddToCart(ctx, 1, first.ID, 1)
	require.NoError(t, err)
	_, err = carts.AddToCart(ctx, 1, second.ID, 2)
	require.NoError(t, err)

	require.NoError(t, carts.ClearCart(ctx, 1))

	view, err := carts.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	// Clearing an already empty (or missing) cart succeeds.
	require.NoError(t, carts.ClearCart(ctx, 1))
	require.NoError(t, carts.ClearCart(ctx, 42))
}

func TestGetCartAmounts(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	ctx := context.Background()

	discounted := createTestProduct(t, db, "headset", "10.00", 10)
	createTestOffer(t, db, discounted.ID, "20")
	plain := createTestProduct(t, db, "cable", "5.00", 10)

	_, err := carts.AddToCart(ctx, 1, discounted.ID, 2)
	require.NoError(t, err)
	_, err = carts.AddToCart(ctx, 1, plain.ID, 1)
	require.NoError(t, err)

	view, err := carts.GetCart(ctx, 1)
	require.NoError(t, err)

	// Subtotal 2*10 + 1*5 = 25; 20% off the headset line takes 4 off.
	assert.True(t, view.Subtotal.Equal(decimal.NewFromInt(25)), "subtotal = %s", view.Subtotal)
	assert.True(t, view.DiscountedTotal.Equal(decimal.NewFromInt(21)), "discountedTotal = %s", view.DiscountedTotal)
}

func TestGetCartEmpty(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)

	view, err := carts.GetCart(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.Subtotal.IsZero())
	assert.True(t, view.DiscountedTotal.IsZero())
}

func TestCartKeepsPriceSnapshot(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	ctx := context.Background()

	product := createTestProduct(t, db, "gpu", "300.00", 3)

	_, err := carts.AddToCart(ctx, 1, product.ID, 1)
	require.NoError(t, err)

	// A later catalog price change does not affect the snapshotted entry.
	product.Price = decimal.RequireFromString("350.00")
	require.NoError(t, db.Save(product).Error)

	view, err := carts.GetCart(ctx, 1)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.True(t, view.Items[0].Price.Equal(decimal.NewFromInt(300)))
	assert.True(t, view.Subtotal.Equal(decimal.NewFromInt(300)))
}

func TestCartsAreScopedPerUser(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	ctx := context.Background()

	product := createTestProduct(t, db, "mic", "75.00", 10)

	_, err := carts.AddToCart(ctx, 1, product.ID, 1)
	require.NoError(t, err)
	_, err = carts.AddToCart(ctx, 2, product.ID, 4)
	require.NoError(t, err)

	first, err := carts.GetCart(ctx, 1)
	require.NoError(t, err)
	second, err := carts.GetCart(ctx, 2)
	require.NoError(t, err)

	require.Len(t, first.Items, 1)
	require.Len(t, second.Items, 1)
	assert.Equal(t, uint(1), first.Items[0].Quantity)
	assert.Equal(t, uint(4), second.Items[0].Quantity)
}
