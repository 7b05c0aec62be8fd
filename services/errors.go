package services

import "errors"

// Domain errors returned by the cart and order services. Handlers map these
// to HTTP status codes at the request boundary.
var (
	ErrInvalidQuantity  = errors.New("quantity must be greater than 0")
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("product not in cart")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrOrderNotFound    = errors.New("order not found")
	ErrInvalidStatus    = errors.New("unknown order status")
)
