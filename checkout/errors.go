package checkout

import "errors"

var (
	ErrEmptyCart             = errors.New("cart is empty, nothing to checkout")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrCurrencyMismatch      = errors.New("currency mismatch")
	ErrPaymentMethodDisabled = errors.New("payment method not enabled for tenant")
	ErrShippingMethodUnknown = errors.New("shipping method not available")
	ErrItemUnavailable       = errors.New("item unavailable")
)
