package pricing

import "errors"

var (
	// ErrCouponInvalid is returned only when strict coupon validation was
	// requested; otherwise an invalid coupon degrades to zero discount.
	ErrCouponInvalid = errors.New("coupon invalid")

	// ErrNegativeTotal means a computed grand total went below zero, which is
	// a pricing bug and is never silently clamped.
	ErrNegativeTotal = errors.New("grand total is negative")

	ErrNoShippingMethod = errors.New("shipping method not available")
)
