package pricing

import (
	"fmt"
	"time"

	"commerce-backend/model"
)

// ValidateCoupon checks a coupon against the cart subtotal at a given instant.
// The returned error always wraps ErrCouponInvalid.
func ValidateCoupon(c *model.Coupon, subtotal int64, now time.Time) error {
	if !c.Active {
		return fmt.Errorf("%w: not active", ErrCouponInvalid)
	}
	if c.ValidFrom != nil && now.Before(*c.ValidFrom) {
		return fmt.Errorf("%w: not yet valid", ErrCouponInvalid)
	}
	if c.ValidTo != nil && now.After(*c.ValidTo) {
		return fmt.Errorf("%w: expired", ErrCouponInvalid)
	}
	if subtotal < c.MinOrder {
		return fmt.Errorf("%w: order below minimum", ErrCouponInvalid)
	}
	if c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit {
		return fmt.Errorf("%w: usage limit reached", ErrCouponInvalid)
	}
	return nil
}

// CouponDiscount computes the item discount for a valid coupon. FREE_SHIPPING
// returns a zero item discount and signals free shipping instead. The discount
// is capped by MaxDiscount (when set) and by the subtotal itself.
func CouponDiscount(c *model.Coupon, subtotal int64) (discount int64, freeShipping bool) {
	switch c.DiscountType {
	case model.DiscountFreeShipping:
		return 0, true
	case model.DiscountPercent:
		discount = subtotal * c.Value / 100
	case model.DiscountFixed:
		discount = c.Value
	}
	if c.MaxDiscount > 0 && discount > c.MaxDiscount {
		discount = c.MaxDiscount
	}
	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}
	return discount, false
}
