package pricing

import (
	"time"

	"commerce-backend/model"
)

// Line is one cart position priced with the current catalog price. The cart's
// own price snapshot is informational only and never enters a quote.
type Line struct {
	ItemID    uint
	Quantity  int64
	UnitPrice int64
	WeightG   int64
}

// Input carries everything a quote needs; all lookups happen before pricing so
// the engine itself stays free of side effects.
type Input struct {
	Lines        []Line
	Method       *model.ShippingMethod // nil means no shipping leg (digital / pickup-less tenants)
	Coupon       *model.Coupon         // nil when no code was given or the code is unknown
	StrictCoupon bool
	TaxRules     []model.TaxRule
	Destination  Destination
	Now          time.Time
}

// Quote is the computed breakdown for a cart before order creation.
type Quote struct {
	ItemsSubtotal int64 `json:"items_subtotal"`
	Discount      int64 `json:"discount"`
	ShippingTotal int64 `json:"shipping_total"`
	ItemTax       int64 `json:"item_tax"`
	ShippingTax   int64 `json:"shipping_tax"`
	GrandTotal    int64 `json:"grand_total"`
	CouponApplied bool  `json:"coupon_applied"`
}

// Price composes the pricing primitives into one quote.
func Price(in Input) (Quote, error) {
	var q Quote

	for _, l := range in.Lines {
		if l.Quantity <= 0 {
			continue
		}
		q.ItemsSubtotal += l.UnitPrice * l.Quantity
	}

	freeShipping := false
	if in.Coupon != nil {
		if err := ValidateCoupon(in.Coupon, q.ItemsSubtotal, in.Now); err != nil {
			if in.StrictCoupon {
				return Quote{}, err
			}
			// soft mode: invalid coupon never fails checkout
		} else {
			q.Discount, freeShipping = CouponDiscount(in.Coupon, q.ItemsSubtotal)
			q.CouponApplied = true
		}
	}

	if in.Method != nil && !freeShipping {
		var weight int64
		for _, l := range in.Lines {
			weight += l.WeightG * l.Quantity
		}
		q.ShippingTotal = ShippingTotal(in.Method, q.ItemsSubtotal, weight)
	}

	q.ItemTax = ItemTax(in.TaxRules, in.Destination, q.ItemsSubtotal-q.Discount)
	q.ShippingTax = ShippingTax(in.TaxRules, in.Destination, q.ShippingTotal)

	q.GrandTotal = q.ItemsSubtotal - q.Discount + q.ShippingTotal + q.ItemTax + q.ShippingTax
	if q.GrandTotal < 0 {
		return Quote{}, ErrNegativeTotal
	}
	return q, nil
}
