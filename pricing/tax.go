package pricing

import "commerce-backend/model"

// Destination is where the order ships to.
type Destination struct {
	Country string
	Region  string
}

// ItemTax sums every matching rule's tax on the discounted item subtotal.
func ItemTax(rules []model.TaxRule, dest Destination, taxedBase int64) int64 {
	var tax int64
	for _, r := range rules {
		if !r.Matches(dest.Country, dest.Region) {
			continue
		}
		tax += taxedBase * r.RateBps / 10000
	}
	return tax
}

// ShippingTax taxes the shipping total, but only for rules flagged to apply
// to shipping.
func ShippingTax(rules []model.TaxRule, dest Destination, shippingTotal int64) int64 {
	var tax int64
	for _, r := range rules {
		if !r.AppliesToShipping || !r.Matches(dest.Country, dest.Region) {
			continue
		}
		tax += shippingTotal * r.RateBps / 10000
	}
	return tax
}
