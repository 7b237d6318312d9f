package pricing

import "commerce-backend/model"

// ShippingTotal evaluates one shipping method against the cart's item subtotal
// and total weight in grams. Pure; the caller resolves the method row.
func ShippingTotal(m *model.ShippingMethod, subtotal, weightG int64) int64 {
	switch m.Mode {
	case model.ShippingFree, model.ShippingLocalPickup:
		return 0
	case model.ShippingFlatRate:
		return m.FlatPrice
	case model.ShippingWeightBased:
		return weightPrice(m, weightG)
	case model.ShippingFreeOverThreshold:
		if subtotal >= m.Threshold {
			return 0
		}
		if m.RatePerKg > 0 {
			return weightPrice(m, weightG)
		}
		return m.FlatPrice
	}
	return m.FlatPrice
}

// weightPrice charges per started kilogram.
func weightPrice(m *model.ShippingMethod, weightG int64) int64 {
	if weightG <= 0 {
		return 0
	}
	kg := (weightG + 999) / 1000
	return kg * m.RatePerKg
}
