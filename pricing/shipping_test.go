package pricing

import (
	"testing"

	"commerce-backend/model"

	"github.com/stretchr/testify/assert"
)

func TestShippingTotal(t *testing.T) {
	cases := []struct {
		name     string
		method   model.ShippingMethod
		subtotal int64
		weightG  int64
		want     int64
	}{
		{"flat rate", model.ShippingMethod{Mode: model.ShippingFlatRate, FlatPrice: 500}, 3000, 0, 500},
		{"free", model.ShippingMethod{Mode: model.ShippingFree, FlatPrice: 500}, 3000, 0, 0},
		{"local pickup", model.ShippingMethod{Mode: model.ShippingLocalPickup, FlatPrice: 500}, 3000, 0, 0},
		{"weight based one kg", model.ShippingMethod{Mode: model.ShippingWeightBased, RatePerKg: 300}, 3000, 1000, 300},
		{"weight based rounds up", model.ShippingMethod{Mode: model.ShippingWeightBased, RatePerKg: 300}, 3000, 1001, 600},
		{"weight based zero weight", model.ShippingMethod{Mode: model.ShippingWeightBased, RatePerKg: 300}, 3000, 0, 0},
		{"threshold met", model.ShippingMethod{Mode: model.ShippingFreeOverThreshold, Threshold: 2500, FlatPrice: 900}, 3000, 0, 0},
		{"threshold missed flat fallback", model.ShippingMethod{Mode: model.ShippingFreeOverThreshold, Threshold: 5000, FlatPrice: 900}, 3000, 0, 900},
		{"threshold missed weight fallback", model.ShippingMethod{Mode: model.ShippingFreeOverThreshold, Threshold: 5000, RatePerKg: 200}, 3000, 2000, 400},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ShippingTotal(&tc.method, tc.subtotal, tc.weightG))
		})
	}
}

func TestTaxSplit(t *testing.T) {
	rules := []model.TaxRule{
		{Country: "US", Region: "", RateBps: 1000, Active: true},
		{Country: "US", Region: "CA", RateBps: 250, AppliesToShipping: true, Active: true},
		{Country: "DE", RateBps: 1900, Active: true},
		{Country: "US", RateBps: 9999, Active: false},
	}

	dest := Destination{Country: "US", Region: "CA"}

	// items: 10% country-wide + 2.5% regional
	assert.Equal(t, int64(125), ItemTax(rules, dest, 1000))
	// shipping: only the regional rule is flagged for shipping
	assert.Equal(t, int64(25), ShippingTax(rules, dest, 1000))

	// other region only matches the country-wide rule
	other := Destination{Country: "US", Region: "NY"}
	assert.Equal(t, int64(100), ItemTax(rules, other, 1000))
	assert.Equal(t, int64(0), ShippingTax(rules, other, 1000))
}
