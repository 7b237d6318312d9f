package pricing

import (
	"testing"
	"time"

	"commerce-backend/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatMethod(price int64) *model.ShippingMethod {
	return &model.ShippingMethod{Mode: model.ShippingFlatRate, FlatPrice: price, Active: true}
}

func itemTaxRule(bps int64) model.TaxRule {
	return model.TaxRule{Country: "US", RateBps: bps, Active: true}
}

func TestPrice_NoCoupon(t *testing.T) {
	// one line: qty=3 at 10.00, flat shipping 5.00, 10% tax on items only
	q, err := Price(Input{
		Lines:       []Line{{ItemID: 7, Quantity: 3, UnitPrice: 1000}},
		Method:      flatMethod(500),
		TaxRules:    []model.TaxRule{itemTaxRule(1000)},
		Destination: Destination{Country: "US"},
		Now:         time.Now(),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3000), q.ItemsSubtotal)
	assert.Equal(t, int64(0), q.Discount)
	assert.Equal(t, int64(500), q.ShippingTotal)
	assert.Equal(t, int64(300), q.ItemTax)
	assert.Equal(t, int64(0), q.ShippingTax)
	assert.Equal(t, int64(3800), q.GrandTotal)
}

func TestPrice_PercentCouponWithCap(t *testing.T) {
	// 20% coupon capped at 4.00: discount = min(6.00, 4.00), tax on 26.00
	coupon := &model.Coupon{
		Active:       true,
		DiscountType: model.DiscountPercent,
		Value:        20,
		MaxDiscount:  400,
	}

	q, err := Price(Input{
		Lines:       []Line{{ItemID: 7, Quantity: 3, UnitPrice: 1000}},
		Method:      flatMethod(500),
		Coupon:      coupon,
		TaxRules:    []model.TaxRule{itemTaxRule(1000)},
		Destination: Destination{Country: "US"},
		Now:         time.Now(),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(400), q.Discount)
	assert.Equal(t, int64(260), q.ItemTax)
	assert.Equal(t, int64(3360), q.GrandTotal)
	assert.True(t, q.CouponApplied)
}

func TestPrice_TotalConsistency(t *testing.T) {
	cases := []struct {
		name  string
		input Input
	}{
		{
			name: "fixed coupon and shipping tax",
			input: Input{
				Lines:  []Line{{Quantity: 2, UnitPrice: 1500, WeightG: 400}},
				Method: &model.ShippingMethod{Mode: model.ShippingWeightBased, RatePerKg: 300},
				Coupon: &model.Coupon{Active: true, DiscountType: model.DiscountFixed, Value: 500},
				TaxRules: []model.TaxRule{
					{Country: "DE", RateBps: 1900, AppliesToShipping: true, Active: true},
				},
				Destination: Destination{Country: "DE"},
			},
		},
		{
			name: "free shipping coupon",
			input: Input{
				Lines:       []Line{{Quantity: 1, UnitPrice: 9900}},
				Method:      flatMethod(700),
				Coupon:      &model.Coupon{Active: true, DiscountType: model.DiscountFreeShipping},
				Destination: Destination{Country: "US"},
			},
		},
		{
			name: "free over threshold met",
			input: Input{
				Lines:  []Line{{Quantity: 4, UnitPrice: 2500}},
				Method: &model.ShippingMethod{Mode: model.ShippingFreeOverThreshold, Threshold: 5000, FlatPrice: 900},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := Price(tc.input)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, q.Discount, int64(0))
			assert.LessOrEqual(t, q.Discount, q.ItemsSubtotal)
			assert.GreaterOrEqual(t, q.ItemTax, int64(0))
			assert.GreaterOrEqual(t, q.ShippingTax, int64(0))
			assert.Equal(t, q.ItemsSubtotal-q.Discount+q.ShippingTotal+q.ItemTax+q.ShippingTax, q.GrandTotal)
		})
	}
}

func TestPrice_FreeShippingCouponZeroesShippingOnly(t *testing.T) {
	q, err := Price(Input{
		Lines:       []Line{{Quantity: 1, UnitPrice: 2000}},
		Method:      flatMethod(800),
		Coupon:      &model.Coupon{Active: true, DiscountType: model.DiscountFreeShipping},
		Destination: Destination{Country: "US"},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(0), q.ShippingTotal)
	assert.Equal(t, int64(0), q.Discount)
	assert.Equal(t, int64(2000), q.GrandTotal)
}

func TestPrice_InvalidCouponSoftMode(t *testing.T) {
	expired := time.Now().Add(-time.Hour)
	coupon := &model.Coupon{
		Active:       true,
		DiscountType: model.DiscountPercent,
		Value:        50,
		ValidTo:      &expired,
	}

	q, err := Price(Input{
		Lines:  []Line{{Quantity: 1, UnitPrice: 1000}},
		Coupon: coupon,
		Now:    time.Now(),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(0), q.Discount)
	assert.False(t, q.CouponApplied)
	assert.Equal(t, int64(1000), q.GrandTotal)
}

func TestPrice_InvalidCouponStrictMode(t *testing.T) {
	coupon := &model.Coupon{Active: false, DiscountType: model.DiscountFixed, Value: 100}

	_, err := Price(Input{
		Lines:        []Line{{Quantity: 1, UnitPrice: 1000}},
		Coupon:       coupon,
		StrictCoupon: true,
		Now:          time.Now(),
	})

	assert.ErrorIs(t, err, ErrCouponInvalid)
}

func TestPrice_ZeroAndNegativeQuantitiesIgnored(t *testing.T) {
	q, err := Price(Input{
		Lines: []Line{
			{Quantity: 0, UnitPrice: 1000},
			{Quantity: -2, UnitPrice: 1000},
			{Quantity: 1, UnitPrice: 500},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(500), q.ItemsSubtotal)
}
