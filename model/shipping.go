package model

import "time"

type ShippingMode string

const (
	ShippingFlatRate          ShippingMode = "FLAT_RATE"
	ShippingWeightBased       ShippingMode = "WEIGHT_BASED"
	ShippingFreeOverThreshold ShippingMode = "FREE_OVER_THRESHOLD"
	ShippingFree              ShippingMode = "FREE"
	ShippingLocalPickup       ShippingMode = "LOCAL_PICKUP"
)

type ShippingMethod struct {
	ID       uint         `gorm:"primaryKey" json:"id"`
	TenantID uint         `gorm:"index:idx_tenant_ship" json:"tenant_id"`
	Code     string       `gorm:"size:64;index:idx_tenant_ship,unique" json:"code"`
	Name     string       `json:"name"`
	Mode     ShippingMode `gorm:"size:24" json:"mode"`
	// FlatPrice is the flat amount for FLAT_RATE and the fallback amount used
	// by FREE_OVER_THRESHOLD when the order is below the threshold.
	FlatPrice int64 `json:"flat_price"`
	// RatePerKg is the per-kilogram rate for WEIGHT_BASED pricing.
	RatePerKg int64 `json:"rate_per_kg"`
	// Threshold is the subtotal at which FREE_OVER_THRESHOLD becomes free.
	Threshold int64     `json:"threshold"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
