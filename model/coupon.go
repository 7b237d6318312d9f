package model

import "time"

type DiscountType string

const (
	DiscountPercent      DiscountType = "PERCENT"
	DiscountFixed        DiscountType = "FIXED"
	DiscountFreeShipping DiscountType = "FREE_SHIPPING"
)

// Coupon is stateless with respect to an order except for UsedCount, which
// only ever increments.
type Coupon struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	TenantID     uint         `gorm:"index:idx_tenant_code" json:"tenant_id"`
	Code         string       `gorm:"size:64;index:idx_tenant_code,unique" json:"code"`
	DiscountType DiscountType `gorm:"size:16" json:"discount_type"`
	Value        int64        `json:"value"` // percent 0-100 or fixed minor units
	Active       bool         `json:"active"`
	ValidFrom    *time.Time   `json:"valid_from,omitempty"`
	ValidTo      *time.Time   `json:"valid_to,omitempty"`
	MinOrder     int64        `json:"min_order"`
	MaxDiscount  int64        `json:"max_discount"` // 0 = uncapped
	UsageLimit   int64        `json:"usage_limit"`  // 0 = unlimited
	UsedCount    int64        `json:"used_count"`
	CreatedAt    time.Time    `json:"created_at"`
}
