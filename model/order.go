package model

import (
	"time"

	"gorm.io/datatypes"
)

// Order is the immutable header created at checkout. After creation only
// Status and the terminal timestamps ever change.
type Order struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Number      string         `gorm:"size:64;uniqueIndex" json:"number"`
	TenantID    uint           `gorm:"index" json:"tenant_id"`
	UserID      uint           `gorm:"index" json:"user_id"`
	CurrencyID  uint           `json:"currency_id"`
	TotalAmount int64          `json:"total_amount"`
	Subtotal    int64          `json:"subtotal"`
	Discount    int64          `json:"discount"`
	Shipping    int64          `json:"shipping"`
	Tax         int64          `json:"tax"` // item tax + shipping tax
	CouponCode  string         `gorm:"size:64" json:"coupon_code,omitempty"`
	Status      OrderStatus    `gorm:"size:24;index" json:"status"`
	Address     datatypes.JSON `json:"address,omitempty"` // shipping address snapshot
	CreatedAt   time.Time      `json:"created_at"`
	PaidAt      *time.Time     `json:"paid_at,omitempty"`
	ClosedAt    *time.Time     `json:"closed_at,omitempty"` // canceled / rejected / refunded

	Lines []OrderLine `gorm:"foreignKey:OrderID" json:"lines"`
}

// OrderLine fixes UnitPriceAtPurchase at checkout time. It is never recomputed
// from the catalog afterward.
type OrderLine struct {
	ID                  uint   `gorm:"primaryKey" json:"id"`
	OrderID             uint   `gorm:"index" json:"order_id"`
	ItemID              uint   `gorm:"index" json:"item_id"`
	ItemName            string `json:"item_name"`
	Quantity            int64  `json:"quantity"`
	UnitPriceAtPurchase int64  `json:"unit_price_at_purchase"`
	LineSubtotal        int64  `json:"line_subtotal"`
}

// AddressSnapshot is the shipping destination frozen onto the order.
type AddressSnapshot struct {
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country"` // ISO 3166-1 alpha-2
	Zip     string `json:"zip"`
}
