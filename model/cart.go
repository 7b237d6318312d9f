package model

import "time"

type CartStatus string

const (
	CartStatusActive    CartStatus = "ACTIVE"
	CartStatusConverted CartStatus = "CONVERTED"
)

// Cart is the one mutable aggregate per (user, tenant). Total is always
// recomputed from the lines, never written independently of them.
type Cart struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	TenantID   uint       `gorm:"index:idx_cart_owner" json:"tenant_id"`
	UserID     uint       `gorm:"index:idx_cart_owner" json:"user_id"`
	CurrencyID uint       `json:"currency_id"` // fixed by the first added item
	Status     CartStatus `gorm:"size:16" json:"status"`
	Total      int64      `json:"total"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	Lines []CartLine `gorm:"foreignKey:CartID" json:"lines"`
}

// CartLine snapshots the unit price seen when the item was first added, so a
// price change mid-session does not surprise the user. The snapshot is
// informational only; checkout always re-prices from the catalog.
type CartLine struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	CartID    uint  `gorm:"index" json:"cart_id"`
	ItemID    uint  `gorm:"index" json:"item_id"`
	Quantity  int64 `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
}

func (l CartLine) Subtotal() int64 {
	return l.UnitPrice * l.Quantity
}

// Recompute refreshes Total from the lines. Called on every cart mutation.
func (c *Cart) Recompute() {
	var total int64
	for _, l := range c.Lines {
		total += l.Subtotal()
	}
	c.Total = total
}

// FindLine returns the line for an item, or nil.
func (c *Cart) FindLine(itemID uint) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			return &c.Lines[i]
		}
	}
	return nil
}
