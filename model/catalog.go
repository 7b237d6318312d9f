package model

import "time"

// CatalogItemKind distinguishes the concrete item variants a storefront sells.
type CatalogItemKind string

const (
	ItemKindProduct  CatalogItemKind = "PRODUCT"
	ItemKindActivity CatalogItemKind = "ACTIVITY"
)

// Listing is what checkout and cart views need from any sellable variant,
// resolved by interface dispatch instead of runtime field probing.
type Listing interface {
	DisplayName() string
	ImageURL() string
}

// CatalogItem is one sellable row. StockQty is the stock record: it is only
// ever decremented through a locked conditional update, never read-modify-write.
type CatalogItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	TenantID   uint            `gorm:"index" json:"tenant_id"`
	Kind       CatalogItemKind `gorm:"size:16" json:"kind"`
	Name       string          `json:"name"`
	Image      string          `json:"image"`
	Price      int64           `json:"price"` // minor units
	CurrencyID uint            `json:"currency_id"`
	WeightG    int64           `json:"weight_g"` // grams, used by weight-based shipping
	StockQty   int64           `json:"stock_qty"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"created_at"`

	// Variant data; exactly one is meaningful for the row's Kind.
	Product  *ProductDetail  `gorm:"foreignKey:ItemID" json:"product,omitempty"`
	Activity *ActivityDetail `gorm:"foreignKey:ItemID" json:"activity,omitempty"`
}

// Variant returns the typed listing for the item's kind.
func (i *CatalogItem) Variant() Listing {
	if i.Kind == ItemKindActivity && i.Activity != nil {
		return i.Activity
	}
	return &productListing{item: i}
}

type ProductDetail struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	ItemID uint   `gorm:"index" json:"item_id"`
	SKU    string `gorm:"size:64" json:"sku"`
	Desc   string `json:"desc"`
}

// ActivityDetail is a scheduled activity; its listing name carries the session
// date so two runs of the same activity stay distinguishable in order lines.
type ActivityDetail struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	ItemID   uint      `gorm:"index" json:"item_id"`
	Venue    string    `json:"venue"`
	StartsAt time.Time `json:"starts_at"`

	Title  string `json:"title"`
	Banner string `json:"banner"`
}

func (a *ActivityDetail) DisplayName() string {
	return a.Title + " (" + a.StartsAt.Format("2006-01-02") + ")"
}

func (a *ActivityDetail) ImageURL() string {
	return a.Banner
}

type productListing struct {
	item *CatalogItem
}

func (p *productListing) DisplayName() string {
	return p.item.Name
}

func (p *productListing) ImageURL() string {
	return p.item.Image
}
