package model

import (
	"time"

	"gorm.io/datatypes"
)

// Tenant is one isolated storefront sharing the platform.
type Tenant struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `json:"name"`
	CurrencyID uint      `json:"currency_id"` // default currency for the storefront
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

type Currency struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"size:8;uniqueIndex" json:"code"` // ISO 4217, e.g. USD
}

// PaymentMethodConfig stores one tenant's configuration for one provider.
// Config is raw JSON decoded into the provider's typed config struct by
// provider code; it is never consumed as an untyped map.
type PaymentMethodConfig struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	TenantID     uint           `gorm:"index:idx_tenant_provider,unique" json:"tenant_id"`
	ProviderCode string         `gorm:"size:32;index:idx_tenant_provider,unique" json:"provider_code"`
	Enabled      bool           `json:"enabled"`
	Config       datatypes.JSON `json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
}
