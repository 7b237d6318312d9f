package model

import "time"

// TaxRule applies to orders shipped into its country (and region when set).
// A rule only taxes shipping when AppliesToShipping is set explicitly.
type TaxRule struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	TenantID          uint      `gorm:"index" json:"tenant_id"`
	Name              string    `json:"name"`
	Country           string    `gorm:"size:2;index" json:"country"`
	Region            string    `gorm:"size:64" json:"region"` // empty matches the whole country
	RateBps           int64     `json:"rate_bps"`              // basis points, 1000 = 10%
	AppliesToShipping bool      `json:"applies_to_shipping"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"created_at"`
}

// Matches reports whether the rule covers the destination.
func (r TaxRule) Matches(country, region string) bool {
	if !r.Active || r.Country != country {
		return false
	}
	return r.Region == "" || r.Region == region
}
