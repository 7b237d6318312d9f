package model

import "time"

// PaymentTransaction is one payment attempt against one provider. An order can
// accumulate several (retries); the authoritative one is the most recent whose
// status is not FAILED. Rows are updated only by the reconciliation handler.
type PaymentTransaction struct {
	ID                uint          `gorm:"primaryKey" json:"id"`
	TenantID          uint          `gorm:"index" json:"tenant_id"`
	OrderID           uint          `gorm:"index" json:"order_id"`
	ProviderCode      string        `gorm:"size:32;index:idx_provider_ref" json:"provider_code"`
	ProviderReference string        `gorm:"size:128;index:idx_provider_ref,unique" json:"provider_reference"`
	Amount            int64         `json:"amount"`
	CurrencyID        uint          `json:"currency_id"`
	Status            PaymentStatus `gorm:"size:24;index" json:"status"`
	CreatedAt         time.Time     `json:"created_at"`
	SettledAt         *time.Time    `json:"settled_at,omitempty"`
}

// WebhookEvent records every provider callback we have already applied. The
// unique EventID is the replay guard: a duplicate insert means the callback
// was processed before.
type WebhookEvent struct {
	EventID      string    `gorm:"primaryKey;size:128" json:"event_id"`
	ProviderCode string    `gorm:"size:32;index" json:"provider_code"`
	ProcessedAt  time.Time `json:"processed_at"`
}

// Notification is a persisted fan-out record written by the kafka consumer,
// never inside the transaction that caused it.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TenantID  uint      `gorm:"index" json:"tenant_id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Kind      string    `gorm:"size:64" json:"kind"`
	OrderID   uint      `json:"order_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
