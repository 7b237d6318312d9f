package payment

import (
	"context"
	"errors"
	"fmt"

	"commerce-backend/model"
)

var (
	ErrPaymentDeclined  = errors.New("payment declined by provider")
	ErrMethodDisabled   = errors.New("payment method not enabled for tenant")
	ErrOrderNotPayable  = errors.New("order is not payable")
	ErrUnknownProvider  = errors.New("unknown payment provider")
	ErrMalformedPayload = errors.New("malformed provider callback")
)

// Command is everything a gateway needs to create a payment at its provider.
type Command struct {
	TenantID     uint
	OrderID      uint
	OrderNumber  string
	Amount       int64
	CurrencyCode string
}

// Intent is the provider's immediate answer to payment creation.
type Intent struct {
	ProviderReference  string
	ClientContinuation string // URL or client secret the buyer must follow, empty when none
	Status             model.PaymentStatus
}

// Callback is a provider webhook normalized into internal vocabulary.
type Callback struct {
	EventID           string // provider event id when present; used for replay detection
	ProviderReference string
	Status            model.PaymentStatus // PAID or FAILED
}

// Gateway adapts the internal payment contract to one external provider.
type Gateway interface {
	Code() string
	CreatePayment(ctx context.Context, cmd Command) (*Intent, error)
	ParseCallback(raw []byte) (*Callback, error)
}

// Factory builds a gateway from a tenant's raw provider config. A nil config
// yields a gateway that can still parse callbacks.
type Factory func(rawConfig []byte) (Gateway, error)

// Registry maps provider codes to factories.
type Registry map[string]Factory

func (r Registry) Gateway(code string, rawConfig []byte) (Gateway, error) {
	factory, ok := r[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, code)
	}
	return factory(rawConfig)
}
