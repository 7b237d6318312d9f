package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"commerce-backend/model"

	"github.com/google/uuid"
)

// CashGateway handles offline payment: no external call is made, the
// reference is synthetic and the attempt waits for the owner to confirm
// receipt through the cash callback endpoint.
type CashGateway struct {
	cfg CashConfig
}

func NewCashGateway(cfg CashConfig) *CashGateway {
	return &CashGateway{cfg: cfg}
}

func (g *CashGateway) Code() string {
	return ProviderCash
}

func (g *CashGateway) CreatePayment(_ context.Context, cmd Command) (*Intent, error) {
	return &Intent{
		ProviderReference: "cash-" + uuid.New().String(),
		Status:            model.PaymentStatusOfflinePending,
	}, nil
}

type cashCallback struct {
	Reference string `json:"reference"`
	Result    string `json:"result"` // received | voided
}

func (g *CashGateway) ParseCallback(raw []byte) (*Callback, error) {
	var cb cashCallback
	if err := json.Unmarshal(raw, &cb); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if cb.Reference == "" {
		return nil, fmt.Errorf("%w: missing reference", ErrMalformedPayload)
	}

	status := model.PaymentStatusFailed
	if cb.Result == "received" {
		status = model.PaymentStatusPaid
	}
	return &Callback{ProviderReference: cb.Reference, Status: status}, nil
}
