package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"commerce-backend/model"

	"go.uber.org/zap"
)

// WalletGateway is a redirect-based provider: creating a payment yields an
// approval URL the buyer must visit, and the attempt stays pending until the
// provider's webhook reconciles it.
type WalletGateway struct {
	cfg    WalletConfig
	client *http.Client
	logger *zap.Logger
}

func NewWalletGateway(cfg WalletConfig, client *http.Client, logger *zap.Logger) *WalletGateway {
	return &WalletGateway{cfg: cfg, client: client, logger: logger}
}

func (g *WalletGateway) Code() string {
	return ProviderWallet
}

type walletOrderRequest struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Reference string `json:"reference"`
	ReturnURL string `json:"return_url"`
}

type walletOrderResponse struct {
	ID          string `json:"id"`
	ApprovalURL string `json:"approval_url"`
}

func (g *WalletGateway) CreatePayment(ctx context.Context, cmd Command) (*Intent, error) {
	body, err := json.Marshal(walletOrderRequest{
		Amount:    cmd.Amount,
		Currency:  cmd.CurrencyCode,
		Reference: cmd.OrderNumber,
		ReturnURL: g.cfg.ReturnURL,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.Endpoint+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.cfg.ClientID, g.cfg.Secret)

	res, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		g.logger.Warn("wallet order creation rejected",
			zap.String("order", cmd.OrderNumber), zap.String("status", res.Status))
		return nil, fmt.Errorf("%w: wallet returned %s", ErrPaymentDeclined, res.Status)
	}

	var out walletOrderResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}

	return &Intent{
		ProviderReference:  out.ID,
		ClientContinuation: out.ApprovalURL,
		Status:             model.PaymentStatusCreated,
	}, nil
}

type walletEvent struct {
	ID        string `json:"id"`
	EventType string `json:"event_type"` // ORDER.COMPLETED | ORDER.DENIED
	Resource  struct {
		ID string `json:"id"`
	} `json:"resource"`
}

func (g *WalletGateway) ParseCallback(raw []byte) (*Callback, error) {
	var ev walletEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if ev.Resource.ID == "" {
		return nil, fmt.Errorf("%w: missing resource id", ErrMalformedPayload)
	}

	status := model.PaymentStatusFailed
	if ev.EventType == "ORDER.COMPLETED" {
		status = model.PaymentStatusPaid
	}
	return &Callback{
		EventID:           ev.ID,
		ProviderReference: ev.Resource.ID,
		Status:            status,
	}, nil
}
