package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"commerce-backend/model"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// CardGateway talks to a card processor over HTTP. The call runs behind a
// circuit breaker so a degraded processor fails fast instead of tying up
// checkout workers; stock locks are already released by the time we get here.
type CardGateway struct {
	cfg     CardConfig
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[*cardIntentResponse]
	logger  *zap.Logger
}

func NewCardGateway(cfg CardConfig, client *http.Client, logger *zap.Logger) *CardGateway {
	breaker := gobreaker.NewCircuitBreaker[*cardIntentResponse](gobreaker.Settings{
		Name: "card-gateway",
	})
	return &CardGateway{cfg: cfg, client: client, breaker: breaker, logger: logger}
}

func (g *CardGateway) Code() string {
	return ProviderCard
}

type cardIntentRequest struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Account   string `json:"account,omitempty"`
	Reference string `json:"reference"` // order number, links the intent back to us
}

type cardIntentResponse struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	ClientSecret string `json:"client_secret"`
}

func (g *CardGateway) CreatePayment(ctx context.Context, cmd Command) (*Intent, error) {
	body, err := json.Marshal(cardIntentRequest{
		Amount:    cmd.Amount,
		Currency:  cmd.CurrencyCode,
		Account:   g.cfg.Account,
		Reference: cmd.OrderNumber,
	})
	if err != nil {
		return nil, err
	}

	resp, err := g.breaker.Execute(func() (*cardIntentResponse, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.Endpoint+"/intents", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+g.cfg.SecretKey)

		res, err := g.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()

		if res.StatusCode >= 500 {
			return nil, fmt.Errorf("card processor unavailable: %s", res.Status)
		}
		if res.StatusCode >= 400 {
			return nil, fmt.Errorf("%w: processor returned %s", ErrPaymentDeclined, res.Status)
		}

		var out cardIntentResponse
		if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		g.logger.Warn("card payment creation failed", zap.String("order", cmd.OrderNumber), zap.Error(err))
		return nil, err
	}

	status := model.PaymentStatusCreated
	continuation := ""
	if resp.Status == "requires_action" {
		status = model.PaymentStatusRequiresAction
		continuation = resp.ClientSecret
	}
	return &Intent{
		ProviderReference:  resp.ID,
		ClientContinuation: continuation,
		Status:             status,
	}, nil
}

type cardEvent struct {
	EventID string `json:"event_id"`
	Type    string `json:"type"` // intent.succeeded | intent.failed
	Data    struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (g *CardGateway) ParseCallback(raw []byte) (*Callback, error) {
	var ev cardEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if ev.Data.ID == "" {
		return nil, fmt.Errorf("%w: missing intent id", ErrMalformedPayload)
	}

	status := model.PaymentStatusFailed
	if ev.Type == "intent.succeeded" {
		status = model.PaymentStatusPaid
	}
	return &Callback{
		EventID:           ev.EventID,
		ProviderReference: ev.Data.ID,
		Status:            status,
	}, nil
}
