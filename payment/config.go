package payment

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Provider configs are typed per provider and decoded by provider code; the
// raw JSON column never travels further than this file.

type CardConfig struct {
	Endpoint  string `json:"endpoint"`
	SecretKey string `json:"secret_key"`
	Account   string `json:"account"` // tenant sub-account at the processor, optional
}

type CashConfig struct {
	Instructions string `json:"instructions"` // shown to the buyer, optional
}

type WalletConfig struct {
	Endpoint  string `json:"endpoint"`
	ClientID  string `json:"client_id"`
	Secret    string `json:"secret"`
	ReturnURL string `json:"return_url"`
}

const (
	ProviderCard   = "card"
	ProviderCash   = "cash"
	ProviderWallet = "wallet"
)

// NewRegistry wires the factory per provider code. client and logger are
// shared by all outbound gateways.
func NewRegistry(client *http.Client, logger *zap.Logger) Registry {
	return Registry{
		ProviderCard: func(raw []byte) (Gateway, error) {
			var cfg CardConfig
			if err := decode(raw, &cfg); err != nil {
				return nil, err
			}
			return NewCardGateway(cfg, client, logger), nil
		},
		ProviderCash: func(raw []byte) (Gateway, error) {
			var cfg CashConfig
			if err := decode(raw, &cfg); err != nil {
				return nil, err
			}
			return NewCashGateway(cfg), nil
		},
		ProviderWallet: func(raw []byte) (Gateway, error) {
			var cfg WalletConfig
			if err := decode(raw, &cfg); err != nil {
				return nil, err
			}
			return NewWalletGateway(cfg, client, logger), nil
		},
	}
}

func decode(raw []byte, out any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("invalid gateway config: %w", err)
	}
	return nil
}
