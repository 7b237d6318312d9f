package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"commerce-backend/model"

	"go.uber.org/zap"
)

// ErrRetryWindowClosed means the order sat PENDING past the tenant-configured
// retry window and no further payment attempt may be started for it. Stock is
// deliberately NOT auto-released on provider silence; the window only bounds
// new attempts.
var ErrRetryWindowClosed = errors.New("payment retry window closed")

// Store is the persistence the orchestrator and reconciler share. All status
// updates are compare-and-swap: they report false when the guard did not
// match, which callers treat as "someone got there first".
type Store interface {
	OrderByID(ctx context.Context, tenantID, orderID uint) (*model.Order, error)
	GatewayConfig(ctx context.Context, tenantID uint, code string) (*model.PaymentMethodConfig, error)
	CurrencyByID(ctx context.Context, id uint) (*model.Currency, error)

	CreateTransaction(ctx context.Context, t *model.PaymentTransaction) error
	TransactionByReference(ctx context.Context, providerCode, reference string) (*model.PaymentTransaction, error)
	SettleTransaction(ctx context.Context, txID uint, to model.PaymentStatus, settledAt time.Time) (bool, error)
	TransitionOrder(ctx context.Context, orderID uint, from, to model.OrderStatus) (bool, error)
	RecordWebhookEvent(ctx context.Context, e *model.WebhookEvent) (bool, error)
}

// Orchestrator selects the tenant's gateway, invokes it and records the
// attempt. It never writes Order.Status; only reconciliation does, from
// confirmed provider state.
type Orchestrator struct {
	store       Store
	registry    Registry
	retryWindow time.Duration // 0 disables the window
	logger      *zap.Logger
}

func NewOrchestrator(store Store, registry Registry, retryWindow time.Duration, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{store: store, registry: registry, retryWindow: retryWindow, logger: logger}
}

// Start creates a new payment attempt for a PENDING order. Called after the
// checkout transaction committed, and for user-driven retries after a failed
// attempt.
func (o *Orchestrator) Start(ctx context.Context, tenantID, orderID uint, providerCode string) (*model.PaymentTransaction, string, error) {
	order, err := o.store.OrderByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, "", err
	}
	if order == nil {
		return nil, "", fmt.Errorf("%w: order %d not found", ErrOrderNotPayable, orderID)
	}
	if order.Status != model.OrderStatusPending {
		return nil, "", fmt.Errorf("%w: order %d is %s", ErrOrderNotPayable, orderID, order.Status)
	}
	if o.retryWindow > 0 && time.Since(order.CreatedAt) > o.retryWindow {
		return nil, "", fmt.Errorf("%w: order %d created %s ago", ErrRetryWindowClosed, orderID, time.Since(order.CreatedAt).Round(time.Second))
	}

	cfg, err := o.store.GatewayConfig(ctx, tenantID, providerCode)
	if err != nil {
		return nil, "", err
	}
	if cfg == nil || !cfg.Enabled {
		return nil, "", fmt.Errorf("%w: %q", ErrMethodDisabled, providerCode)
	}

	gw, err := o.registry.Gateway(providerCode, cfg.Config)
	if err != nil {
		return nil, "", err
	}

	currencyCode := ""
	if cur, err := o.store.CurrencyByID(ctx, order.CurrencyID); err == nil && cur != nil {
		currencyCode = cur.Code
	}

	intent, err := gw.CreatePayment(ctx, Command{
		TenantID:     tenantID,
		OrderID:      order.ID,
		OrderNumber:  order.Number,
		Amount:       order.TotalAmount,
		CurrencyCode: currencyCode,
	})
	if err != nil {
		o.logger.Warn("payment creation failed",
			zap.Uint("order_id", orderID),
			zap.String("provider", providerCode),
			zap.Error(err))
		return nil, "", err
	}

	tx := &model.PaymentTransaction{
		TenantID:          tenantID,
		OrderID:           order.ID,
		ProviderCode:      providerCode,
		ProviderReference: intent.ProviderReference,
		Amount:            order.TotalAmount,
		CurrencyID:        order.CurrencyID,
		Status:            intent.Status,
		CreatedAt:         time.Now(),
	}
	if err := o.store.CreateTransaction(ctx, tx); err != nil {
		return nil, "", err
	}

	o.logger.Info("payment started",
		zap.Uint("order_id", orderID),
		zap.String("provider", providerCode),
		zap.String("reference", intent.ProviderReference),
		zap.String("status", intent.Status.String()))

	return tx, intent.ClientContinuation, nil
}
