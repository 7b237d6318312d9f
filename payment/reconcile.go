package payment

import (
	"context"
	"fmt"
	"time"

	"commerce-backend/model"

	"go.uber.org/zap"
)

// Notifier fans out order state changes. Implementations must be
// fire-and-forget; the reconciler never waits on delivery.
type Notifier interface {
	OrderStatusChanged(tenantID, userID, orderID uint, status model.OrderStatus)
}

// CacheInvalidator drops cached order/payment listings after a state change.
type CacheInvalidator interface {
	InvalidateOrders(ctx context.Context, tenantID, userID uint)
}

// Reconciler consumes asynchronous provider callbacks and advances
// transaction and order state idempotently. It is the only writer of
// Order.Status on the payment path.
type Reconciler struct {
	store    Store
	registry Registry
	notifier Notifier
	cache    CacheInvalidator
	logger   *zap.Logger
}

func NewReconciler(store Store, registry Registry, notifier Notifier, cache CacheInvalidator, logger *zap.Logger) *Reconciler {
	return &Reconciler{store: store, registry: registry, notifier: notifier, cache: cache, logger: logger}
}

// Reconcile applies one raw provider callback. It returns an error only when
// the payload cannot be parsed at all; unknown references and replays are
// logged and swallowed so the provider always sees success.
func (r *Reconciler) Reconcile(ctx context.Context, providerCode string, raw []byte) error {
	gw, err := r.registry.Gateway(providerCode, nil)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrMalformedPayload, providerCode)
	}

	cb, err := gw.ParseCallback(raw)
	if err != nil {
		return err
	}

	tx, err := r.store.TransactionByReference(ctx, providerCode, cb.ProviderReference)
	if err != nil {
		return err
	}
	if tx == nil {
		// stale or unrelated webhook; never fatal
		r.logger.Warn("callback for unknown reference discarded",
			zap.String("provider", providerCode),
			zap.String("reference", cb.ProviderReference))
		return nil
	}

	switch cb.Status {
	case model.PaymentStatusPaid:
		err = r.applySuccess(ctx, tx)
	case model.PaymentStatusFailed:
		err = r.applyFailure(ctx, tx)
	default:
		r.logger.Warn("callback with non-final status ignored",
			zap.String("reference", cb.ProviderReference),
			zap.String("status", cb.Status.String()))
		return nil
	}
	if err != nil {
		// no event row was written, so the provider's redelivery gets a
		// clean retry; the status-guarded updates make the retry idempotent
		return err
	}

	// bookkeeping only, written once the effects are durable; a duplicate
	// insert identifies the delivery as a replay
	eventID := cb.EventID
	if eventID == "" {
		// providers without event ids: one logical event per (reference, outcome)
		eventID = fmt.Sprintf("%s:%s:%s", providerCode, cb.ProviderReference, cb.Status)
	}
	fresh, err := r.store.RecordWebhookEvent(ctx, &model.WebhookEvent{
		EventID:      eventID,
		ProviderCode: providerCode,
		ProcessedAt:  time.Now(),
	})
	if err != nil {
		return err
	}
	if !fresh {
		r.logger.Debug("replayed callback", zap.String("event_id", eventID))
	}
	return nil
}

func (r *Reconciler) applySuccess(ctx context.Context, tx *model.PaymentTransaction) error {
	settled, err := r.store.SettleTransaction(ctx, tx.ID, model.PaymentStatusPaid, time.Now())
	if err != nil {
		return err
	}
	if !settled {
		// another delivery settled this attempt; resume only if it settled
		// to PAID, so the order transition is retried after a crash between
		// the two writes
		current, err := r.store.TransactionByReference(ctx, tx.ProviderCode, tx.ProviderReference)
		if err != nil {
			return err
		}
		if current == nil || current.Status != model.PaymentStatusPaid {
			return nil
		}
	}

	moved, err := r.store.TransitionOrder(ctx, tx.OrderID, model.OrderStatusPending, model.OrderStatusCompleted)
	if err != nil {
		return err
	}
	if !moved {
		// order already terminal (or mid-cancel); the no-op is deliberate
		r.logger.Info("order not advanced, status guard did not match",
			zap.Uint("order_id", tx.OrderID))
		return nil
	}

	r.logger.Info("payment confirmed",
		zap.Uint("order_id", tx.OrderID),
		zap.Uint("transaction_id", tx.ID),
		zap.String("provider", tx.ProviderCode))

	r.fanOut(ctx, tx, model.OrderStatusCompleted)
	return nil
}

func (r *Reconciler) applyFailure(ctx context.Context, tx *model.PaymentTransaction) error {
	settled, err := r.store.SettleTransaction(ctx, tx.ID, model.PaymentStatusFailed, time.Now())
	if err != nil {
		return err
	}
	if settled {
		// order stays PENDING so a fresh attempt can run without re-reserving stock
		r.logger.Info("payment failed",
			zap.Uint("order_id", tx.OrderID),
			zap.Uint("transaction_id", tx.ID),
			zap.String("provider", tx.ProviderCode))
	}
	return nil
}

func (r *Reconciler) fanOut(ctx context.Context, tx *model.PaymentTransaction, status model.OrderStatus) {
	order, err := r.store.OrderByID(ctx, tx.TenantID, tx.OrderID)
	if err != nil || order == nil {
		return
	}
	if r.notifier != nil {
		r.notifier.OrderStatusChanged(order.TenantID, order.UserID, order.ID, status)
	}
	if r.cache != nil {
		r.cache.InvalidateOrders(ctx, order.TenantID, order.UserID)
	}
}
