package repository

import (
	"context"
	"time"

	"commerce-backend/model"

	"gorm.io/gorm/clause"
)

func (r *Repo) OrderByID(ctx context.Context, tenantID, orderID uint) (*model.Order, error) {
	return first[model.Order](r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND id = ?", tenantID, orderID))
}

func (r *Repo) CreateTransaction(ctx context.Context, t *model.PaymentTransaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *Repo) TransactionByReference(ctx context.Context, providerCode, reference string) (*model.PaymentTransaction, error) {
	return first[model.PaymentTransaction](r.db.WithContext(ctx).
		Where("provider_code = ? AND provider_reference = ?", providerCode, reference))
}

// SettleTransaction moves an attempt to its final status. The guard excludes
// already settled rows, so concurrent deliveries of the same outcome race to
// a single winner.
func (r *Repo) SettleTransaction(ctx context.Context, txID uint, to model.PaymentStatus, settledAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.PaymentTransaction{}).
		Where("id = ? AND status NOT IN ?", txID, []model.PaymentStatus{
			model.PaymentStatusPaid, model.PaymentStatusFailed,
		}).
		Updates(map[string]any{"status": to, "settled_at": settledAt})
	return res.RowsAffected == 1, res.Error
}

// TransitionOrder is the status-guarded update every order move goes through.
// It also stamps the timestamp the target status implies.
func (r *Repo) TransitionOrder(ctx context.Context, orderID uint, from, to model.OrderStatus) (bool, error) {
	if !model.CanTransition(from, to) {
		return false, nil
	}
	fields := map[string]any{"status": to}
	now := time.Now()
	switch to {
	case model.OrderStatusCompleted:
		fields["paid_at"] = now
	case model.OrderStatusCanceled, model.OrderStatusRejected, model.OrderStatusRefunded:
		fields["closed_at"] = now
	}
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(fields)
	return res.RowsAffected == 1, res.Error
}

// RecordWebhookEvent inserts the replay guard row. A duplicate event id is
// absorbed by ON CONFLICT DO NOTHING and reported as not fresh.
func (r *Repo) RecordWebhookEvent(ctx context.Context, e *model.WebhookEvent) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(e)
	return res.RowsAffected == 1, res.Error
}
