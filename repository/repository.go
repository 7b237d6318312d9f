// Package repository implements the persistence interfaces of the service
// packages on top of gorm/Postgres. One Repo serves them all; transactional
// callers get a tx-bound copy through InTx.
package repository

import (
	"context"
	"errors"

	"commerce-backend/model"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

// cart saves must cascade into their lines
var gormSessionFullSave = gorm.Session{FullSaveAssociations: true}

func New(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// Migrate creates or updates every table the engine owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Tenant{},
		&model.Currency{},
		&model.PaymentMethodConfig{},
		&model.CatalogItem{},
		&model.ProductDetail{},
		&model.ActivityDetail{},
		&model.Cart{},
		&model.CartLine{},
		&model.Order{},
		&model.OrderLine{},
		&model.Coupon{},
		&model.ShippingMethod{},
		&model.TaxRule{},
		&model.PaymentTransaction{},
		&model.WebhookEvent{},
		&model.Notification{},
	)
}

// first runs the query and maps gorm's not-found to (nil, nil), which is the
// contract every Store interface here uses.
func first[T any](q *gorm.DB) (*T, error) {
	var out T
	if err := q.First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *Repo) CurrencyByID(ctx context.Context, id uint) (*model.Currency, error) {
	return first[model.Currency](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *Repo) TenantCurrency(ctx context.Context, tenantID uint) (*model.Currency, error) {
	tenant, err := first[model.Tenant](r.db.WithContext(ctx).Where("id = ? AND active", tenantID))
	if err != nil || tenant == nil {
		return nil, err
	}
	return r.CurrencyByID(ctx, tenant.CurrencyID)
}

func (r *Repo) PaymentMethod(ctx context.Context, tenantID uint, code string) (*model.PaymentMethodConfig, error) {
	return first[model.PaymentMethodConfig](r.db.WithContext(ctx).
		Where("tenant_id = ? AND provider_code = ?", tenantID, code))
}

// GatewayConfig is PaymentMethod under the name the payment package uses.
func (r *Repo) GatewayConfig(ctx context.Context, tenantID uint, code string) (*model.PaymentMethodConfig, error) {
	return r.PaymentMethod(ctx, tenantID, code)
}
