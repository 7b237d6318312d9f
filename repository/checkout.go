package repository

import (
	"context"

	"commerce-backend/checkout"
	"commerce-backend/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InTx runs fn inside one database transaction. The Store handed to fn is a
// tx-bound copy; FOR UPDATE locks taken through it are held until fn returns.
func (r *Repo) InTx(ctx context.Context, fn func(tx checkout.Store) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repo{db: tx})
	})
}

func (r *Repo) Items(ctx context.Context, tenantID uint, ids []uint) ([]model.CatalogItem, error) {
	var items []model.CatalogItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Activity").
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&items).Error
	return items, err
}

func (r *Repo) ItemForUpdate(ctx context.Context, tenantID, itemID uint) (*model.CatalogItem, error) {
	return first[model.CatalogItem](r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND id = ?", tenantID, itemID))
}

// DecrementStock is the conditional write that keeps stock non-negative: the
// guard runs in SQL, so concurrent checkouts can never both pass it.
func (r *Repo) DecrementStock(ctx context.Context, tenantID, itemID uint, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.CatalogItem{}).
		Where("tenant_id = ? AND id = ? AND stock_qty >= ?", tenantID, itemID, qty).
		Update("stock_qty", gorm.Expr("stock_qty - ?", qty))
	return res.RowsAffected == 1, res.Error
}

func (r *Repo) CreateOrder(ctx context.Context, o *model.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

// RedeemCoupon increments UsedCount only while the usage limit still has
// room. A false return means the last redemption was taken concurrently.
func (r *Repo) RedeemCoupon(ctx context.Context, couponID uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Coupon{}).
		Where("id = ? AND active AND (usage_limit = 0 OR used_count < usage_limit)", couponID).
		Update("used_count", gorm.Expr("used_count + 1"))
	return res.RowsAffected == 1, res.Error
}

func (r *Repo) ConvertCart(ctx context.Context, cartID uint) error {
	return r.db.WithContext(ctx).Model(&model.Cart{}).
		Where("id = ? AND status = ?", cartID, model.CartStatusActive).
		Update("status", model.CartStatusConverted).Error
}

func (r *Repo) CouponByCode(ctx context.Context, tenantID uint, code string) (*model.Coupon, error) {
	return first[model.Coupon](r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ?", tenantID, code))
}

func (r *Repo) ShippingMethodByCode(ctx context.Context, tenantID uint, code string) (*model.ShippingMethod, error) {
	return first[model.ShippingMethod](r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ?", tenantID, code))
}

func (r *Repo) TaxRules(ctx context.Context, tenantID uint, country string) ([]model.TaxRule, error) {
	var rules []model.TaxRule
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND country = ? AND active", tenantID, country).
		Find(&rules).Error
	return rules, err
}
