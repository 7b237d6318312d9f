package repository

import (
	"context"

	"commerce-backend/model"
)

func (r *Repo) ActiveCart(ctx context.Context, tenantID, userID uint) (*model.Cart, error) {
	return first[model.Cart](r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND user_id = ? AND status = ?", tenantID, userID, model.CartStatusActive))
}

func (r *Repo) CreateCart(ctx context.Context, c *model.Cart) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *Repo) SaveCart(ctx context.Context, c *model.Cart) error {
	return r.db.WithContext(ctx).Session(&gormSessionFullSave).Save(c).Error
}

func (r *Repo) RemoveLine(ctx context.Context, cartID, lineID uint) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND id = ?", cartID, lineID).
		Delete(&model.CartLine{}).Error
}

func (r *Repo) Item(ctx context.Context, tenantID, itemID uint) (*model.CatalogItem, error) {
	return first[model.CatalogItem](r.db.WithContext(ctx).
		Preload("Product").
		Preload("Activity").
		Where("tenant_id = ? AND id = ?", tenantID, itemID))
}
