package repository

import (
	"context"
	"time"

	"commerce-backend/model"

	"gorm.io/gorm"
)

func (r *Repo) OrderForUser(ctx context.Context, tenantID, userID, orderID uint) (*model.Order, error) {
	return first[model.Order](r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND user_id = ? AND id = ?", tenantID, userID, orderID))
}

func (r *Repo) OrdersForUser(ctx context.Context, tenantID, userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// CancelAndRestock commits the cancellation and the stock return together.
// If the guarded status update loses the race (payment confirmed first, or a
// duplicate approval), nothing is restocked.
func (r *Repo) CancelAndRestock(ctx context.Context, tenantID, orderID uint) (bool, error) {
	var done bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Order{}).
			Where("id = ? AND tenant_id = ? AND status = ?", orderID, tenantID, model.OrderStatusCancelRequested).
			Updates(map[string]any{"status": model.OrderStatusCanceled, "closed_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return nil
		}

		var lines []model.OrderLine
		if err := tx.Where("order_id = ?", orderID).Find(&lines).Error; err != nil {
			return err
		}
		for _, l := range lines {
			if err := tx.Model(&model.CatalogItem{}).
				Where("tenant_id = ? AND id = ?", tenantID, l.ItemID).
				Update("stock_qty", gorm.Expr("stock_qty + ?", l.Quantity)).Error; err != nil {
				return err
			}
		}
		done = true
		return nil
	})
	return done, err
}
