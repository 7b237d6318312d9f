package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"commerce-backend/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderStatusChangedHandler persists a notification row per lifecycle event.
// It runs on the consumer side, never inside the transaction that caused the
// change.
func OrderStatusChangedHandler(db *gorm.DB, logger *zap.Logger) func([]byte) {
	return func(msg []byte) {
		var event OrderStatusChangedEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			logger.Error("invalid order.status_changed payload", zap.Error(err))
			return
		}

		n := model.Notification{
			TenantID:  event.TenantID,
			UserID:    event.UserID,
			Kind:      "order." + event.Status,
			OrderID:   event.OrderID,
			Message:   fmt.Sprintf("Order %d is now %s", event.OrderID, event.Status),
			CreatedAt: time.Now(),
		}
		if err := db.Create(&n).Error; err != nil {
			logger.Error("store notification failed",
				zap.Uint("order_id", event.OrderID), zap.Error(err))
			return
		}
		logger.Debug("notification stored",
			zap.Uint("order_id", event.OrderID), zap.String("status", event.Status))
	}
}
