package kafka

import (
	"encoding/json"
	"time"

	"commerce-backend/model"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

const (
	TopicOrderCreated       = "order.created"
	TopicOrderStatusChanged = "order.status_changed"
)

// OrderCreatedEvent announces a freshly placed PENDING order.
type OrderCreatedEvent struct {
	TenantID    uint   `json:"tenant_id"`
	UserID      uint   `json:"user_id"`
	OrderID     uint   `json:"order_id"`
	OrderNumber string `json:"order_number"`
	TotalAmount int64  `json:"total_amount"`
	CreatedAt   string `json:"created_at"`
}

// OrderStatusChangedEvent announces any later lifecycle move.
type OrderStatusChangedEvent struct {
	TenantID uint   `json:"tenant_id"`
	UserID   uint   `json:"user_id"`
	OrderID  uint   `json:"order_id"`
	Status   string `json:"status"`
	At       string `json:"at"`
}

type Producer struct {
	producer sarama.SyncProducer
	logger   *zap.Logger
}

// NewProducer connects with retries; brokers usually come up after the app in
// compose environments.
func NewProducer(brokers []string, logger *zap.Logger) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	var producer sarama.SyncProducer
	var err error
	for i := 1; i <= 10; i++ {
		producer, err = sarama.NewSyncProducer(brokers, config)
		if err == nil {
			logger.Info("kafka producer ready", zap.Strings("brokers", brokers))
			return &Producer{producer: producer, logger: logger}, nil
		}
		logger.Warn("waiting for kafka", zap.Int("attempt", i), zap.Error(err))
		time.Sleep(5 * time.Second)
	}
	return nil, err
}

func (p *Producer) Close() error {
	return p.producer.Close()
}

// publish is fire-and-forget: a broker hiccup is logged, never propagated
// into the request path.
func (p *Producer) publish(topic string, event any) {
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("marshal event failed", zap.String("topic", topic), zap.Error(err))
		return
	}
	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(data),
	})
	if err != nil {
		p.logger.Error("publish failed", zap.String("topic", topic), zap.Error(err))
		return
	}
	p.logger.Debug("event published", zap.String("topic", topic))
}

func (p *Producer) OrderCreated(o *model.Order) {
	p.publish(TopicOrderCreated, OrderCreatedEvent{
		TenantID:    o.TenantID,
		UserID:      o.UserID,
		OrderID:     o.ID,
		OrderNumber: o.Number,
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt.Format(time.RFC3339),
	})
}

// OrderStatusChanged satisfies the notifier contracts of the payment and
// order packages.
func (p *Producer) OrderStatusChanged(tenantID, userID, orderID uint, status model.OrderStatus) {
	p.publish(TopicOrderStatusChanged, OrderStatusChangedEvent{
		TenantID: tenantID,
		UserID:   userID,
		OrderID:  orderID,
		Status:   status.String(),
		At:       time.Now().Format(time.RFC3339),
	})
}
