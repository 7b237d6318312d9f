// Package cache is the redis cache-aside layer for order listings. Reads go
// through Get/Set; every order mutation calls InvalidateOrders so the next
// read refills from the database.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"commerce-backend/model"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const ordersTTL = 5 * time.Minute

type Client struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func New(addr, password string, db int, logger *zap.Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	logger.Info("redis connected", zap.String("addr", addr))
	return &Client{rdb: rdb, logger: logger}, nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

func ordersKey(tenantID, userID uint) string {
	return fmt.Sprintf("orders:%d:%d", tenantID, userID)
}

// Orders returns the cached listing, or nil on a miss. Cache failures read as
// misses so redis downtime degrades to database reads.
func (c *Client) Orders(ctx context.Context, tenantID, userID uint) ([]model.Order, error) {
	raw, err := c.rdb.Get(ctx, ordersKey(tenantID, userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		c.logger.Warn("cache read failed", zap.Error(err))
		return nil, nil
	}
	var orders []model.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, nil
	}
	return orders, nil
}

func (c *Client) SetOrders(ctx context.Context, tenantID, userID uint, orders []model.Order) {
	raw, err := json.Marshal(orders)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, ordersKey(tenantID, userID), raw, ordersTTL).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.Error(err))
	}
}

// InvalidateOrders satisfies the invalidator contracts of the payment and
// order packages.
func (c *Client) InvalidateOrders(ctx context.Context, tenantID, userID uint) {
	if err := c.rdb.Del(ctx, ordersKey(tenantID, userID)).Err(); err != nil {
		c.logger.Warn("cache invalidation failed",
			zap.Uint("tenant_id", tenantID), zap.Uint("user_id", userID), zap.Error(err))
	}
}
