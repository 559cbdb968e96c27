package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"stockroom/internal/domain"
)

// StockOutCache is a cache-aside layer over single-order reads. A nil client
// disables it; cache failures degrade to the database path and are never
// surfaced to callers.
type StockOutCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func New(client *redis.Client, ttl time.Duration, logger *zap.Logger) *StockOutCache {
	return &StockOutCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func cacheKey(orderID uint) string {
	return fmt.Sprintf("stockout:detail:%d", orderID)
}

func (c *StockOutCache) Get(ctx context.Context, orderID uint) (*domain.StockOut, bool) {
	if c.client == nil {
		return nil, false
	}

	val, err := c.client.Get(ctx, cacheKey(orderID)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("stock-out cache read failed", zap.Uint("orderId", orderID), zap.Error(err))
		}
		return nil, false
	}

	var order domain.StockOut
	if err := json.Unmarshal([]byte(val), &order); err != nil {
		c.logger.Warn("stock-out cache entry corrupt", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, false
	}

	return &order, true
}

func (c *StockOutCache) Set(ctx context.Context, order *domain.StockOut) {
	if c.client == nil || order == nil {
		return
	}

	payload, err := json.Marshal(order)
	if err != nil {
		c.logger.Warn("stock-out cache encode failed", zap.Uint("orderId", order.ID), zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, cacheKey(order.ID), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("stock-out cache write failed", zap.Uint("orderId", order.ID), zap.Error(err))
	}
}

// Delete invalidates the cached entry after a confirmation mutates the order.
func (c *StockOutCache) Delete(ctx context.Context, orderID uint) {
	if c.client == nil {
		return
	}

	if err := c.client.Del(ctx, cacheKey(orderID)).Err(); err != nil {
		c.logger.Warn("stock-out cache invalidation failed", zap.Uint("orderId", orderID), zap.Error(err))
	}
}
