package cache

import (
	"context"

	"turkish_shop_backend/internal/database"
)

// OrderChannel is the Redis pub/sub channel carrying change events for one
// order. Watchers re-read the order on every message, so duplicate events are
// harmless.
func OrderChannel(orderKey string) string {
	return "order:" + orderKey
}

// OrderPublisher fans order mutations out to live dashboard watchers.
type OrderPublisher struct{}

func NewOrderPublisher() *OrderPublisher {
	return &OrderPublisher{}
}

func (p *OrderPublisher) PublishOrderUpdate(ctx context.Context, orderKey string) {
	database.Redis.Publish(ctx, OrderChannel(orderKey), "updated")
}
