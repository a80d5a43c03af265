package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hustlx/backend/internal/models"
	"github.com/redis/go-redis/v9"
)

const orderChannel = "orders:events"

// OrderEvent is published whenever an order is created or changes status.
// Sellers subscribe to the feed to react without polling.
type OrderEvent struct {
	OrderID     uuid.UUID          `json:"order_id"`
	ListingID   uuid.UUID          `json:"listing_id"`
	CustomerID  uuid.UUID          `json:"customer_id"`
	HomemakerID uuid.UUID          `json:"homemaker_id"`
	Status      models.OrderStatus `json:"status"`
	TotalAmount int64              `json:"total_amount"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

// Broker fans order events out to interested subscribers.
type Broker interface {
	Publish(ev OrderEvent) error
	Subscribe(ctx context.Context) (<-chan OrderEvent, error)
	Close() error
}

// RedisBroker implements Broker over Redis pub/sub, so multiple server
// nodes share one feed.
type RedisBroker struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisBroker(redisURL string) (*RedisBroker, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisBroker{client: client, ctx: ctx}, nil
}

// Client exposes the underlying Redis client for components that share the
// connection (rate limiter, suggestion cache).
func (b *RedisBroker) Client() *redis.Client {
	return b.client
}

func (b *RedisBroker) Publish(ev OrderEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.client.Publish(b.ctx, orderChannel, data).Err()
}

func (b *RedisBroker) Subscribe(ctx context.Context) (<-chan OrderEvent, error) {
	pubsub := b.client.Subscribe(ctx, orderChannel)

	// Force the subscription to be established before returning.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, err
	}

	events := make(chan OrderEvent, 64)

	go func() {
		defer close(events)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev OrderEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					continue
				}
				select {
				case events <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, nil
}

func (b *RedisBroker) Close() error {
	return b.client.Close()
}
