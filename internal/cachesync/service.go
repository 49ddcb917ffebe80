// Package cachesync consumes the order event stream and keeps the Redis
// order-status cache warm, so status reads stay off the database even when
// another instance made the change.
package cachesync

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/jimgas/gas-orders/internal/kafka"
	"github.com/jimgas/gas-orders/internal/orders"
	"github.com/jimgas/gas-orders/internal/redisx"
)

type Service struct {
	Redis       *redis.Client
	ServiceName string
}

// HandleOrderEvent is the consumer handler for both order topics. Unknown
// event types are skipped so the stream can grow without breaking this
// consumer. Returning nil commits the offset.
func (s *Service) HandleOrderEvent(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}

	var orderID string
	var status orders.Status
	var payment orders.PaymentStatus
	switch env.EventType {
	case orders.EventOrderPlaced:
		p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
		if err != nil {
			return err
		}
		orderID, status, payment = p.OrderID, orders.StatusPending, orders.PaymentPending
	case orders.EventOrderStatusChanged:
		p, err := kafkax.UnwrapPayload[orders.OrderStatusChangedPayload](env.Payload)
		if err != nil {
			return err
		}
		orderID, status, payment = p.OrderID, p.Status, p.PaymentStatus
	default:
		return nil
	}

	// dedup by event id; a replayed event would only rewrite the same value,
	// so a failed dedup check is not fatal
	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	if seen, _ := redisx.Exists(ctx, s.Redis, dkey); seen {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	body := kafkax.MustMarshal(map[string]any{
		"status":         status,
		"payment_status": payment,
	})
	return s.Redis.Set(ctx, key, body, redisx.TTLStatusCache).Err()
}
