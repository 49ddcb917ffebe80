package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/jimgas/gas-orders/internal/auth"
	"github.com/jimgas/gas-orders/internal/catalog"
	"github.com/jimgas/gas-orders/internal/orders"
)

// testRedis returns a client pointing nowhere. Every cache read misses and
// every cache write is silently dropped, which is exactly the degraded mode
// the handlers are built to tolerate.
func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	c := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

type fakePublisher struct {
	messages []kafkago.Message
}

func (p *fakePublisher) Publish(key, value []byte, headers ...kafkago.Header) {
	p.messages = append(p.messages, kafkago.Message{Key: key, Value: value, Headers: headers})
}

type fakeCatalog struct {
	listActive func(ctx context.Context) ([]catalog.Product, error)
	create     func(ctx context.Context, in catalog.CreateInput) (catalog.Product, error)
	update     func(ctx context.Context, id string, in catalog.UpdateInput) (catalog.Product, error)
	deactivate func(ctx context.Context, id string) error
}

func (f *fakeCatalog) ListActive(ctx context.Context) ([]catalog.Product, error) {
	return f.listActive(ctx)
}
func (f *fakeCatalog) Create(ctx context.Context, in catalog.CreateInput) (catalog.Product, error) {
	return f.create(ctx, in)
}
func (f *fakeCatalog) Update(ctx context.Context, id string, in catalog.UpdateInput) (catalog.Product, error) {
	return f.update(ctx, id, in)
}
func (f *fakeCatalog) Deactivate(ctx context.Context, id string) error {
	return f.deactivate(ctx, id)
}

type fakeOrders struct {
	placeOrder   func(ctx context.Context, userID string, req orders.PlaceOrderRequest) (orders.PlacedOrder, error)
	listByUser   func(ctx context.Context, userID string) ([]orders.Order, error)
	updateStatus func(ctx context.Context, orderID string, status orders.Status, payment orders.PaymentStatus) error
	getStatus    func(ctx context.Context, orderID string) (orders.Status, orders.PaymentStatus, error)
}

func (f *fakeOrders) PlaceOrder(ctx context.Context, userID string, req orders.PlaceOrderRequest) (orders.PlacedOrder, error) {
	return f.placeOrder(ctx, userID, req)
}
func (f *fakeOrders) ListByUser(ctx context.Context, userID string) ([]orders.Order, error) {
	return f.listByUser(ctx, userID)
}
func (f *fakeOrders) UpdateStatus(ctx context.Context, orderID string, status orders.Status, payment orders.PaymentStatus) error {
	return f.updateStatus(ctx, orderID, status, payment)
}
func (f *fakeOrders) GetStatus(ctx context.Context, orderID string) (orders.Status, orders.PaymentStatus, error) {
	return f.getStatus(ctx, orderID)
}

func doJSON(t *testing.T, h http.Handler, method, target, body string, as string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	switch as {
	case "admin":
		req.Header.Set(auth.HeaderUserID, "admin-1")
		req.Header.Set(auth.HeaderRole, auth.RoleAdmin)
	case "customer":
		req.Header.Set(auth.HeaderUserID, "user-1")
		req.Header.Set(auth.HeaderRole, "customer")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
