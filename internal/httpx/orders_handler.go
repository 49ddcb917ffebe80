package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/jimgas/gas-orders/internal/auth"
	"github.com/jimgas/gas-orders/internal/errs"
	kafkax "github.com/jimgas/gas-orders/internal/kafka"
	"github.com/jimgas/gas-orders/internal/orders"
	"github.com/jimgas/gas-orders/internal/redisx"
)

// OrderStore is what the order handlers need from the orders repo.
type OrderStore interface {
	PlaceOrder(ctx context.Context, userID string, req orders.PlaceOrderRequest) (orders.PlacedOrder, error)
	ListByUser(ctx context.Context, userID string) ([]orders.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status orders.Status, payment orders.PaymentStatus) error
	GetStatus(ctx context.Context, orderID string) (orders.Status, orders.PaymentStatus, error)
}

// Publisher is the slice of the Kafka producer the handlers use.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type OrdersHandler struct {
	Store          OrderStore
	PlacedProducer Publisher
	StatusProducer Publisher
	Redis          *redis.Client
	Service        string
}

type updateStatusReq struct {
	Status        orders.Status        `json:"status"`
	PaymentStatus orders.PaymentStatus `json:"payment_status"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser)
		r.Post("/orders", h.placeOrder)
		r.Get("/my-orders", h.listMine)
	})
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Patch("/orders/{id}/status", h.updateStatus)
		r.Get("/orders/{id}/status", h.getStatus)
	})
}

// getStatus serves the delivery desk's polling view: cache first, database
// on a miss, repriming the cache from what the database said.
func (h *OrdersHandler) getStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(s))
		return
	}

	status, payment, err := h.Store.GetStatus(ctx, orderID)
	if err != nil {
		writeAdminError(w, err)
		return
	}
	body := kafkax.MustMarshal(map[string]any{
		"status":         status,
		"payment_status": payment,
	})
	_ = h.Redis.Set(ctx, key, body, redisx.TTLStatusCache).Err()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *OrdersHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req orders.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	id, _ := auth.FromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	placed, err := h.Store.PlaceOrder(ctx, id.UserID, req)
	if err != nil {
		h.writePlaceError(w, err)
		return
	}

	// Prime the status cache and let downstream consumers know. Both are
	// best-effort; the order is already committed.
	statusKey := fmt.Sprintf(redisx.KeyOrderStatus, placed.OrderID)
	statusBody := kafkax.MustMarshal(map[string]any{
		"status":         orders.StatusPending,
		"payment_status": orders.PaymentPending,
	})
	_ = h.Redis.Set(ctx, statusKey, statusBody, redisx.TTLStatusCache).Err()

	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderPlaced,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: placed.OrderID,
	}
	ev.Payload = kafkax.MustMarshal(orders.OrderPlacedPayload{
		OrderID:     placed.OrderID,
		OrderNumber: placed.OrderNumber,
		UserID:      id.UserID,
		TotalAmount: placed.TotalAmount,
	})
	h.PlacedProducer.Publish(orders.PartitionKey(placed.OrderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderPlaced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":      "order placed successfully",
		"order_id":     placed.OrderID,
		"order_number": placed.OrderNumber,
		"total_amount": placed.TotalAmount,
	})
}

// writePlaceError: anything the customer can fix (bad fields, unknown
// product, not enough stock) is a 400 with a message, everything else a 500.
func (h *OrdersHandler) writePlaceError(w http.ResponseWriter, err error) {
	var verr *errs.ValidationError
	var serr *errs.InsufficientStockError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.As(err, &serr):
		writeError(w, http.StatusBadRequest, serr.Error())
	case errors.Is(err, errs.ErrNotFound):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("place order: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *OrdersHandler) listMine(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Store.ListByUser(ctx, id.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	orderID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.UpdateStatus(ctx, orderID, req.Status, req.PaymentStatus); err != nil {
		writeAdminError(w, err)
		return
	}

	statusKey := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	statusBody := kafkax.MustMarshal(map[string]any{
		"status":         req.Status,
		"payment_status": req.PaymentStatus,
	})
	_ = h.Redis.Set(ctx, statusKey, statusBody, redisx.TTLStatusCache).Err()

	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderStatusChanged,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: orderID,
	}
	ev.Payload = kafkax.MustMarshal(orders.OrderStatusChangedPayload{
		OrderID:       orderID,
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
	})
	h.StatusProducer.Publish(orders.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderStatusChanged)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)

	writeJSON(w, http.StatusOK, map[string]string{"message": "order updated"})
}
