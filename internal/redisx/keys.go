package redisx

import "time"

const (
	// Cache of the active product list as served by GET /products.
	// Invalidated on every admin catalog mutation.
	KeyActiveProducts = "catalog:active_products"

	// Cache status+payment per order: order_status:{order_id} ->
	// {"status":"...","payment_status":"..."}
	KeyOrderStatus = "order_status:%s"

	// Dedup for event consumers: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLProductCache = 60 * time.Second
	TTLStatusCache  = 5 * time.Minute
	TTLDedup        = 48 * time.Hour
)
