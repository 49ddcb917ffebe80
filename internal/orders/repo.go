package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jimgas/gas-orders/internal/errs"
)

type Repo struct{ DB *pgxpool.Pool }

// Attempts at generating an order number before giving up on unique-index
// conflicts.
const maxPlaceAttempts = 5

// PlaceOrder validates stock, prices every line at the product's current
// price, decrements stock and persists the order with its items in a single
// transaction. Either everything is written or nothing is.
//
// Each distinct product row is locked (FOR UPDATE) before its stock is
// checked, so concurrent orders against the same product serialize and
// cannot oversell.
func (r *Repo) PlaceOrder(ctx context.Context, userID string, req PlaceOrderRequest) (PlacedOrder, error) {
	if verr := req.Validate(); verr != nil {
		return PlacedOrder{}, verr
	}

	var placed PlacedOrder
	var err error
	for attempt := 0; attempt < maxPlaceAttempts; attempt++ {
		placed, err = r.placeOrderTx(ctx, userID, req)
		if isOrderNumberConflict(err) {
			continue
		}
		return placed, err
	}
	return PlacedOrder{}, err
}

func (r *Repo) placeOrderTx(ctx context.Context, userID string, req PlaceOrderRequest) (PlacedOrder, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return PlacedOrder{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	items, total, err := buildOrderItems(req.Items, func(productID string) (productRow, error) {
		if uuid.Validate(productID) != nil {
			return productRow{}, errs.NotFoundf("product %s", productID)
		}
		var p productRow
		err := tx.QueryRow(ctx, `
			SELECT id, name, price, stock_quantity
			FROM products WHERE id=$1 AND is_active=true
			FOR UPDATE`, productID).Scan(&p.ID, &p.Name, &p.Price, &p.Stock)
		if errors.Is(err, pgx.ErrNoRows) {
			return productRow{}, errs.NotFoundf("product %s", productID)
		}
		return p, err
	})
	if err != nil {
		return PlacedOrder{}, err
	}

	// Rows are still locked from the pricing pass; quantities per product
	// are final, so decrement once per distinct product.
	deducted := map[string]int{}
	for _, it := range items {
		deducted[it.ProductID] += it.Quantity
	}
	for productID, qty := range deducted {
		if _, err := tx.Exec(ctx, `
			UPDATE products SET stock_quantity = stock_quantity - $2, updated_at = now()
			WHERE id=$1`, productID, qty); err != nil {
			return PlacedOrder{}, err
		}
	}

	number, err := newOrderNumber()
	if err != nil {
		return PlacedOrder{}, err
	}
	orderID := uuid.NewString()
	if _, err := tx.Exec(ctx, `
		INSERT INTO orders(id, user_id, order_number, status, payment_method,
		                   payment_status, total_amount, delivery_address, delivery_phone, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		orderID, userID, number, StatusPending, PaymentMethodCOD, PaymentPending,
		total, req.DeliveryAddress, req.DeliveryPhone, req.Notes); err != nil {
		return PlacedOrder{}, err
	}

	for _, it := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items(id, order_id, product_id, product_name, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.NewString(), orderID, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice, it.Subtotal); err != nil {
			return PlacedOrder{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return PlacedOrder{}, err
	}
	return PlacedOrder{OrderID: orderID, OrderNumber: number, TotalAmount: total}, nil
}

func isOrderNumberConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == "23505" && pgErr.ConstraintName == "idx_orders_order_number"
}

const orderColumns = `id, user_id, order_number, status, payment_method, payment_status,
	total_amount, delivery_address, delivery_phone, notes, created_at, updated_at`

// ListByUser returns the caller's own orders, newest first, each with its
// items. Other users' orders are never visible through this path.
func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+orderColumns+`
	                              FROM orders WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	index := map[string]int{}
	ids := []string{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.OrderNumber, &o.Status, &o.PaymentMethod,
			&o.PaymentStatus, &o.TotalAmount, &o.DeliveryAddress, &o.DeliveryPhone,
			&o.Notes, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		o.Items = []OrderItem{}
		index[o.ID] = len(out)
		ids = append(ids, o.ID)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	itemRows, err := r.DB.Query(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, subtotal
		FROM order_items WHERE order_id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var it OrderItem
		if err := itemRows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName,
			&it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, err
		}
		i := index[it.OrderID]
		out[i].Items = append(out[i].Items, it)
	}
	return out, itemRows.Err()
}

// UpdateStatus sets both lifecycle flags together. Enum membership is the
// only rule: the retailer's staff move orders freely, so any status may
// follow any other.
func (r *Repo) UpdateStatus(ctx context.Context, orderID string, status Status, payment PaymentStatus) error {
	if !ValidStatus(status) {
		return errs.Validation("status", "must be one of pending, confirmed, out_for_delivery, delivered, cancelled")
	}
	if !ValidPaymentStatus(payment) {
		return errs.Validation("payment_status", "must be pending or paid")
	}
	if uuid.Validate(orderID) != nil {
		return errs.NotFoundf("order %s", orderID)
	}
	ct, err := r.DB.Exec(ctx, `
		UPDATE orders SET status=$2, payment_status=$3, updated_at=now()
		WHERE id=$1`, orderID, status, payment)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.NotFoundf("order %s", orderID)
	}
	return nil
}

// GetStatus backs the status-cache miss path.
func (r *Repo) GetStatus(ctx context.Context, orderID string) (Status, PaymentStatus, error) {
	if uuid.Validate(orderID) != nil {
		return "", "", errs.NotFoundf("order %s", orderID)
	}
	var s Status
	var p PaymentStatus
	err := r.DB.QueryRow(ctx, `SELECT status, payment_status FROM orders WHERE id=$1`, orderID).Scan(&s, &p)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", errs.NotFoundf("order %s", orderID)
	}
	return s, p, err
}
