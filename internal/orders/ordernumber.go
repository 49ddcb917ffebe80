package orders

import (
	"crypto/rand"
	"fmt"
)

const (
	orderNumberPrefix   = "GAS-"
	orderNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	orderNumberLen      = 8
)

// newOrderNumber returns "GAS-" plus 8 random uppercase alphanumerics.
// Uniqueness is enforced by the orders.order_number index; PlaceOrder
// regenerates on conflict.
func newOrderNumber() (string, error) {
	buf := make([]byte, orderNumberLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("order number: %w", err)
	}
	for i, b := range buf {
		buf[i] = orderNumberAlphabet[int(b)%len(orderNumberAlphabet)]
	}
	return orderNumberPrefix + string(buf), nil
}
