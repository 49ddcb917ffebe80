package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusOutForDelivery, StatusDelivered, StatusCancelled} {
		assert.True(t, ValidStatus(s), "status %q", s)
	}
	for _, s := range []Status{"", "shipped", "PENDING", "done"} {
		assert.False(t, ValidStatus(s), "status %q", s)
	}
}

func TestValidPaymentStatus(t *testing.T) {
	assert.True(t, ValidPaymentStatus(PaymentPending))
	assert.True(t, ValidPaymentStatus(PaymentPaid))
	assert.False(t, ValidPaymentStatus(""))
	assert.False(t, ValidPaymentStatus("refunded"))
	assert.False(t, ValidPaymentStatus("PAID"))
}
