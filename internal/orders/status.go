package orders

type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// PaymentMethodCOD is the only payment method the backend records; payment
// is collected at the door and tracked via PaymentStatus.
const PaymentMethodCOD = "cod"

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func ValidPaymentStatus(s PaymentStatus) bool {
	return s == PaymentPending || s == PaymentPaid
}
