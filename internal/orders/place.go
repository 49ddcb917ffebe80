package orders

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jimgas/gas-orders/internal/errs"
)

type LineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type PlaceOrderRequest struct {
	DeliveryAddress string        `json:"delivery_address"`
	DeliveryPhone   string        `json:"delivery_phone"`
	Notes           string        `json:"notes"`
	Items           []LineRequest `json:"items"`
}

// Validate runs before any transaction is opened; a request that fails here
// never touches the database.
func (req *PlaceOrderRequest) Validate() *errs.ValidationError {
	if req.DeliveryAddress == "" {
		return errs.Validation("delivery_address", "required")
	}
	if req.DeliveryPhone == "" {
		return errs.Validation("delivery_phone", "required")
	}
	if len(req.Items) == 0 {
		return errs.Validation("items", "at least one item is required")
	}
	for i, it := range req.Items {
		if it.ProductID == "" {
			return errs.Validation(fieldAt(i, "product_id"), "required")
		}
		if it.Quantity < 1 {
			return errs.Validation(fieldAt(i, "quantity"), "must be at least 1")
		}
	}
	return nil
}

func fieldAt(i int, name string) string {
	return "items[" + strconv.Itoa(i) + "]." + name
}

// productRow is the slice of a product the pricing step needs.
type productRow struct {
	ID    string
	Name  string
	Price decimal.Decimal
	Stock int
}

// buildOrderItems prices every requested line against a fetched product row
// and verifies stock. fetch is called once per distinct product id; inside a
// placement transaction it locks the row. Stock is checked against the
// cumulative quantity per product so the same product on two lines cannot
// slip past the check. Any failure means the whole order fails.
func buildOrderItems(lines []LineRequest, fetch func(productID string) (productRow, error)) ([]OrderItem, decimal.Decimal, error) {
	products := make(map[string]productRow, len(lines))
	needed := make(map[string]int, len(lines))

	items := make([]OrderItem, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		p, ok := products[line.ProductID]
		if !ok {
			var err error
			p, err = fetch(line.ProductID)
			if err != nil {
				return nil, decimal.Zero, err
			}
			products[line.ProductID] = p
		}

		needed[line.ProductID] += line.Quantity
		if needed[line.ProductID] > p.Stock {
			return nil, decimal.Zero, &errs.InsufficientStockError{ProductName: p.Name}
		}

		subtotal := p.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    line.Quantity,
			UnitPrice:   p.Price,
			Subtotal:    subtotal,
		})
		total = total.Add(subtotal)
	}
	return items, total, nil
}
