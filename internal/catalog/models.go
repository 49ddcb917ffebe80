package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductType string

const (
	TypeRefill   ProductType = "refill"
	TypeCylinder ProductType = "cylinder"
)

func ValidProductType(t ProductType) bool {
	return t == TypeRefill || t == TypeCylinder
}

type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Brand         string          `json:"brand"`
	WeightKg      int             `json:"weight_kg"`
	Type          ProductType     `json:"type"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
