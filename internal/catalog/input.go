package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/jimgas/gas-orders/internal/errs"
)

// CreateInput carries the admin's new-product request. All fields are
// required; is_active defaults to true and is not part of the input.
type CreateInput struct {
	Name          string          `json:"name"`
	Brand         string          `json:"brand"`
	WeightKg      int             `json:"weight_kg"`
	Type          ProductType     `json:"type"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
}

func (in *CreateInput) Validate() *errs.ValidationError {
	if in.Name == "" {
		return errs.Validation("name", "required")
	}
	if in.Brand == "" {
		return errs.Validation("brand", "required")
	}
	if in.WeightKg < 1 {
		return errs.Validation("weight_kg", "must be a positive integer")
	}
	if !ValidProductType(in.Type) {
		return errs.Validation("type", "must be refill or cylinder")
	}
	if in.Price.LessThanOrEqual(decimal.Zero) {
		return errs.Validation("price", "must be greater than zero")
	}
	if in.StockQuantity < 0 {
		return errs.Validation("stock_quantity", "must not be negative")
	}
	return nil
}

// UpdateInput is a partial update; nil fields are left untouched.
type UpdateInput struct {
	Name          *string          `json:"name"`
	Brand         *string          `json:"brand"`
	WeightKg      *int             `json:"weight_kg"`
	Type          *ProductType     `json:"type"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stock_quantity"`
	IsActive      *bool            `json:"is_active"`
}

func (in *UpdateInput) Validate() *errs.ValidationError {
	if in.Name != nil && *in.Name == "" {
		return errs.Validation("name", "must not be empty")
	}
	if in.Brand != nil && *in.Brand == "" {
		return errs.Validation("brand", "must not be empty")
	}
	if in.WeightKg != nil && *in.WeightKg < 1 {
		return errs.Validation("weight_kg", "must be a positive integer")
	}
	if in.Type != nil && !ValidProductType(*in.Type) {
		return errs.Validation("type", "must be refill or cylinder")
	}
	if in.Price != nil && in.Price.LessThanOrEqual(decimal.Zero) {
		return errs.Validation("price", "must be greater than zero")
	}
	if in.StockQuantity != nil && *in.StockQuantity < 0 {
		return errs.Validation("stock_quantity", "must not be negative")
	}
	if in.empty() {
		return errs.Validation("", "no fields to update")
	}
	return nil
}

func (in *UpdateInput) empty() bool {
	return in.Name == nil && in.Brand == nil && in.WeightKg == nil &&
		in.Type == nil && in.Price == nil && in.StockQuantity == nil &&
		in.IsActive == nil
}
