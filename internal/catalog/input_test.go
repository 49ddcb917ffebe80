package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreate() CreateInput {
	return CreateInput{
		Name:          "K-Gas 6kg",
		Brand:         "K-Gas",
		WeightKg:      6,
		Type:          TypeRefill,
		Price:         decimal.NewFromInt(1200),
		StockQuantity: 10,
	}
}

func TestCreateInputValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateInput)
		field  string
	}{
		{"missing name", func(in *CreateInput) { in.Name = "" }, "name"},
		{"missing brand", func(in *CreateInput) { in.Brand = "" }, "brand"},
		{"zero weight", func(in *CreateInput) { in.WeightKg = 0 }, "weight_kg"},
		{"bad type", func(in *CreateInput) { in.Type = "bottle" }, "type"},
		{"zero price", func(in *CreateInput) { in.Price = decimal.Zero }, "price"},
		{"negative price", func(in *CreateInput) { in.Price = decimal.NewFromInt(-5) }, "price"},
		{"negative stock", func(in *CreateInput) { in.StockQuantity = -1 }, "stock_quantity"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validCreate()
			tc.mutate(&in)
			verr := in.Validate()
			require.NotNil(t, verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}

	in := validCreate()
	assert.Nil(t, in.Validate())

	in = validCreate()
	in.Type = TypeCylinder
	in.StockQuantity = 0 // out of stock is a valid state to create in
	assert.Nil(t, in.Validate())
}

func TestUpdateInputValidate(t *testing.T) {
	price := decimal.NewFromInt(1350)
	stock := 25
	in := UpdateInput{Price: &price, StockQuantity: &stock}
	assert.Nil(t, in.Validate())

	empty := UpdateInput{}
	verr := empty.Validate()
	require.NotNil(t, verr)

	bad := decimal.NewFromInt(-1)
	in = UpdateInput{Price: &bad}
	verr = in.Validate()
	require.NotNil(t, verr)
	assert.Equal(t, "price", verr.Field)

	negStock := -3
	in = UpdateInput{StockQuantity: &negStock}
	verr = in.Validate()
	require.NotNil(t, verr)
	assert.Equal(t, "stock_quantity", verr.Field)

	badType := ProductType("tank")
	in = UpdateInput{Type: &badType}
	verr = in.Validate()
	require.NotNil(t, verr)
	assert.Equal(t, "type", verr.Field)

	active := false
	in = UpdateInput{IsActive: &active}
	assert.Nil(t, in.Validate())
}

func TestValidProductType(t *testing.T) {
	assert.True(t, ValidProductType(TypeRefill))
	assert.True(t, ValidProductType(TypeCylinder))
	assert.False(t, ValidProductType(""))
	assert.False(t, ValidProductType("Refill"))
}
