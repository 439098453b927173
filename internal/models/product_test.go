package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestProductVariant_Stock(t *testing.T) {
	tests := []struct {
		name    string
		qty     *int
		stock   int
		inStock bool
	}{
		{"unknown inventory", nil, 0, false},
		{"zero", intPtr(0), 0, false},
		{"negative", intPtr(-2), -2, false},
		{"positive", intPtr(4), 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &ProductVariant{InventoryQuantity: tt.qty}
			assert.Equal(t, tt.stock, v.Stock())
			assert.Equal(t, tt.inStock, v.InStock())
		})
	}
}

func TestProductVariant_CanonicalPrice(t *testing.T) {
	v := &ProductVariant{Prices: []Price{{Amount: 2500, CurrencyCode: "usd"}, {Amount: 2300, CurrencyCode: "eur"}}}
	p, ok := v.CanonicalPrice()
	assert.True(t, ok)
	assert.Equal(t, Price{Amount: 2500, CurrencyCode: "usd"}, p)

	_, ok = (&ProductVariant{}).CanonicalPrice()
	assert.False(t, ok)
}

func TestItemIDs(t *testing.T) {
	assert.Equal(t, "prod_1_hero", HeroItemID("prod_1"))
	assert.Equal(t, "prod_1_wear_0", SupplementalItemID("prod_1", 0))
	assert.Equal(t, "prod_1_wear_12", SupplementalItemID("prod_1", 12))
}

func TestProduct_FindOption(t *testing.T) {
	p := &Product{Options: []ProductOption{
		{ID: "opt_size", Title: "Size", Values: []OptionValue{{Value: "S"}, {Value: "M"}}},
	}}

	opt, ok := p.FindOption("opt_size")
	assert.True(t, ok)
	assert.True(t, opt.HasValue("M"))
	assert.False(t, opt.HasValue("XL"))

	_, ok = p.FindOption("opt_color")
	assert.False(t, ok)
}
