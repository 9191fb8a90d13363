package pricing_test

import (
	"testing"

	"vestra/models"
	"vestra/pricing"

	"github.com/stretchr/testify/assert"
)

func TestCompute_TwoLineCart(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", Price: 29.99, Quantity: 2},
		{ProductID: "p2", Price: 59.99, Quantity: 1},
	}

	quote := pricing.Compute(items)

	assert.Equal(t, 119.97, quote.ItemsPrice)
	assert.Equal(t, 5.99, quote.ShippingPrice)
	assert.Equal(t, 9.60, quote.TaxPrice)
	assert.Equal(t, 135.56, quote.TotalPrice)
}

func TestCompute_TotalIsSumOfParts(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", Price: 49.99, Quantity: 3},
		{ProductID: "p2", Price: 12.50, Quantity: 1},
		{ProductID: "p3", Price: 89.00, Quantity: 2},
	}

	quote := pricing.Compute(items)

	assert.InDelta(t, quote.ItemsPrice+quote.ShippingPrice+quote.TaxPrice, quote.TotalPrice, 0.001)
	assert.InDelta(t, quote.ItemsPrice*pricing.TaxRate, quote.TaxPrice, 0.005)
}

func TestCompute_EmptyCartQuotesZero(t *testing.T) {
	quote := pricing.Compute(nil)

	assert.Equal(t, pricing.Quote{}, quote)
	assert.Zero(t, quote.ShippingPrice, "an empty cart must not be charged shipping")
}

func TestCompute_SingleItem(t *testing.T) {
	quote := pricing.Compute([]models.CartItem{{ProductID: "p1", Price: 39.99, Quantity: 1}})

	assert.Equal(t, 39.99, quote.ItemsPrice)
	assert.Equal(t, 3.20, quote.TaxPrice)
	assert.Equal(t, 49.18, quote.TotalPrice)
}

func TestComputeOrder_MatchesCartArithmetic(t *testing.T) {
	orderItems := []models.OrderItem{
		{ProductID: "p1", Price: 29.99, Quantity: 2},
		{ProductID: "p2", Price: 59.99, Quantity: 1},
	}
	cartItems := []models.CartItem{
		{ProductID: "p1", Price: 29.99, Quantity: 2},
		{ProductID: "p2", Price: 59.99, Quantity: 1},
	}

	assert.Equal(t, pricing.Compute(cartItems), pricing.ComputeOrder(orderItems))
}
