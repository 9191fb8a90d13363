// Package pricing turns a cart into its checkout totals. All arithmetic is
// float64 rounded to two decimal places at every boundary, matching how the
// values are persisted and displayed.
package pricing

import (
	"vestra/models"
	"vestra/utils"
)

const (
	// TaxRate is the flat rate applied to the item subtotal.
	TaxRate = 0.08
	// FlatShipping is charged on every non-empty cart. An empty cart quotes
	// zero across the board; it never ships anything.
	FlatShipping = 5.99
)

// Quote is the computed price breakdown for a set of line items.
type Quote struct {
	ItemsPrice    float64 `json:"itemsPrice"`
	ShippingPrice float64 `json:"shippingPrice"`
	TaxPrice      float64 `json:"taxPrice"`
	TotalPrice    float64 `json:"totalPrice"`
}

// Compute prices the given lines: subtotal, flat shipping, tax on the
// subtotal, and their sum.
func Compute(items []models.CartItem) Quote {
	if len(items) == 0 {
		return Quote{}
	}

	var subtotal float64
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	subtotal = utils.Round2(subtotal)

	tax := utils.Round2(subtotal * TaxRate)
	total := utils.Round2(subtotal + FlatShipping + tax)

	return Quote{
		ItemsPrice:    subtotal,
		ShippingPrice: FlatShipping,
		TaxPrice:      tax,
		TotalPrice:    total,
	}
}

// ComputeOrder prices order line items; same arithmetic, order item shape.
func ComputeOrder(items []models.OrderItem) Quote {
	lines := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, models.CartItem{Price: item.Price, Quantity: item.Quantity})
	}
	return Compute(lines)
}
