// Package orders freezes cart snapshots into order documents and walks them
// through the two one-way transitions: payment, then delivery.
package orders

import (
	"errors"
	"time"

	"vestra/models"
)

var (
	ErrNoItems          = errors.New("order has no items")
	ErrAlreadyPaid      = errors.New("order is already paid")
	ErrNotPaid          = errors.New("order has not been paid")
	ErrAlreadyDelivered = errors.New("order is already delivered")
)

// ApplyPayment moves isPaid false→true. Re-paying is rejected, never silently
// absorbed.
func ApplyPayment(order *models.Order, result models.PaymentResult, now time.Time) error {
	if order.IsPaid {
		return ErrAlreadyPaid
	}
	order.IsPaid = true
	order.PaidAt = &now
	order.PaymentResult = &result
	return nil
}

// ApplyDelivery moves isDelivered false→true. Delivery requires the order to
// be paid first.
func ApplyDelivery(order *models.Order, now time.Time) error {
	if !order.IsPaid {
		return ErrNotPaid
	}
	if order.IsDelivered {
		return ErrAlreadyDelivered
	}
	order.IsDelivered = true
	order.DeliveredAt = &now
	return nil
}

// Snapshot turns requested lines into immutable order items priced from the
// catalog entries in resolved, keyed by product id. Client-supplied prices
// are never consulted.
func Snapshot(requested []models.OrderItem, resolved map[string]models.Product) ([]models.OrderItem, error) {
	if len(requested) == 0 {
		return nil, ErrNoItems
	}

	items := make([]models.OrderItem, 0, len(requested))
	for _, line := range requested {
		product, ok := resolved[line.ProductID]
		if !ok {
			return nil, errors.New("unknown product " + line.ProductID)
		}
		if line.Quantity <= 0 {
			return nil, errors.New("invalid quantity for product " + line.ProductID)
		}
		items = append(items, models.OrderItem{
			ProductID: product.ProductID,
			Name:      product.Name,
			Image:     product.Image,
			Price:     product.Price,
			Quantity:  line.Quantity,
			Size:      line.Size,
			Color:     line.Color,
		})
	}
	return items, nil
}
