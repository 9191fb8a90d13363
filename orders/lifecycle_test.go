package orders_test

import (
	"testing"
	"time"

	"vestra/models"
	"vestra/orders"
	"vestra/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPayment(t *testing.T) {
	order := models.Order{OrderID: "o1"}
	now := time.Now()

	require.NoError(t, orders.ApplyPayment(&order, models.PaymentResult{ID: "pay_1", Status: "COMPLETED"}, now))
	assert.True(t, order.IsPaid)
	require.NotNil(t, order.PaidAt)
	assert.Equal(t, now, *order.PaidAt)
	assert.Equal(t, "pay_1", order.PaymentResult.ID)

	err := orders.ApplyPayment(&order, models.PaymentResult{ID: "pay_2"}, now.Add(time.Minute))
	assert.ErrorIs(t, err, orders.ErrAlreadyPaid)
	assert.Equal(t, "pay_1", order.PaymentResult.ID, "a rejected re-payment must not touch the order")
}

func TestApplyDelivery_RequiresPayment(t *testing.T) {
	order := models.Order{OrderID: "o1"}

	err := orders.ApplyDelivery(&order, time.Now())
	assert.ErrorIs(t, err, orders.ErrNotPaid)
	assert.False(t, order.IsDelivered)
}

func TestApplyDelivery_OneWay(t *testing.T) {
	order := models.Order{OrderID: "o1"}
	now := time.Now()
	require.NoError(t, orders.ApplyPayment(&order, models.PaymentResult{}, now))

	require.NoError(t, orders.ApplyDelivery(&order, now))
	assert.True(t, order.IsDelivered)

	err := orders.ApplyDelivery(&order, now.Add(time.Hour))
	assert.ErrorIs(t, err, orders.ErrAlreadyDelivered)
	assert.Equal(t, now, *order.DeliveredAt)
}

func TestSnapshot_RejectsEmptyOrder(t *testing.T) {
	_, err := orders.Snapshot(nil, nil)
	assert.ErrorIs(t, err, orders.ErrNoItems)
}

func TestSnapshot_PricesFromCatalogNotCaller(t *testing.T) {
	catalog := map[string]models.Product{
		"p1": {ProductID: "p1", Name: "Classic White T-Shirt", Image: "/static/productpic/p1.jpg", Price: 29.99},
		"p2": {ProductID: "p2", Name: "Black Denim Jeans", Price: 59.99},
	}
	requested := []models.OrderItem{
		{ProductID: "p1", Quantity: 2, Size: "M", Color: "White", Price: 0.01}, // client price ignored
		{ProductID: "p2", Quantity: 1},
	}

	items, err := orders.Snapshot(requested, catalog)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, 29.99, items[0].Price)
	assert.Equal(t, "Classic White T-Shirt", items[0].Name)
	assert.Equal(t, "M", items[0].Size)

	quote := pricing.ComputeOrder(items)
	assert.Equal(t, 119.97, quote.ItemsPrice)
	assert.Equal(t, 9.60, quote.TaxPrice)
	assert.Equal(t, 135.56, quote.TotalPrice)
}

func TestSnapshot_UnknownProduct(t *testing.T) {
	_, err := orders.Snapshot([]models.OrderItem{{ProductID: "ghost", Quantity: 1}}, map[string]models.Product{})
	assert.Error(t, err)
}

func TestSnapshot_RejectsNonPositiveQuantity(t *testing.T) {
	catalog := map[string]models.Product{"p1": {ProductID: "p1", Price: 10}}
	_, err := orders.Snapshot([]models.OrderItem{{ProductID: "p1", Quantity: 0}}, catalog)
	assert.Error(t, err)
}

func TestSignedPayload_Deterministic(t *testing.T) {
	a := orders.SignedPayload("o1", "u1", 1700000000)
	b := orders.SignedPayload("o1", "u1", 1700000000)
	c := orders.SignedPayload("o1", "u2", 1700000000)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "o1|u1|1700000000|")
}
