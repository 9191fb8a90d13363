package models

import "time"

// OrderItem is an immutable line-item snapshot. The price is the catalog price
// at creation time; later product edits do not touch existing orders.
type OrderItem struct {
	ProductID string  `json:"productId" bson:"productid"`
	Name      string  `json:"name" bson:"name"`
	Image     string  `json:"image,omitempty" bson:"image,omitempty"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Size      string  `json:"size,omitempty" bson:"size,omitempty"`
	Color     string  `json:"color,omitempty" bson:"color,omitempty"`
}

// ShippingAddress is the destination captured at checkout.
type ShippingAddress struct {
	Street     string `json:"street" bson:"street"`
	City       string `json:"city" bson:"city"`
	PostalCode string `json:"postalCode" bson:"postalCode"`
	Country    string `json:"country" bson:"country"`
}

// PaymentResult records gateway metadata supplied when payment is confirmed.
type PaymentResult struct {
	ID     string `json:"id" bson:"id"`
	Status string `json:"status" bson:"status"`
	Email  string `json:"email,omitempty" bson:"email,omitempty"`
}

// Order is a frozen cart snapshot. Monetary fields are computed server-side at
// creation and never recomputed. IsPaid and IsDelivered move one way only;
// delivery additionally requires payment first. Version guards both
// transitions with a compare-and-set.
type Order struct {
	OrderID         string          `json:"orderId" bson:"orderid"`
	UserID          string          `json:"userId" bson:"userid"`
	Items           []OrderItem     `json:"items" bson:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress" bson:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod" bson:"paymentMethod"`
	ItemsPrice      float64         `json:"itemsPrice" bson:"itemsPrice"`
	TaxPrice        float64         `json:"taxPrice" bson:"taxPrice"`
	ShippingPrice   float64         `json:"shippingPrice" bson:"shippingPrice"`
	TotalPrice      float64         `json:"totalPrice" bson:"totalPrice"`
	IsPaid          bool            `json:"isPaid" bson:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	PaymentResult   *PaymentResult  `json:"paymentResult,omitempty" bson:"paymentResult,omitempty"`
	IsDelivered     bool            `json:"isDelivered" bson:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty" bson:"deliveredAt,omitempty"`
	Version         int64           `json:"-" bson:"version"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt"`
}
