package models

import "time"

// CartItem is one line in a cart. Name, price and image are snapshots taken
// when the item was added. Two lines merge when they share the same
// (productId, size, color) tuple.
type CartItem struct {
	ProductID string    `json:"productId" bson:"productid"`
	Name      string    `json:"name" bson:"name"`
	Price     float64   `json:"price" bson:"price"`
	Image     string    `json:"image,omitempty" bson:"image,omitempty"`
	Quantity  int       `json:"quantity" bson:"quantity"`
	Size      string    `json:"size,omitempty" bson:"size,omitempty"`
	Color     string    `json:"color,omitempty" bson:"color,omitempty"`
	AddedAt   time.Time `json:"addedAt" bson:"addedAt"`
}

// SameVariant reports whether two lines represent the same product variant.
func (c CartItem) SameVariant(other CartItem) bool {
	return c.ProductID == other.ProductID && c.Size == other.Size && c.Color == other.Color
}
