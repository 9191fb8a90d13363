package models

import "time"

// Color pairs a display name with its swatch value.
type Color struct {
	Name  string `json:"name" bson:"name"`
	Value string `json:"value" bson:"value"`
}

// Review is a single customer review embedded in its product document.
// Reviews are append-only; there is no edit or delete path.
type Review struct {
	ReviewID  string    `json:"reviewId" bson:"reviewid"`
	UserID    string    `json:"userId" bson:"userid"`
	Name      string    `json:"name" bson:"name"`
	Rating    int       `json:"rating" bson:"rating"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Product is a catalog entry. Rating and NumReviews are derived from the
// embedded review list and recomputed on every append. Version guards
// concurrent writes: every update is a compare-and-set on it.
type Product struct {
	ProductID    string    `json:"productId" bson:"productid"`
	Name         string    `json:"name" bson:"name"`
	Description  string    `json:"description" bson:"description"`
	Image        string    `json:"image" bson:"image"`
	Thumb        string    `json:"thumb,omitempty" bson:"thumb,omitempty"`
	Brand        string    `json:"brand" bson:"brand"`
	Category     string    `json:"category" bson:"category"`
	Price        float64   `json:"price" bson:"price"`
	CountInStock int       `json:"countInStock" bson:"countInStock"`
	Rating       float64   `json:"rating" bson:"rating"`
	NumReviews   int       `json:"numReviews" bson:"numReviews"`
	Sizes        []string  `json:"sizes" bson:"sizes"`
	Colors       []Color   `json:"colors" bson:"colors"`
	Reviews      []Review  `json:"reviews" bson:"reviews"`
	Version      int64     `json:"-" bson:"version"`
	CreatedBy    string    `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ProductPage is the catalog listing response: one page of matches plus the
// effective page number and total page count.
type ProductPage struct {
	Products []Product `json:"products"`
	Page     int       `json:"page"`
	Pages    int       `json:"pages"`
}
