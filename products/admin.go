package products

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"vestra/db"
	"vestra/models"
	"vestra/mq"
	"vestra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProductUpdate is a partial admin edit; nil fields keep the stored value.
type ProductUpdate struct {
	Name         *string        `json:"name"`
	Description  *string        `json:"description"`
	Image        *string        `json:"image"`
	Brand        *string        `json:"brand"`
	Category     *string        `json:"category"`
	Price        *float64       `json:"price"`
	CountInStock *int           `json:"countInStock"`
	Sizes        []string       `json:"sizes"`
	Colors       []models.Color `json:"colors"`
}

// Merge applies the non-nil fields of u onto product, the "fall back to the
// existing value when omitted" contract of partial updates.
func Merge(product models.Product, u ProductUpdate) models.Product {
	if u.Name != nil {
		product.Name = *u.Name
	}
	if u.Description != nil {
		product.Description = *u.Description
	}
	if u.Image != nil {
		product.Image = *u.Image
	}
	if u.Brand != nil {
		product.Brand = *u.Brand
	}
	if u.Category != nil {
		product.Category = *u.Category
	}
	if u.Price != nil {
		product.Price = *u.Price
	}
	if u.CountInStock != nil {
		product.CountInStock = *u.CountInStock
	}
	if u.Sizes != nil {
		product.Sizes = u.Sizes
	}
	if u.Colors != nil {
		product.Colors = u.Colors
	}
	return product
}

// CreateProduct inserts a new catalog entry. Derived rating fields start at
// zero regardless of the payload.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if product.Name == "" || product.Price <= 0 || product.CountInStock < 0 {
		http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
		return
	}

	now := time.Now()
	product.ProductID = "p" + utils.GenerateRandomString(12)
	product.Rating = 0
	product.NumReviews = 0
	product.Reviews = []models.Review{}
	product.Version = 0
	product.CreatedBy = utils.GetUserIDFromRequest(r)
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := db.ProductsCollection.InsertOne(ctx, product); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	go mq.Emit(r.Context(), "product-created", models.Index{EntityType: "product", EntityId: product.ProductID, Method: "POST"})
	utils.RespondWithJSON(w, http.StatusCreated, product)
}

// EditProduct partially updates a catalog entry with a compare-and-set on the
// document version; a concurrent edit surfaces as a conflict.
func EditProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var update ProductUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if update.Price != nil && *update.Price <= 0 {
		http.Error(w, "Price must be positive", http.StatusBadRequest)
		return
	}
	if update.CountInStock != nil && *update.CountInStock < 0 {
		http.Error(w, "Stock cannot be negative", http.StatusBadRequest)
		return
	}

	productID := ps.ByName("productid")

	var existing models.Product
	err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&existing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}

	merged := Merge(existing, update)
	merged.UpdatedAt = time.Now()

	res, err := db.ProductsCollection.UpdateOne(ctx,
		bson.M{"productid": productID, "version": existing.Version},
		bson.M{
			"$set": bson.M{
				"name":         merged.Name,
				"description":  merged.Description,
				"image":        merged.Image,
				"brand":        merged.Brand,
				"category":     merged.Category,
				"price":        merged.Price,
				"countInStock": merged.CountInStock,
				"sizes":        merged.Sizes,
				"colors":       merged.Colors,
				"updatedAt":    merged.UpdatedAt,
			},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusConflict, "Product was modified concurrently, please retry")
		return
	}

	go mq.Emit(r.Context(), "product-updated", models.Index{EntityType: "product", EntityId: productID, Method: "PUT"})
	utils.RespondWithJSON(w, http.StatusOK, merged)
}

// DeleteProduct removes a catalog entry. Orders keep their own line-item
// snapshots, so nothing is orphaned.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")

	res, err := db.ProductsCollection.DeleteOne(ctx, bson.M{"productid": productID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	go mq.Emit(r.Context(), "product-deleted", models.Index{EntityType: "product", EntityId: productID, Method: "DELETE"})
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Product removed"})
}
