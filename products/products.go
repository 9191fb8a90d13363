// Package products serves the catalog: public listing and detail reads plus
// the admin-only write surface.
package products

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"time"

	"vestra/db"
	"vestra/models"
	"vestra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PageSize is the fixed catalog page size.
const PageSize = 10

// BuildFilter turns the optional keyword and category parameters into a Mongo
// filter: keyword is a case-insensitive substring match on the name, category
// an exact equality, combined conjunctively.
func BuildFilter(keyword, category string) bson.M {
	filter := bson.M{}
	if keyword != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}
	}
	if category != "" {
		filter["category"] = category
	}
	return filter
}

// GetProducts lists the catalog page by page. Pages are 1-indexed; anything
// invalid falls back to page 1. Ordering is by creation time then id so
// pagination stays stable under concurrent inserts.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := r.URL.Query()
	filter := BuildFilter(q.Get("keyword"), q.Get("category"))
	page := utils.ParsePage(r, "page")

	count, err := db.ProductsCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list products")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "productid", Value: 1}}).
		SetSkip(int64((page - 1) * PageSize)).
		SetLimit(PageSize)

	items, err := utils.FindAndDecode[models.Product](ctx, db.ProductsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list products")
		return
	}
	if items == nil {
		items = []models.Product{}
	}

	utils.RespondWithJSON(w, http.StatusOK, models.ProductPage{
		Products: items,
		Page:     page,
		Pages:    utils.TotalPages(count, PageSize),
	})
}

// GetProduct returns one catalog entry.
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": ps.ByName("productid")}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, product)
}

// GetCategories returns the distinct category tags in the catalog.
func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	raw, err := db.ProductsCollection.Distinct(ctx, "category", bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list categories")
		return
	}

	categories := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			categories = append(categories, s)
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"categories": categories})
}
