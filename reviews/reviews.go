package reviews

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sort"
	"time"

	"vestra/db"
	"vestra/models"
	"vestra/mq"
	"vestra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// casRetries bounds how often a submission re-reads the product after losing a
// version race to a concurrent review.
const casRetries = 3

// GetReviews lists a product's reviews, newest first.
func GetReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": ps.ByName("productid")}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	reviews := product.Reviews
	if reviews == nil {
		reviews = []models.Review{}
	}
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"reviews": reviews, "numReviews": product.NumReviews, "rating": product.Rating})
}

// AddReview appends one review per user per product and recomputes the
// aggregate rating. The write is a compare-and-set on the product version so
// concurrent submissions never lose each other's contribution.
func AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Rating < 1 || payload.Rating > 5 || payload.Comment == "" {
		http.Error(w, "Invalid review data", http.StatusBadRequest)
		return
	}

	productID := ps.ByName("productid")

	var reviewerName string
	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err == nil {
		reviewerName = user.Name
	}

	for attempt := 0; attempt < casRetries; attempt++ {
		var product models.Product
		err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&product)
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		if HasReviewed(product.Reviews, userID) {
			utils.RespondWithError(w, http.StatusConflict, "Product already reviewed")
			return
		}

		review := models.Review{
			ReviewID:  "r" + utils.GenerateRandomString(16),
			UserID:    userID,
			Name:      reviewerName,
			Rating:    payload.Rating,
			Comment:   payload.Comment,
			CreatedAt: time.Now(),
		}

		rating, count := Recompute(append(append([]models.Review{}, product.Reviews...), review))

		res, err := db.ProductsCollection.UpdateOne(ctx,
			bson.M{"productid": productID, "version": product.Version},
			bson.M{
				"$push": bson.M{"reviews": review},
				"$set":  bson.M{"rating": rating, "numReviews": count, "updatedAt": time.Now()},
				"$inc":  bson.M{"version": 1},
			},
		)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save review")
			return
		}
		if res.ModifiedCount == 1 {
			go mq.Emit(r.Context(), "review-added", models.Index{EntityType: "review", EntityId: review.ReviewID, Method: "POST", ItemId: productID, ItemType: "product"})
			utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"message": "Review added", "rating": rating, "numReviews": count})
			return
		}
		// lost the version race, re-read and try again
		log.Printf("review CAS retry on product %s", productID)
	}

	utils.RespondWithError(w, http.StatusConflict, "Product was modified concurrently, please retry")
}
