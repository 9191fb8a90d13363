// Package profile serves the authenticated account surface: profile reads and
// partial updates, plus the wishlist set.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"vestra/db"
	"vestra/models"
	"vestra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

func loadUser(ctx context.Context, w http.ResponseWriter, userID string) (models.User, bool) {
	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return user, false
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return user, false
	}
	return user, true
}

// GetProfile returns the caller's account, wishlist included.
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, ok := loadUser(ctx, w, utils.GetUserIDFromRequest(r))
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

// UpdateProfile applies a partial update: omitted fields keep their stored
// values, the password is re-hashed only when supplied.
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	user, ok := loadUser(ctx, w, utils.GetUserIDFromRequest(r))
	if !ok {
		return
	}

	set := bson.M{}
	if input.Name != nil && *input.Name != "" {
		set["name"] = *input.Name
	}
	if input.Email != nil && *input.Email != "" {
		set["email"] = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Password != nil {
		if len(*input.Password) < 6 {
			http.Error(w, "Password must be at least 6 characters", http.StatusBadRequest)
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "Failed to hash password", http.StatusInternalServerError)
			return
		}
		set["password"] = string(hashed)
	}

	if len(set) == 0 {
		utils.RespondWithJSON(w, http.StatusOK, user.Summary())
		return
	}

	_, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": user.UserID}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "Email already in use")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	updated, ok := loadUser(ctx, w, user.UserID)
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated.Summary())
}

// GetWishlist resolves the caller's wishlist into catalog entries, skipping
// products that were removed since.
func GetWishlist(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, ok := loadUser(ctx, w, utils.GetUserIDFromRequest(r))
	if !ok {
		return
	}

	items := []models.Product{}
	if len(user.Wishlist) > 0 {
		found, err := utils.FindAndDecode[models.Product](ctx, db.ProductsCollection,
			bson.M{"productid": bson.M{"$in": user.Wishlist}},
			options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load wishlist")
			return
		}
		items = found
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"wishlist": items})
}

// AddToWishlist inserts a product id with set semantics: a duplicate is a
// conflict, not a second entry.
func AddToWishlist(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.ProductID == "" {
		http.Error(w, "Product id is required", http.StatusBadRequest)
		return
	}

	count, err := db.ProductsCollection.CountDocuments(ctx, bson.M{"productid": input.ProductID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	res, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID, "wishlist": bson.M{"$ne": input.ProductID}},
		bson.M{"$addToSet": bson.M{"wishlist": input.ProductID}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update wishlist")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusConflict, "Product already in wishlist")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Product added to wishlist"})
}

// RemoveFromWishlist is a set difference; removing an absent product still
// succeeds.
func RemoveFromWishlist(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$pull": bson.M{"wishlist": ps.ByName("productid")}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update wishlist")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Product removed from wishlist"})
}

// ListUsers is the admin account listing.
func ListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	users, err := utils.FindAndDecode[models.UserSummary](ctx, db.UserCollection, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}
	if users == nil {
		users = []models.UserSummary{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"users": users})
}
