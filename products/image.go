package products

import (
	"context"
	"net/http"
	"time"

	"vestra/db"
	"vestra/filemgr"
	"vestra/models"
	"vestra/mq"
	"vestra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// UploadImage accepts a multipart "image" field, stores the photo and its
// thumbnail, and points the product at the new files.
func UploadImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	productID := ps.ByName("productid")

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Missing image file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	imageName, thumbName, err := filemgr.SaveProductImage(file, header)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	imagePath := "/static/productpic/" + imageName
	thumbPath := "/static/productpic/thumb/" + thumbName

	res, err := db.ProductsCollection.UpdateOne(ctx,
		bson.M{"productid": productID},
		bson.M{
			"$set": bson.M{"image": imagePath, "thumb": thumbPath, "updatedAt": time.Now()},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	go mq.Emit(r.Context(), "product-updated", models.Index{EntityType: "product", EntityId: productID, Method: "PUT"})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"image": imagePath, "thumb": thumbPath})
}
