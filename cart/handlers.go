package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"vestra/db"
	"vestra/models"
	"vestra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Handler serves the per-user cart endpoints. The application root constructs
// it once with the persistence backend.
type Handler struct {
	Persister Persister
}

func NewHandler(p Persister) *Handler {
	return &Handler{Persister: p}
}

func (h *Handler) load(r *http.Request) (*Store, string, bool) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		return nil, "", false
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	return Load(ctx, h.Persister, Key(userID)), userID, true
}

func (h *Handler) flush(w http.ResponseWriter, r *http.Request, store *Store) bool {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := store.Flush(ctx); err != nil {
		log.Println("cart flush error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to persist cart")
		return false
	}
	return true
}

// GetCart returns the cart lines in insertion order.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	store, _, ok := h.load(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items := store.Items()
	if items == nil {
		items = []models.CartItem{}
	}
	utils.RespondWithJSON(w, http.StatusOK, items)
}

// GetQuote prices the current cart.
func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	store, _, ok := h.load(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, store.Quote())
}

// AddItem resolves the product, snapshots name/price/image and merges the
// line into the cart. Quantity is capped at 10 per line.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
		Size      string `json:"size"`
		Color     string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.ProductID == "" || payload.Quantity <= 0 || payload.Quantity > 10 {
		http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
		return
	}

	store, _, ok := h.load(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": payload.ProductID}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve product")
		return
	}

	item := models.CartItem{
		ProductID: product.ProductID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		Quantity:  payload.Quantity,
		Size:      payload.Size,
		Color:     payload.Color,
		AddedAt:   time.Now(),
	}
	if err := store.Add(item); err != nil {
		http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
		return
	}

	if !h.flush(w, r, store) {
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, store.Items())
}

// UpdateQuantity sets the quantity of one variant line.
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var payload struct {
		Quantity int    `json:"quantity"`
		Size     string `json:"size"`
		Color    string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.Quantity < 1 || payload.Quantity > 10 {
		http.Error(w, "Quantity must be between 1 and 10", http.StatusBadRequest)
		return
	}

	store, _, ok := h.load(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := store.SetQuantity(ps.ByName("productid"), payload.Size, payload.Color, payload.Quantity); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "No such cart item")
		return
	}

	if !h.flush(w, r, store) {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, store.Items())
}

// RemoveItem drops one variant line; without size/color query parameters it
// drops every variant of the product.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	store, _, ok := h.load(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	store.Remove(ps.ByName("productid"), q.Get("size"), q.Get("color"))

	if !h.flush(w, r, store) {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, store.Items())
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	store, _, ok := h.load(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	store.Clear()
	if !h.flush(w, r, store) {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
