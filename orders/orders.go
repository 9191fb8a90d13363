package orders

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"vestra/db"
	"vestra/models"
	"vestra/mq"
	"vestra/pricing"
	"vestra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const pageSize = 10

// CreateOrder freezes the caller's line items into an order. Prices, totals
// and snapshots are resolved server-side from the catalog; the client's idea
// of a total is treated as a display hint and ignored.
func CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Items           []models.OrderItem     `json:"items"`
		ShippingAddress models.ShippingAddress `json:"shippingAddress"`
		PaymentMethod   string                 `json:"paymentMethod"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if len(payload.Items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Order has no items")
		return
	}
	if payload.PaymentMethod == "" || payload.ShippingAddress.Street == "" || payload.ShippingAddress.City == "" {
		http.Error(w, "Missing shipping address or payment method", http.StatusBadRequest)
		return
	}

	resolved := make(map[string]models.Product, len(payload.Items))
	for _, line := range payload.Items {
		if _, ok := resolved[line.ProductID]; ok {
			continue
		}
		var product models.Product
		err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": line.ProductID}).Decode(&product)
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Product not found: "+line.ProductID)
			return
		}
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve products")
			return
		}
		resolved[product.ProductID] = product
	}

	items, err := Snapshot(payload.Items, resolved)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	quote := pricing.ComputeOrder(items)
	order := models.Order{
		OrderID:         "o" + utils.GenerateRandomString(14),
		UserID:          userID,
		Items:           items,
		ShippingAddress: payload.ShippingAddress,
		PaymentMethod:   payload.PaymentMethod,
		ItemsPrice:      quote.ItemsPrice,
		TaxPrice:        quote.TaxPrice,
		ShippingPrice:   quote.ShippingPrice,
		TotalPrice:      quote.TotalPrice,
		Version:         0,
		CreatedAt:       time.Now(),
	}

	if _, err := db.OrdersCollection.InsertOne(ctx, order); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	go mq.Emit(r.Context(), "order-created", models.Index{EntityType: "order", EntityId: order.OrderID, Method: "POST"})
	utils.RespondWithJSON(w, http.StatusCreated, order)
}

func loadOrder(ctx context.Context, w http.ResponseWriter, orderID string) (models.Order, bool) {
	var order models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return order, false
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch order")
		return order, false
	}
	return order, true
}

func mayAccess(r *http.Request, order models.Order) bool {
	return order.UserID == utils.GetUserIDFromRequest(r) || utils.IsAdminRequest(r)
}

// GetOrder returns one order to its owner or an admin.
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order, ok := loadOrder(ctx, w, ps.ByName("orderid"))
	if !ok {
		return
	}
	if !mayAccess(r, order) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, order)
}

// GetMyOrders lists the caller's orders, newest first.
func GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	orders, err := utils.FindAndDecode[models.Order](ctx, db.OrdersCollection, bson.M{"userid": userID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	utils.RespondWithJSON(w, http.StatusOK, orders)
}

// ListOrders is the admin view over every order, paginated.
func ListOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	page := utils.ParsePage(r, "page")

	count, err := db.OrdersCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list orders")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(pageSize)
	orders, err := utils.FindAndDecode[models.Order](ctx, db.OrdersCollection, bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"orders": orders,
		"page":   page,
		"pages":  utils.TotalPages(count, pageSize),
	})
}

// RecordPayment applies the payment transition under a version compare-and-
// set. A paid order rejects a second payment with a conflict.
func RecordPayment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var result models.PaymentResult
	if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	order, ok := loadOrder(ctx, w, ps.ByName("orderid"))
	if !ok {
		return
	}
	if !mayAccess(r, order) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if err := ApplyPayment(&order, result, time.Now()); err != nil {
		utils.RespondWithError(w, http.StatusConflict, err.Error())
		return
	}

	res, err := db.OrdersCollection.UpdateOne(ctx,
		bson.M{"orderid": order.OrderID, "version": order.Version},
		bson.M{
			"$set": bson.M{"isPaid": true, "paidAt": order.PaidAt, "paymentResult": order.PaymentResult},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record payment")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusConflict, "Order was modified concurrently, please retry")
		return
	}

	go mq.Emit(r.Context(), "order-paid", models.Index{EntityType: "order", EntityId: order.OrderID, Method: "PUT"})
	utils.RespondWithJSON(w, http.StatusOK, order)
}

// RecordDelivery applies the delivery transition; it demands a paid order.
func RecordDelivery(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, ok := loadOrder(ctx, w, ps.ByName("orderid"))
	if !ok {
		return
	}

	if err := ApplyDelivery(&order, time.Now()); err != nil {
		utils.RespondWithError(w, http.StatusConflict, err.Error())
		return
	}

	res, err := db.OrdersCollection.UpdateOne(ctx,
		bson.M{"orderid": order.OrderID, "version": order.Version},
		bson.M{
			"$set": bson.M{"isDelivered": true, "deliveredAt": order.DeliveredAt},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record delivery")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusConflict, "Order was modified concurrently, please retry")
		return
	}

	go mq.Emit(r.Context(), "order-delivered", models.Index{EntityType: "order", EntityId: order.OrderID, Method: "PUT"})
	utils.RespondWithJSON(w, http.StatusOK, order)
}
