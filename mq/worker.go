package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"vestra/db"
	"vestra/models"
	"vestra/rdx"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	// AutocompleteKey is a ZSET of "productid|name" members driving the
	// catalog suggest endpoint.
	AutocompleteKey = "autocomplete:products"
	// PopularKey scores products by units ordered.
	PopularKey = "popular:products"
)

// StartWorker subscribes to the event channel and maintains derived Redis
// state until ctx is cancelled. Run it in its own goroutine from main.
func StartWorker(ctx context.Context) {
	sub := rdx.Conn.Subscribe(ctx, Channel)
	defer sub.Close()
	ch := sub.Channel()

	log.Println("mq worker: listening for shop events")

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event models.Index
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("mq worker: bad payload: %v", err)
				continue
			}
			if err := apply(ctx, event); err != nil {
				log.Printf("mq worker: apply %+v failed: %v", event, err)
			}
		}
	}
}

func apply(ctx context.Context, event models.Index) error {
	switch event.EntityType {
	case "product":
		return indexProduct(ctx, event)
	case "order":
		return countOrder(ctx, event)
	case "review":
		// ratings live on the product document; nothing derived here
		return nil
	default:
		return fmt.Errorf("unsupported entity type %q", event.EntityType)
	}
}

func indexProduct(ctx context.Context, event models.Index) error {
	if strings.ToUpper(event.Method) == "DELETE" {
		return removeFromAutocomplete(ctx, event.EntityId)
	}

	var product models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": event.EntityId}).Decode(&product); err != nil {
		return err
	}

	// renames must not leave the old member behind
	if err := removeFromAutocomplete(ctx, product.ProductID); err != nil {
		return err
	}
	member := fmt.Sprintf("%s|%s", product.ProductID, product.Name)
	return rdx.Conn.ZAdd(ctx, AutocompleteKey, redis.Z{Score: 0, Member: member}).Err()
}

func removeFromAutocomplete(ctx context.Context, productID string) error {
	members, err := rdx.Conn.ZRange(ctx, AutocompleteKey, 0, -1).Result()
	if err != nil {
		return err
	}
	prefix := productID + "|"
	for _, member := range members {
		if strings.HasPrefix(member, prefix) {
			if err := rdx.Conn.ZRem(ctx, AutocompleteKey, member).Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

func countOrder(ctx context.Context, event models.Index) error {
	// only creation counts; payment and delivery reuse the same entity type
	if strings.ToUpper(event.Method) != "POST" {
		return nil
	}

	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": event.EntityId}).Decode(&order); err != nil {
		return err
	}

	for _, item := range order.Items {
		if err := rdx.Conn.ZIncrBy(ctx, PopularKey, float64(item.Quantity), item.ProductID).Err(); err != nil {
			return err
		}
	}
	return nil
}
