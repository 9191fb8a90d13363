package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ProductsCollection *mongo.Collection
	UserCollection     *mongo.Collection
	OrdersCollection   *mongo.Collection
	Client             *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "vestra"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database(dbName)
	ProductsCollection = database.Collection("products")
	UserCollection = database.Collection("users")
	OrdersCollection = database.Collection("orders")
}

// EnsureIndexes creates the indexes the handlers rely on: unique user email,
// unique app-level ids, and the catalog listing sort key.
func EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := UserCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.M{"email": 1}, Options: options.Index().SetUnique(true).SetName("unique_email")},
		{Keys: bson.M{"userid": 1}, Options: options.Index().SetUnique(true).SetName("unique_userid")},
	})
	if err != nil {
		return err
	}

	_, err = ProductsCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.M{"productid": 1}, Options: options.Index().SetUnique(true).SetName("unique_productid")},
		{Keys: bson.D{{Key: "createdAt", Value: 1}, {Key: "productid", Value: 1}}, Options: options.Index().SetName("catalog_order")},
		{Keys: bson.M{"category": 1}, Options: options.Index().SetName("category")},
	})
	if err != nil {
		return err
	}

	_, err = OrdersCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.M{"orderid": 1}, Options: options.Index().SetUnique(true).SetName("unique_orderid")},
		{Keys: bson.M{"userid": 1}, Options: options.Index().SetName("owner")},
	})
	return err
}
