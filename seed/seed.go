// Package seed loads a small demo catalog and two accounts so a fresh
// database is immediately browsable.
package seed

import (
	"context"
	"fmt"
	"log"
	"time"

	"vestra/db"
	"vestra/models"
	"vestra/utils"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

func sampleProducts() []models.Product {
	return []models.Product{
		{
			Name:         "Classic White T-Shirt",
			Image:        "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=500&q=80",
			Description:  "A comfortable and versatile white t-shirt made from 100% organic cotton. Perfect for everyday wear and easy to style with any outfit.",
			Brand:        "Fashion Brand",
			Category:     "T-Shirts",
			Price:        29.99,
			CountInStock: 10,
			Sizes:        []string{"XS", "S", "M", "L", "XL"},
			Colors: []models.Color{
				{Name: "White", Value: "#FFFFFF"},
				{Name: "Black", Value: "#000000"},
				{Name: "Gray", Value: "#808080"},
			},
		},
		{
			Name:         "Black Denim Jeans",
			Image:        "https://images.unsplash.com/photo-1541099649105-f69ad21f3246?w=500&q=80",
			Description:  "Classic black denim jeans with a slim fit. Made from high-quality denim that provides both comfort and durability.",
			Brand:        "Denim Co",
			Category:     "Jeans",
			Price:        59.99,
			CountInStock: 7,
			Sizes:        []string{"28", "30", "32", "34", "36"},
			Colors: []models.Color{
				{Name: "Black", Value: "#000000"},
				{Name: "Blue", Value: "#0000FF"},
			},
		},
		{
			Name:         "Casual Hoodie",
			Image:        "https://images.unsplash.com/photo-1556821840-3a63f95609a7?w=500&q=80",
			Description:  "Stay warm and stylish with this casual hoodie. Features a kangaroo pocket and adjustable drawstring hood.",
			Brand:        "Urban Style",
			Category:     "Hoodies",
			Price:        49.99,
			CountInStock: 5,
			Sizes:        []string{"S", "M", "L", "XL", "XXL"},
			Colors: []models.Color{
				{Name: "Gray", Value: "#808080"},
				{Name: "Black", Value: "#000000"},
				{Name: "Navy", Value: "#000080"},
			},
		},
		{
			Name:         "Summer Dress",
			Image:        "https://images.unsplash.com/photo-1612336307429-8a898d10e223?w=500&q=80",
			Description:  "Light and flowy summer dress perfect for warm days. Features a flattering silhouette and breathable fabric.",
			Brand:        "Summer Vibes",
			Category:     "Dresses",
			Price:        39.99,
			CountInStock: 11,
			Sizes:        []string{"XS", "S", "M", "L"},
			Colors: []models.Color{
				{Name: "Floral", Value: "#FFC0CB"},
				{Name: "Blue", Value: "#ADD8E6"},
				{Name: "White", Value: "#FFFFFF"},
			},
		},
		{
			Name:         "Leather Jacket",
			Image:        "https://images.unsplash.com/photo-1551028719-00167b16eac5?w=500&q=80",
			Description:  "Classic leather jacket with a modern twist. Made from premium leather with a comfortable lining.",
			Brand:        "Leather Luxe",
			Category:     "Jackets",
			Price:        129.99,
			CountInStock: 7,
			Sizes:        []string{"S", "M", "L", "XL"},
			Colors: []models.Color{
				{Name: "Brown", Value: "#8B4513"},
				{Name: "Black", Value: "#000000"},
			},
		},
		{
			Name:         "Striped Polo Shirt",
			Image:        "https://images.unsplash.com/photo-1576566588028-4147f3842f27?w=500&q=80",
			Description:  "Classic striped polo shirt perfect for casual or semi-formal occasions. Made from breathable cotton.",
			Brand:        "Polo Club",
			Category:     "Shirts",
			Price:        34.99,
			CountInStock: 0,
			Sizes:        []string{"S", "M", "L", "XL", "XXL"},
			Colors: []models.Color{
				{Name: "Navy/White", Value: "#000080"},
				{Name: "Red/White", Value: "#FF0000"},
				{Name: "Green/White", Value: "#008000"},
			},
		},
	}
}

func seedUser(ctx context.Context, name, email, password string, admin bool) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	user := models.User{
		UserID:    "u" + utils.GenerateRandomString(10),
		Name:      name,
		Email:     email,
		Password:  string(hashed),
		IsAdmin:   admin,
		Wishlist:  []string{},
		CreatedAt: time.Now(),
	}
	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		return "", err
	}
	return user.UserID, nil
}

// Run wipes the products, users and orders collections and inserts the demo
// data. Meant for development databases only.
func Run(ctx context.Context) error {
	for _, coll := range []struct {
		name string
		drop func() error
	}{
		{"orders", func() error { _, err := db.OrdersCollection.DeleteMany(ctx, bson.M{}); return err }},
		{"products", func() error { _, err := db.ProductsCollection.DeleteMany(ctx, bson.M{}); return err }},
		{"users", func() error { _, err := db.UserCollection.DeleteMany(ctx, bson.M{}); return err }},
	} {
		if err := coll.drop(); err != nil {
			return fmt.Errorf("seed: clearing %s: %w", coll.name, err)
		}
	}

	adminID, err := seedUser(ctx, "Admin User", "admin@example.com", "admin123", true)
	if err != nil {
		return fmt.Errorf("seed: admin user: %w", err)
	}
	if _, err := seedUser(ctx, "Demo User", "demo@example.com", "demo123", false); err != nil {
		return fmt.Errorf("seed: demo user: %w", err)
	}

	now := time.Now()
	for i, product := range sampleProducts() {
		product.ProductID = "p" + utils.GenerateRandomString(12)
		product.Thumb = product.Image
		product.Reviews = []models.Review{}
		product.CreatedBy = adminID
		product.CreatedAt = now.Add(time.Duration(i) * time.Second)
		product.UpdatedAt = product.CreatedAt
		if _, err := db.ProductsCollection.InsertOne(ctx, product); err != nil {
			return fmt.Errorf("seed: product %q: %w", product.Name, err)
		}
	}

	log.Printf("Seeded %d products and 2 users (admin@example.com / admin123)", len(sampleProducts()))
	return nil
}
