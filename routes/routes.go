package routes

import (
	"net/http"

	"vestra/auth"
	"vestra/cart"
	"vestra/middleware"
	"vestra/orders"
	"vestra/products"
	"vestra/profile"
	"vestra/ratelim"
	"vestra/reviews"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", rl.Limit(auth.RefreshToken))
}

func AddProductRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/products", rl.Limit(products.GetProducts))
	router.GET("/api/categories", rl.Limit(products.GetCategories))
	router.GET("/api/suggestions/products", rl.Limit(products.Suggest))
	router.GET("/api/products/:productid", products.GetProduct)
	router.POST("/api/products", middleware.RequireAdmin(products.CreateProduct))
	router.PUT("/api/products/:productid", middleware.RequireAdmin(products.EditProduct))
	router.DELETE("/api/products/:productid", middleware.RequireAdmin(products.DeleteProduct))
	router.POST("/api/products/:productid/image", middleware.RequireAdmin(products.UploadImage))

	router.GET("/api/products/:productid/reviews", reviews.GetReviews)
	router.POST("/api/products/:productid/reviews", rl.Limit(middleware.Authenticate(reviews.AddReview)))
}

func AddCartRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *cart.Handler) {
	router.GET("/api/cart", middleware.Authenticate(h.GetCart))
	router.GET("/api/cart/quote", middleware.Authenticate(h.GetQuote))
	router.POST("/api/cart/items", rl.Limit(middleware.Authenticate(h.AddItem)))
	router.PUT("/api/cart/items/:productid", middleware.Authenticate(h.UpdateQuantity))
	router.DELETE("/api/cart/items/:productid", middleware.Authenticate(h.RemoveItem))
	router.DELETE("/api/cart", middleware.Authenticate(h.ClearCart))
}

func AddOrderRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/orders", rl.Limit(middleware.Authenticate(orders.CreateOrder)))
	router.GET("/api/orders", middleware.Authenticate(orders.GetMyOrders))
	router.GET("/api/orders/:orderid", middleware.Authenticate(orders.GetOrder))
	router.PUT("/api/orders/:orderid/pay", rl.Limit(middleware.Authenticate(orders.RecordPayment)))
	router.PUT("/api/orders/:orderid/deliver", middleware.RequireAdmin(orders.RecordDelivery))
	router.GET("/api/orders/:orderid/invoice", rl.Limit(middleware.Authenticate(orders.PrintInvoice)))
}

func AddProfileRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/profile", middleware.Authenticate(profile.GetProfile))
	router.PUT("/api/profile", rl.Limit(middleware.Authenticate(profile.UpdateProfile)))
	router.GET("/api/profile/wishlist", middleware.Authenticate(profile.GetWishlist))
	router.POST("/api/profile/wishlist", rl.Limit(middleware.Authenticate(profile.AddToWishlist)))
	router.DELETE("/api/profile/wishlist/:productid", middleware.Authenticate(profile.RemoveFromWishlist))
}

func AddAdminRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/admin/users", rl.Limit(middleware.RequireAdmin(profile.ListUsers)))
	router.GET("/api/admin/orders", rl.Limit(middleware.RequireAdmin(orders.ListOrders)))
}
