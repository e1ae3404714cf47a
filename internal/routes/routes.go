package routes

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/official-fedorenko/ElectricalShop/internal/handlers"
	"github.com/official-fedorenko/ElectricalShop/internal/handlers/admin"
	"github.com/official-fedorenko/ElectricalShop/internal/handlers/product"
	"github.com/official-fedorenko/ElectricalShop/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	// CORS pour le front
	origins := strings.Split(os.Getenv("CORS_ORIGINS"), ",")
	if len(origins) == 1 && origins[0] == "" {
		origins = []string{"http://localhost:5173"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Guest-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")

	// --- Auth ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", middleware.RegisterRateLimit(), handlers.Register)
		auth.POST("/login", middleware.LoginRateLimit(), handlers.Login)
		auth.GET("/me", middleware.AuthRequired(), handlers.Me)
	}

	// --- Catalogue (public) ---
	api.GET("/products", product.GetAllProducts)
	api.GET("/products/:id", product.GetProduct)
	api.GET("/search", product.SearchProducts)

	// --- Panier invité (session non authentifiée, header X-Guest-ID) ---
	guest := api.Group("/cart/guest")
	{
		guest.GET("", handlers.GetGuestCart)
		guest.POST("/items", handlers.AddGuestCartItem)
		guest.PUT("/items/:productId", handlers.UpdateGuestCartItem)
		guest.DELETE("/items/:productId", handlers.RemoveGuestCartItem)
		guest.DELETE("", handlers.ClearGuestCart)
	}

	// --- Panier utilisateur ---
	userCart := api.Group("/cart", middleware.AuthRequired())
	{
		userCart.GET("", handlers.GetCart)
		userCart.POST("/items", handlers.AddCartItem)
		userCart.PUT("/items/:productId", handlers.UpdateCartItem)
		userCart.DELETE("/items/:productId", handlers.RemoveCartItem)
		userCart.DELETE("", handlers.ClearCart)
		userCart.POST("/sync", handlers.SyncCart)
	}

	// --- Back-office ---
	adminGroup := api.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin())
	{
		adminGroup.GET("/users", admin.ListUsers)
		adminGroup.PUT("/users/:id/role", admin.UpdateUserRole)
	}

	adminProducts := api.Group("/products", middleware.AuthRequired(), middleware.RequireAdmin())
	{
		adminProducts.POST("", product.CreateProduct)
		adminProducts.PUT("/:id", product.UpdateProduct)
		adminProducts.DELETE("/:id", product.DeleteProduct)
		adminProducts.POST("/:id/image", product.UploadProductImage)
	}
}
