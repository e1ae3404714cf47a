package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/official-fedorenko/ElectricalShop/internal/cart"
	"github.com/official-fedorenko/ElectricalShop/internal/catalog"
	"github.com/official-fedorenko/ElectricalShop/internal/config"
	"github.com/official-fedorenko/ElectricalShop/internal/database"
	"github.com/official-fedorenko/ElectricalShop/internal/handlers"
	"github.com/official-fedorenko/ElectricalShop/internal/handlers/product"
	"github.com/official-fedorenko/ElectricalShop/internal/routes"
)

func main() {
	config.Load()

	database.ConnectDatabases()

	// ✅ Prepared statements pour le chemin chaud de l'authentification
	database.InitPreparedStatements()

	// Le backend des paniers est choisi une fois pour toutes au démarrage
	// (Redis par défaut, mémoire avec CART_BACKEND=memory)
	cat := catalog.New()
	cartService := cart.NewService(cart.NewStore(), cat)
	guestService := cart.NewGuestService(cart.NewLocalStore(), cat)

	handlers.InitCart(cartService)
	handlers.InitGuestCart(guestService)
	product.Init(cat)

	r := gin.Default()
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur ElectricalShop lancé sur le port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Erreur démarrage serveur:", err)
	}
}
