package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/official-fedorenko/ElectricalShop/internal/cart"
	"github.com/official-fedorenko/ElectricalShop/internal/models"
)

var cartService *cart.Service

// InitCart branche le moteur de panier sur les handlers (appelé au démarrage).
func InitCart(svc *cart.Service) {
	cartService = svc
}

// cartError traduit les erreurs typées du moteur en réponse HTTP.
func cartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrProductNotFound), errors.Is(err, cart.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, cart.ErrProductUnavailable),
		errors.Is(err, cart.ErrQuantityCapExceeded),
		errors.Is(err, cart.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur interne du panier"})
	}
}

// 🟢 GET /api/cart
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")

	result, err := cartService.Get(c.Request.Context(), userID)
	if err != nil {
		cartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// 🟢 POST /api/cart/items
func AddCartItem(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Données invalides"})
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	result, err := cartService.AddItem(c.Request.Context(), userID, input.ProductID, input.Quantity)
	if err != nil {
		cartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
		"message": "Produit ajouté au panier",
	})
}

// 🟢 PUT /api/cart/items/:productId
func UpdateCartItem(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("productId")

	var input struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Quantité invalide"})
		return
	}

	result, err := cartService.UpdateItemQuantity(c.Request.Context(), userID, productID, input.Quantity)
	if err != nil {
		cartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
		"message": "Quantité mise à jour",
	})
}

// ❌ DELETE /api/cart/items/:productId
func RemoveCartItem(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("productId")

	result, err := cartService.RemoveItem(c.Request.Context(), userID, productID)
	if err != nil {
		cartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
		"message": "Produit supprimé du panier",
	})
}

// 🧹 DELETE /api/cart
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")

	result, err := cartService.Clear(c.Request.Context(), userID)
	if err != nil {
		cartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
		"message": "Panier vidé avec succès",
	})
}

// 🔄 POST /api/cart/sync — fusion du panier invité au login.
// Les articles invalides sont ignorés un par un, jamais fatals ; le client
// ne vide son panier local qu'après une réponse positive.
func SyncCart(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		LocalCartItems []models.LocalCartItem `json:"localCartItems"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "localCartItems doit être un tableau"})
		return
	}

	result, skipped, err := cartService.Sync(c.Request.Context(), userID, input.LocalCartItems)
	if err != nil {
		cartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"data":         result,
		"skippedItems": skipped,
		"message":      "Panier synchronisé",
	})
}
