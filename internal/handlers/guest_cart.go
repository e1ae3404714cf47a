package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/official-fedorenko/ElectricalShop/internal/cart"
	"github.com/official-fedorenko/ElectricalShop/internal/models"
)

var guestService *cart.GuestService

// InitGuestCart branche le panier invité sur les handlers.
func InitGuestCart(svc *cart.GuestService) {
	guestService = svc
}

// guestID extrait l'identifiant de session invité du header.
func guestID(c *gin.Context) (string, bool) {
	id := c.GetHeader("X-Guest-ID")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Header X-Guest-ID manquant"})
		return "", false
	}
	return id, true
}

// guestPayload ajoute les totaux dérivés à la liste d'articles.
func guestPayload(items []models.LocalCartItem) gin.H {
	totalItems, totalAmount := cart.Totals(items)
	return gin.H{
		"items":       items,
		"totalItems":  totalItems,
		"totalAmount": totalAmount,
	}
}

// 🟢 GET /api/cart/guest
func GetGuestCart(c *gin.Context) {
	id, ok := guestID(c)
	if !ok {
		return
	}

	items, err := guestService.Get(c.Request.Context(), id)
	if err != nil {
		cartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": guestPayload(items)})
}

// 🟢 POST /api/cart/guest/items
func AddGuestCartItem(c *gin.Context) {
	id, ok := guestID(c)
	if !ok {
		return
	}

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

	items, err := guestService.AddItem(c.Request.Context(), id, input.ProductID, input.Quantity)
	if err != nil {
		cartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    guestPayload(items),
		"message": "Produit ajouté au panier",
	})
}

// 🟢 PUT /api/cart/guest/items/:productId
func UpdateGuestCartItem(c *gin.Context) {
	id, ok := guestID(c)
	if !ok {
		return
	}
	productID := c.Param("productId")

	var input struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Quantité invalide"})
		return
	}

	items, err := guestService.UpdateItemQuantity(c.Request.Context(), id, productID, input.Quantity)
	if err != nil {
		cartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    guestPayload(items),
		"message": "Quantité mise à jour",
	})
}

// ❌ DELETE /api/cart/guest/items/:productId
func RemoveGuestCartItem(c *gin.Context) {
	id, ok := guestID(c)
	if !ok {
		return
	}

	items, err := guestService.RemoveItem(c.Request.Context(), id, c.Param("productId"))
	if err != nil {
		cartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    guestPayload(items),
		"message": "Produit supprimé du panier",
	})
}

// 🧹 DELETE /api/cart/guest
func ClearGuestCart(c *gin.Context) {
	id, ok := guestID(c)
	if !ok {
		return
	}

	if err := guestService.Clear(c.Request.Context(), id); err != nil {
		cartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    guestPayload([]models.LocalCartItem{}),
		"message": "Panier vidé avec succès",
	})
}
