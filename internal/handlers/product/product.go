package product

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"github.com/official-fedorenko/ElectricalShop/internal/catalog"
	"github.com/official-fedorenko/ElectricalShop/internal/models"
	"github.com/official-fedorenko/ElectricalShop/internal/services"
)

var cat *catalog.Catalog

// Init branche le catalogue sur les handlers produits.
func Init(c *catalog.Catalog) {
	cat = c
}

// 🟢 GET /api/products
func GetAllProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := catalog.Filter{
		Category:    c.Query("category"),
		Brand:       c.Query("brand"),
		Search:      c.Query("search"),
		InStockOnly: c.Query("inStock") == "true",
		Page:        page,
		Limit:       limit,
	}

	products, total, err := cat.ListProducts(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// 🟢 GET /api/products/:id
func GetProduct(c *gin.Context) {
	p, err := cat.FindProduct(c.Request.Context(), c.Param("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}

// 🔍 GET /api/search?q=
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre 'q' manquant"})
		return
	}

	results, err := services.SearchProducts(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche produits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": results})
}

// ================== BACK-OFFICE ==================

// 🟢 POST /api/products (admin)
func CreateProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if p.Name == "" || p.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom obligatoire et prix positif requis"})
		return
	}

	p.ID = gocql.TimeUUID()
	now := time.Now()
	p.CreatedAt = &now
	p.UpdatedAt = &now

	if err := cat.SaveProduct(c.Request.Context(), &p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
		return
	}

	// 🔄 Indexation Elasticsearch
	go services.IndexProduct(p)

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": p})
}

// 🟢 PUT /api/products/:id (admin)
func UpdateProduct(c *gin.Context) {
	existing, err := cat.FindProduct(c.Request.Context(), c.Param("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit"})
		return
	}

	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// L'id et la date de création ne changent jamais
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	now := time.Now()
	p.UpdatedAt = &now

	if err := cat.SaveProduct(c.Request.Context(), &p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	go services.IndexProduct(p)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}

// ❌ DELETE /api/products/:id (admin)
func DeleteProduct(c *gin.Context) {
	productID := c.Param("id")

	if err := cat.DeleteProduct(c.Request.Context(), productID); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
		return
	}

	go services.RemoveProductFromIndex(productID)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Produit supprimé"})
}

// 🖼️ POST /api/products/:id/image (admin)
func UploadProductImage(c *gin.Context) {
	productID := c.Param("id")

	p, err := cat.FindProduct(c.Request.Context(), productID)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier 'image' manquant"})
		return
	}

	url, err := services.UploadProductImage(c.Request.Context(), productID, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image"})
		return
	}

	// La nouvelle image devient l'aperçu principal
	p.ImageURLs = append([]string{url}, p.ImageURLs...)
	now := time.Now()
	p.UpdatedAt = &now

	if err := cat.SaveProduct(c.Request.Context(), p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	go services.IndexProduct(*p)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": p, "image": url})
}
