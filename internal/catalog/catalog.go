package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"github.com/official-fedorenko/ElectricalShop/internal/database"
	"github.com/official-fedorenko/ElectricalShop/internal/models"
)

// ErrNotFound signale un identifiant produit inconnu du catalogue.
var ErrNotFound = errors.New("produit introuvable dans le catalogue")

const (
	ProductCacheTTL = 10 * time.Minute
	listCacheKey    = "products:all"

	selectProductColumns = `product_id, name, description, price, original_price, category, brand, image_urls, in_stock, stock, rating, reviews, tags, created_at, updated_at`
)

// Catalog est le collaborateur catalogue : lectures ScyllaDB avec cache
// Redis en read-through. Le moteur de panier ne voit que FindProduct.
type Catalog struct{}

func New() *Catalog {
	return &Catalog{}
}

// FindProduct récupère un produit par id, depuis Redis si possible.
func (c *Catalog) FindProduct(ctx context.Context, productID string) (*models.Product, error) {
	cacheKey := "product:" + productID

	// 1. Essayer le cache Redis
	if data, err := database.Redis.Get(ctx, cacheKey).Result(); err == nil && data != "" {
		var product models.Product
		if json.Unmarshal([]byte(data), &product) == nil {
			return &product, nil
		}
	}

	// 2. Récupérer depuis ScyllaDB
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, ErrNotFound
	}

	session, err := database.GetProductsSession()
	if err != nil {
		return nil, fmt.Errorf("connexion base de données: %w", err)
	}

	var product models.Product
	err = session.Query(`SELECT `+selectProductColumns+` FROM products WHERE product_id = ?`, gocql.UUID(pid)).
		WithContext(ctx).Scan(
		&product.ID, &product.Name, &product.Description, &product.Price,
		&product.OriginalPrice, &product.Category, &product.Brand, &product.ImageURLs,
		&product.InStock, &product.Stock, &product.Rating, &product.Reviews,
		&product.Tags, &product.CreatedAt, &product.UpdatedAt,
	)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lecture produit: %w", err)
	}

	// 3. Mettre en cache
	if data, err := json.Marshal(&product); err == nil {
		database.Redis.Set(ctx, cacheKey, data, ProductCacheTTL)
	}

	return &product, nil
}

// Filter décrit le filtrage/pagination de la liste produits.
type Filter struct {
	Category    string
	Brand       string
	Search      string
	InStockOnly bool
	Page        int
	Limit       int
}

// ListProducts scanne la table produits puis filtre et pagine en mémoire,
// comme le faisait la collection JSON du backend d'origine.
func (c *Catalog) ListProducts(ctx context.Context, filter Filter) ([]models.Product, int, error) {
	products, err := c.allProducts(ctx)
	if err != nil {
		return nil, 0, err
	}

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if filter.Category != "" && !strings.EqualFold(p.Category, filter.Category) {
			continue
		}
		if filter.Brand != "" && !strings.EqualFold(p.Brand, filter.Brand) {
			continue
		}
		if filter.InStockOnly && !p.InStock {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(p.Name), needle) &&
				!strings.Contains(strings.ToLower(p.Description), needle) {
				continue
			}
		}
		filtered = append(filtered, p)
	}

	total := len(filtered)

	// Pagination
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	start := (page - 1) * limit
	if start >= total {
		return []models.Product{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}

	return filtered[start:end], total, nil
}

// SaveProduct insère ou remplace un produit et invalide les caches.
func (c *Catalog) SaveProduct(ctx context.Context, p *models.Product) error {
	session, err := database.GetProductsSession()
	if err != nil {
		return fmt.Errorf("connexion base de données: %w", err)
	}

	query := `INSERT INTO products (` + selectProductColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if err := session.Query(query,
		p.ID, p.Name, p.Description, p.Price, p.OriginalPrice, p.Category, p.Brand,
		p.ImageURLs, p.InStock, p.Stock, p.Rating, p.Reviews, p.Tags, p.CreatedAt, p.UpdatedAt,
	).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("écriture produit: %w", err)
	}

	c.invalidate(ctx, p.ID.String())
	return nil
}

// DeleteProduct supprime un produit du catalogue.
func (c *Catalog) DeleteProduct(ctx context.Context, productID string) error {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return ErrNotFound
	}

	session, err := database.GetProductsSession()
	if err != nil {
		return fmt.Errorf("connexion base de données: %w", err)
	}

	if err := session.Query(`DELETE FROM products WHERE product_id = ?`, gocql.UUID(pid)).
		WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("suppression produit: %w", err)
	}

	c.invalidate(ctx, productID)
	return nil
}

func (c *Catalog) allProducts(ctx context.Context) ([]models.Product, error) {
	// 1. Essayer le cache de liste complète
	if data, err := database.Redis.Get(ctx, listCacheKey).Result(); err == nil && data != "" {
		var cached []models.Product
		if json.Unmarshal([]byte(data), &cached) == nil {
			return cached, nil
		}
	}

	session, err := database.GetProductsSession()
	if err != nil {
		return nil, fmt.Errorf("connexion base de données: %w", err)
	}

	iter := session.Query(`SELECT ` + selectProductColumns + ` FROM products`).WithContext(ctx).Iter()

	var products []models.Product
	var p models.Product
	for iter.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.OriginalPrice, &p.Category, &p.Brand,
		&p.ImageURLs, &p.InStock, &p.Stock, &p.Rating, &p.Reviews, &p.Tags, &p.CreatedAt, &p.UpdatedAt,
	) {
		products = append(products, p)
		p = models.Product{} // reset pour la prochaine itération
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("lecture produits: %w", err)
	}

	if data, err := json.Marshal(products); err == nil {
		database.Redis.Set(ctx, listCacheKey, data, 5*time.Minute)
	}

	return products, nil
}

func (c *Catalog) invalidate(ctx context.Context, productID string) {
	database.Redis.Del(ctx, "product:"+productID, listCacheKey)
}
