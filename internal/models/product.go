package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Product struct {
	ID            gocql.UUID `json:"id" db:"product_id"`
	Name          string     `json:"name" db:"name"`
	Description   string     `json:"description" db:"description"`
	Price         float64    `json:"price" db:"price"`
	OriginalPrice float64    `json:"originalPrice,omitempty" db:"original_price"`
	Category      string     `json:"category" db:"category"`
	Brand         string     `json:"brand" db:"brand"`
	ImageURLs     []string   `json:"image_urls" db:"image_urls"`
	InStock       bool       `json:"inStock" db:"in_stock"`
	Stock         int        `json:"stock" db:"stock"`
	Rating        float64    `json:"rating" db:"rating"`
	Reviews       int        `json:"reviews" db:"reviews"`
	Tags          []string   `json:"tags" db:"tags"`
	CreatedAt     *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at" db:"updated_at"`
}

// PrimaryImage renvoie la première image pour l'aperçu panier.
func (p *Product) PrimaryImage() string {
	if len(p.ImageURLs) > 0 {
		return p.ImageURLs[0]
	}
	return ""
}
