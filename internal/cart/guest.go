package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/official-fedorenko/ElectricalShop/internal/catalog"
	"github.com/official-fedorenko/ElectricalShop/internal/models"
)

// GuestService applique au panier invité exactement la même politique de
// quantités que le panier serveur, sur une liste ordonnée persistée en
// bloc. L'état appartient à la session invité ; il est jeté après la
// fusion au login (ou à l'expiration de la clé).
type GuestService struct {
	store   LocalStore
	catalog ProductFinder
}

func NewGuestService(store LocalStore, finder ProductFinder) *GuestService {
	return &GuestService{store: store, catalog: finder}
}

func (g *GuestService) Get(ctx context.Context, guestID string) ([]models.LocalCartItem, error) {
	items, err := g.store.Get(ctx, guestID)
	if err != nil {
		return nil, fmt.Errorf("lecture du panier invité: %w", err)
	}
	return items, nil
}

// AddItem ajoute un produit au panier invité, chemin additif sous plafond.
func (g *GuestService) AddItem(ctx context.Context, guestID, productID string, quantity int) ([]models.LocalCartItem, error) {
	product, err := g.lookupProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	items, err := g.Get(ctx, guestID)
	if err != nil {
		return nil, err
	}

	idx := findItem(items, productID)
	current := 0
	if idx >= 0 {
		current = items[idx].Quantity
	}

	newQuantity, err := addQuantity(current, quantity)
	if err != nil {
		return nil, err
	}

	if idx >= 0 {
		items[idx].Quantity = newQuantity
		applySnapshot(&items[idx], product)
	} else {
		item := models.LocalCartItem{ProductID: productID, Quantity: newQuantity}
		applySnapshot(&item, product)
		items = append(items, item)
	}

	return g.persist(ctx, guestID, items)
}

// UpdateItemQuantity fixe la quantité absolue d'une ligne existante.
func (g *GuestService) UpdateItemQuantity(ctx context.Context, guestID, productID string, quantity int) ([]models.LocalCartItem, error) {
	if err := checkQuantity(quantity); err != nil {
		return nil, err
	}

	items, err := g.Get(ctx, guestID)
	if err != nil {
		return nil, err
	}

	idx := findItem(items, productID)
	if idx < 0 {
		return nil, ErrItemNotFound
	}

	items[idx].Quantity = quantity
	return g.persist(ctx, guestID, items)
}

// RemoveItem retire une ligne, sans erreur si elle est absente.
func (g *GuestService) RemoveItem(ctx context.Context, guestID, productID string) ([]models.LocalCartItem, error) {
	items, err := g.Get(ctx, guestID)
	if err != nil {
		return nil, err
	}

	filtered := items[:0:0]
	for _, item := range items {
		if item.ProductID != productID {
			filtered = append(filtered, item)
		}
	}

	return g.persist(ctx, guestID, filtered)
}

// Clear jette la liste entière.
func (g *GuestService) Clear(ctx context.Context, guestID string) error {
	if err := g.store.Clear(ctx, guestID); err != nil {
		return fmt.Errorf("vidage du panier invité: %w", err)
	}
	return nil
}

func (g *GuestService) persist(ctx context.Context, guestID string, items []models.LocalCartItem) ([]models.LocalCartItem, error) {
	if items == nil {
		items = []models.LocalCartItem{}
	}
	if err := g.store.Set(ctx, guestID, items); err != nil {
		return nil, fmt.Errorf("sauvegarde du panier invité: %w", err)
	}
	return items, nil
}

func (g *GuestService) lookupProduct(ctx context.Context, productID string) (*models.Product, error) {
	product, err := g.catalog.FindProduct(ctx, productID)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lecture du catalogue: %w", err)
	}
	if !product.InStock {
		return nil, ErrProductUnavailable
	}
	return product, nil
}
