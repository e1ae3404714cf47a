package cart

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/official-fedorenko/ElectricalShop/internal/catalog"
	"github.com/official-fedorenko/ElectricalShop/internal/models"
)

// ProductFinder est la vue que le moteur de panier a sur le catalogue :
// une simple vérification d'existence et de disponibilité par accès,
// jamais d'écriture.
type ProductFinder interface {
	FindProduct(ctx context.Context, productID string) (*models.Product, error)
}

// Service est le moteur de panier serveur. Chaque opération suit le même
// schéma : charger l'instantané, le modifier, recalculer les totaux,
// persister l'instantané complet. La séquence est sérialisée par
// utilisateur via un mutex à clé pour éliminer les mises à jour perdues
// entre deux requêtes concurrentes du même compte.
type Service struct {
	store   Store
	catalog ProductFinder

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(store Store, finder ProductFinder) *Service {
	return &Service{
		store:   store,
		catalog: finder,
		locks:   make(map[string]*sync.Mutex),
	}
}

// ownerLock renvoie le mutex dédié à un utilisateur. Le verrou est local
// au processus : en multi-instances on retombe sur du last-write-wins.
func (s *Service) ownerLock(ownerID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[ownerID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[ownerID] = lock
	}
	return lock
}

// Get renvoie le panier courant, en le créant vide (et en le persistant)
// au premier accès.
func (s *Service) Get(ctx context.Context, ownerID string) (*models.Cart, error) {
	lock := s.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	return s.loadOrCreate(ctx, ownerID)
}

// AddItem ajoute quantity exemplaires d'un produit. Si une ligne existe
// déjà pour ce produit, les quantités s'additionnent sous le plafond ;
// le dépassement est refusé sans modifier le panier.
func (s *Service) AddItem(ctx context.Context, ownerID, productID string, quantity int) (*models.Cart, error) {
	lock := s.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	product, err := s.lookupProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.loadOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	idx := findItem(cart.Items, productID)
	current := 0
	if idx >= 0 {
		current = cart.Items[idx].Quantity
	}

	newQuantity, err := addQuantity(current, quantity)
	if err != nil {
		return nil, err
	}

	if idx >= 0 {
		cart.Items[idx].Quantity = newQuantity
		applySnapshot(&cart.Items[idx], product)
	} else {
		item := models.CartItem{ProductID: productID, Quantity: newQuantity}
		applySnapshot(&item, product)
		cart.Items = append(cart.Items, item)
	}

	return s.persist(ctx, ownerID, cart)
}

// UpdateItemQuantity fixe la quantité absolue d'une ligne existante.
func (s *Service) UpdateItemQuantity(ctx context.Context, ownerID, productID string, quantity int) (*models.Cart, error) {
	if err := checkQuantity(quantity); err != nil {
		return nil, err
	}

	lock := s.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.loadOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	idx := findItem(cart.Items, productID)
	if idx < 0 {
		return nil, ErrItemNotFound
	}

	cart.Items[idx].Quantity = quantity
	return s.persist(ctx, ownerID, cart)
}

// RemoveItem retire la ligne d'un produit. Idempotent : supprimer une
// ligne absente n'est pas une erreur.
func (s *Service) RemoveItem(ctx context.Context, ownerID, productID string) (*models.Cart, error) {
	lock := s.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.loadOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	filtered := cart.Items[:0:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			filtered = append(filtered, item)
		}
	}
	cart.Items = filtered

	return s.persist(ctx, ownerID, cart)
}

// Clear vide la liste d'articles mais conserve l'enregistrement du panier.
func (s *Service) Clear(ctx context.Context, ownerID string) (*models.Cart, error) {
	lock := s.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.loadOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	cart.Items = []models.CartItem{}
	return s.persist(ctx, ownerID, cart)
}

// Sync fusionne le panier local d'un invité dans le panier serveur, une
// seule fois au login. Chaque article est traité indépendamment, au mieux :
// produit inconnu, hors stock ou plafond dépassé → article ignoré (compté
// et journalisé, jamais fatal). Contrairement à AddItem, le dépassement de
// plafond n'est pas une erreur ici. Les totaux sont recalculés et le
// panier persisté une seule fois en fin de fusion ; seule l'écriture
// finale peut faire échouer l'appel. L'appelant ne vide le panier local
// qu'après une réponse positive.
func (s *Service) Sync(ctx context.Context, ownerID string, localItems []models.LocalCartItem) (*models.Cart, int, error) {
	lock := s.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.loadOrCreate(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}

	skipped := 0
	for _, local := range localItems {
		product, err := s.lookupProduct(ctx, local.ProductID)
		if err != nil {
			log.Printf("⚠️ Sync panier %s : article %s ignoré (%v)", ownerID, local.ProductID, err)
			skipped++
			continue
		}

		if local.Quantity < 1 {
			skipped++
			continue
		}

		idx := findItem(cart.Items, local.ProductID)
		if idx >= 0 {
			newQuantity := cart.Items[idx].Quantity + local.Quantity
			if newQuantity > MaxItemQuantity {
				// La ligne serveur reste telle quelle, pas de troncature.
				skipped++
				continue
			}
			cart.Items[idx].Quantity = newQuantity
			applySnapshot(&cart.Items[idx], product)
			continue
		}

		if local.Quantity > MaxItemQuantity {
			skipped++
			continue
		}
		item := models.CartItem{ProductID: local.ProductID, Quantity: local.Quantity}
		applySnapshot(&item, product)
		cart.Items = append(cart.Items, item)
	}

	merged, err := s.persist(ctx, ownerID, cart)
	if err != nil {
		return nil, 0, err
	}
	return merged, skipped, nil
}

// loadOrCreate charge le panier de l'utilisateur ou en crée un vide.
// La création passe par un Save immédiat : l'unicité repose sur la
// recherche avant création, sous le verrou par utilisateur.
func (s *Service) loadOrCreate(ctx context.Context, ownerID string) (*models.Cart, error) {
	cart, err := s.store.Load(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("lecture du panier: %w", err)
	}
	if cart != nil {
		if cart.Items == nil {
			cart.Items = []models.CartItem{}
		}
		return cart, nil
	}

	now := time.Now()
	cart = &models.Cart{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		Items:     []models.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Save(ctx, ownerID, cart); err != nil {
		return nil, fmt.Errorf("création du panier: %w", err)
	}
	return cart, nil
}

// persist recalcule les totaux puis sauvegarde l'instantané complet.
// Un échec d'écriture laisse l'état précédemment persisté intact.
func (s *Service) persist(ctx context.Context, ownerID string, cart *models.Cart) (*models.Cart, error) {
	refreshTotals(cart)
	cart.UpdatedAt = time.Now()
	if err := s.store.Save(ctx, ownerID, cart); err != nil {
		return nil, fmt.Errorf("sauvegarde du panier: %w", err)
	}
	return cart, nil
}

// lookupProduct vérifie existence et disponibilité auprès du catalogue.
func (s *Service) lookupProduct(ctx context.Context, productID string) (*models.Product, error) {
	product, err := s.catalog.FindProduct(ctx, productID)
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

// applySnapshot rafraîchit les champs dénormalisés de la ligne à partir
// du produit fraîchement relu.
func applySnapshot(item *models.CartItem, product *models.Product) {
	item.Price = product.Price
	item.Name = product.Name
	item.Image = product.PrimaryImage()
}

func findItem(items []models.CartItem, productID string) int {
	for i := range items {
		if items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
