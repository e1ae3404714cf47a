package cart

import (
	"context"
	"sync"

	"github.com/official-fedorenko/ElectricalShop/internal/models"
)

// MemoryStore garde les paniers dans une map protégée par mutex.
// Utilisé en développement et dans les tests ; chaque Load/Save passe
// par une copie profonde pour ne jamais exposer l'état interne.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]*models.Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]*models.Cart)}
}

func (s *MemoryStore) Load(_ context.Context, ownerID string) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[ownerID]
	if !ok {
		return nil, nil
	}
	return cart.Clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, ownerID string, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[ownerID] = cart.Clone()
	return nil
}

// MemoryLocalStore est l'équivalent en mémoire du panier invité.
type MemoryLocalStore struct {
	mu    sync.RWMutex
	items map[string][]models.LocalCartItem
}

func NewMemoryLocalStore() *MemoryLocalStore {
	return &MemoryLocalStore{items: make(map[string][]models.LocalCartItem)}
}

func (s *MemoryLocalStore) Get(_ context.Context, guestID string) ([]models.LocalCartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.LocalCartItem{}, s.items[guestID]...), nil
}

func (s *MemoryLocalStore) Set(_ context.Context, guestID string, items []models.LocalCartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[guestID] = append([]models.LocalCartItem(nil), items...)
	return nil
}

func (s *MemoryLocalStore) Clear(_ context.Context, guestID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, guestID)
	return nil
}
