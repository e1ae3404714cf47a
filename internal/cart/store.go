package cart

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/official-fedorenko/ElectricalShop/internal/database"
	"github.com/official-fedorenko/ElectricalShop/internal/models"
)

// Store est la persistance des paniers serveur, un enregistrement par
// utilisateur. Load renvoie (nil, nil) quand aucun panier n'existe encore ;
// Save écrit toujours l'instantané complet, jamais un delta.
type Store interface {
	Load(ctx context.Context, ownerID string) (*models.Cart, error)
	Save(ctx context.Context, ownerID string, cart *models.Cart) error
}

// LocalStore est la persistance du panier invité : la liste se lit et
// s'écrit en bloc, comme le localStorage côté client qu'elle remplace.
type LocalStore interface {
	Get(ctx context.Context, guestID string) ([]models.LocalCartItem, error)
	Set(ctx context.Context, guestID string, items []models.LocalCartItem) error
	Clear(ctx context.Context, guestID string) error
}

// NewStore choisit le backend une seule fois au démarrage (CART_BACKEND=
// "memory" pour la version en mémoire, Redis sinon). Pas de bascule
// silencieuse en cours de route : la sémantique d'échec reste prévisible.
func NewStore() Store {
	if strings.EqualFold(os.Getenv("CART_BACKEND"), "memory") {
		log.Println("🛒 Paniers stockés en mémoire (CART_BACKEND=memory)")
		return NewMemoryStore()
	}
	return NewRedisStore(database.Redis)
}

// NewLocalStore choisit le backend du panier invité selon la même règle.
func NewLocalStore() LocalStore {
	if strings.EqualFold(os.Getenv("CART_BACKEND"), "memory") {
		return NewMemoryLocalStore()
	}
	return NewRedisLocalStore(database.Redis)
}
