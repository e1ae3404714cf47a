package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/official-fedorenko/ElectricalShop/internal/models"
)

// TestMemoryStore_LoadMissing vérifie le contrat (nil, nil) quand le panier n'existe pas.
func TestMemoryStore_LoadMissing(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	c, err := store.Load(context.Background(), "personne")
	require.NoError(t, err)
	assert.Nil(t, c)
}

// TestMemoryStore_NoAliasing vérifie que l'état interne n'est jamais partagé avec l'appelant.
func TestMemoryStore_NoAliasing(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	original := &models.Cart{
		ID:     "c1",
		UserID: "user-1",
		Items:  []models.CartItem{{ProductID: "p1", Quantity: 2, Price: 10}},
	}
	require.NoError(t, store.Save(ctx, "user-1", original))

	// Mutation du panier sauvegardé côté appelant
	original.Items[0].Quantity = 99

	loaded, err := store.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Items[0].Quantity, "Save doit copier, pas référencer")

	// Mutation du panier chargé
	loaded.Items[0].Quantity = 42
	reloaded, err := store.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Items[0].Quantity, "Load doit renvoyer une copie")
}

// TestMemoryLocalStore_RoundTrip vérifie lecture/écriture/vidage de la liste invité.
func TestMemoryLocalStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemoryLocalStore()
	ctx := context.Background()

	items := []models.LocalCartItem{{ProductID: "p1", Quantity: 1, Price: 5}}
	require.NoError(t, store.Set(ctx, "guest-1", items))

	got, err := store.Get(ctx, "guest-1")
	require.NoError(t, err)
	assert.Equal(t, items, got)

	// La liste renvoyée est une copie
	got[0].Quantity = 99
	again, err := store.Get(ctx, "guest-1")
	require.NoError(t, err)
	assert.Equal(t, 1, again[0].Quantity)

	require.NoError(t, store.Clear(ctx, "guest-1"))
	got, err = store.Get(ctx, "guest-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}
