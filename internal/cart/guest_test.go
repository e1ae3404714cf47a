package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/official-fedorenko/ElectricalShop/internal/models"
)

func newTestGuestService() *GuestService {
	finder := &fakeCatalog{products: map[string]models.Product{
		"p1": testProduct("p1", "Smartphone Nova", 599.99, true),
		"p2": testProduct("p2", "Casque Pulse", 89.90, false),
	}}
	return NewGuestService(NewMemoryLocalStore(), finder)
}

// TestGuest_GetEmpty vérifie qu'un invité inconnu obtient une liste vide, pas une erreur.
func TestGuest_GetEmpty(t *testing.T) {
	t.Parallel()

	g := newTestGuestService()
	items, err := g.Get(context.Background(), "guest-1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

// TestGuest_AddUpdateRemove vérifie le cycle complet du panier invité.
func TestGuest_AddUpdateRemove(t *testing.T) {
	t.Parallel()

	g := newTestGuestService()
	ctx := context.Background()

	items, err := g.AddItem(ctx, "guest-1", "p1", 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "Smartphone Nova", items[0].Name)

	// Même politique de plafond que le panier serveur
	_, err = g.AddItem(ctx, "guest-1", "p1", 4)
	assert.ErrorIs(t, err, ErrQuantityCapExceeded)

	items, err = g.UpdateItemQuantity(ctx, "guest-1", "p1", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, items[0].Quantity)

	_, err = g.UpdateItemQuantity(ctx, "guest-1", "absent", 2)
	assert.ErrorIs(t, err, ErrItemNotFound)

	// Suppression idempotente
	items, err = g.RemoveItem(ctx, "guest-1", "p1")
	require.NoError(t, err)
	assert.Empty(t, items)
	items, err = g.RemoveItem(ctx, "guest-1", "p1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

// TestGuest_ProductChecks vérifie que l'invité subit les mêmes contrôles catalogue.
func TestGuest_ProductChecks(t *testing.T) {
	t.Parallel()

	g := newTestGuestService()
	ctx := context.Background()

	_, err := g.AddItem(ctx, "guest-1", "inconnu", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = g.AddItem(ctx, "guest-1", "p2", 1)
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

// TestGuest_Clear vérifie le vidage complet de la session invité.
func TestGuest_Clear(t *testing.T) {
	t.Parallel()

	g := newTestGuestService()
	ctx := context.Background()

	_, err := g.AddItem(ctx, "guest-1", "p1", 3)
	require.NoError(t, err)

	require.NoError(t, g.Clear(ctx, "guest-1"))

	items, err := g.Get(ctx, "guest-1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

// TestGuest_IsolatedSessions vérifie que deux invités ne partagent rien.
func TestGuest_IsolatedSessions(t *testing.T) {
	t.Parallel()

	g := newTestGuestService()
	ctx := context.Background()

	_, err := g.AddItem(ctx, "guest-1", "p1", 1)
	require.NoError(t, err)

	items, err := g.Get(ctx, "guest-2")
	require.NoError(t, err)
	assert.Empty(t, items)
}
