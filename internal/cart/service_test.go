package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/official-fedorenko/ElectricalShop/internal/catalog"
	"github.com/official-fedorenko/ElectricalShop/internal/models"
)

//
// -----------------------------------------------------------------------------
// Doubles de test
// -----------------------------------------------------------------------------

// fakeCatalog sert les produits depuis une map, comme le mode démo en mémoire.
type fakeCatalog struct {
	products map[string]models.Product
}

func (f *fakeCatalog) FindProduct(_ context.Context, productID string) (*models.Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &p, nil
}

// failingStore fait échouer le prochain Save pour tester la propagation
// des échecs de persistance.
type failingStore struct {
	*MemoryStore
	failNextSave bool
}

func (s *failingStore) Save(ctx context.Context, ownerID string, c *models.Cart) error {
	if s.failNextSave {
		s.failNextSave = false
		return errors.New("redis injoignable")
	}
	return s.MemoryStore.Save(ctx, ownerID, c)
}

func testProduct(id, name string, price float64, inStock bool) models.Product {
	return models.Product{
		Name:      name,
		Price:     price,
		InStock:   inStock,
		ImageURLs: []string{"https://img.example/" + id + ".jpg"},
	}
}

func newTestService() (*Service, *fakeCatalog, *MemoryStore) {
	finder := &fakeCatalog{products: map[string]models.Product{
		"p1": testProduct("p1", "Smartphone Nova", 599.99, true),
		"p2": testProduct("p2", "Casque Pulse", 89.90, false), // hors stock
		"p3": testProduct("p3", "Clavier Volt", 45.50, true),
		"p4": testProduct("p4", "Souris Arc", 25.00, true),
	}}
	store := NewMemoryStore()
	return NewService(store, finder), finder, store
}

// assertInvariants vérifie les invariants que toute mutation doit préserver.
func assertInvariants(t *testing.T, c *models.Cart) {
	t.Helper()

	totalItems, totalAmount := Totals(c.Items)
	assert.Equal(t, totalItems, c.TotalItems, "totalItems doit être dérivé des lignes")
	assert.Equal(t, totalAmount, c.TotalAmount, "totalAmount doit être dérivé des lignes")

	seen := make(map[string]bool)
	for _, item := range c.Items {
		assert.GreaterOrEqual(t, item.Quantity, 1)
		assert.LessOrEqual(t, item.Quantity, MaxItemQuantity)
		assert.False(t, seen[item.ProductID], "productId dupliqué: %s", item.ProductID)
		seen[item.ProductID] = true
	}
}

//
// -----------------------------------------------------------------------------
// Get
// -----------------------------------------------------------------------------

// TestGet_CreatesEmptyCartLazily vérifie la création paresseuse et persistée au premier accès.
func TestGet_CreatesEmptyCartLazily(t *testing.T) {
	t.Parallel()

	svc, _, store := newTestService()
	ctx := context.Background()

	c, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "user-1", c.UserID)
	assert.NotEmpty(t, c.ID)
	assert.Empty(t, c.Items)
	assert.Equal(t, 0, c.TotalItems)
	assert.Equal(t, 0.0, c.TotalAmount)

	// Le panier vide a bien été persisté (side effect du premier accès)
	persisted, err := store.Load(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, c.ID, persisted.ID)

	// Un second accès renvoie le même enregistrement, pas un doublon
	again, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, c.ID, again.ID)
}

//
// -----------------------------------------------------------------------------
// AddItem
// -----------------------------------------------------------------------------

// TestAddItem_NewLine vérifie l'insertion d'une ligne avec instantané produit.
func TestAddItem_NewLine(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService()
	ctx := context.Background()

	c, err := svc.AddItem(ctx, "user-1", "p1", 2)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)

	item := c.Items[0]
	assert.Equal(t, "p1", item.ProductID)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 599.99, item.Price)
	assert.Equal(t, "Smartphone Nova", item.Name)
	assert.Equal(t, "https://img.example/p1.jpg", item.Image)
	assertInvariants(t, c)
}

// TestAddItem_MergesQuantities vérifie l'addition des quantités sur une ligne existante.
func TestAddItem_MergesQuantities(t *testing.T) {
	t.Parallel()

	svc, finder, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", "p1", 2)
	require.NoError(t, err)

	// Le prix du produit change entre les deux ajouts
	p := finder.products["p1"]
	p.Price = 549.00
	finder.products["p1"] = p

	c, err := svc.AddItem(ctx, "user-1", "p1", 2)
	require.NoError(t, err)
	require.Len(t, c.Items, 1, "pas de ligne dupliquée pour le même produit")
	assert.Equal(t, 4, c.Items[0].Quantity)
	assert.Equal(t, 549.00, c.Items[0].Price, "l'instantané prix doit être rafraîchi")
	assertInvariants(t, c)
}

// TestAddItem_CapRejectedWithoutMutation vérifie le refus net au-delà du plafond.
func TestAddItem_CapRejectedWithoutMutation(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService()
	ctx := context.Background()

	c, err := svc.AddItem(ctx, "user-1", "p1", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Items[0].Quantity)

	_, err = svc.AddItem(ctx, "user-1", "p1", 1)
	assert.ErrorIs(t, err, ErrQuantityCapExceeded)

	// La quantité n'a pas bougé
	c, err = svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assertInvariants(t, c)
}

// TestAddItem_ProductErrors vérifie les erreurs produit introuvable / hors stock.
func TestAddItem_ProductErrors(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", "inconnu", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = svc.AddItem(ctx, "user-1", "p2", 1)
	assert.ErrorIs(t, err, ErrProductUnavailable)

	// Aucune mutation partielle
	c, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

//
// -----------------------------------------------------------------------------
// UpdateItemQuantity
// -----------------------------------------------------------------------------

// TestUpdateItemQuantity_RoundTrip vérifie ajout puis mise à jour absolue.
func TestUpdateItemQuantity_RoundTrip(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", "p1", 2)
	require.NoError(t, err)

	c, err := svc.UpdateItemQuantity(ctx, "user-1", "p1", 4)
	require.NoError(t, err)

	c, err = svc.Get(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 4, c.Items[0].Quantity)
	assert.Equal(t, "Smartphone Nova", c.Items[0].Name)
	assertInvariants(t, c)
}

// TestUpdateItemQuantity_Errors vérifie quantités hors bornes et ligne absente.
func TestUpdateItemQuantity_Errors(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.UpdateItemQuantity(ctx, "user-1", "p1", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.UpdateItemQuantity(ctx, "user-1", "p1", 6)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.UpdateItemQuantity(ctx, "user-1", "p1", 3)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

//
// -----------------------------------------------------------------------------
// RemoveItem / Clear
// -----------------------------------------------------------------------------

// TestRemoveItem_Idempotent vérifie que la double suppression est un no-op.
func TestRemoveItem_Idempotent(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", "p1", 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "user-1", "p3", 1)
	require.NoError(t, err)

	first, err := svc.RemoveItem(ctx, "user-1", "p1")
	require.NoError(t, err)
	require.Len(t, first.Items, 1)
	assert.Equal(t, "p3", first.Items[0].ProductID)
	assertInvariants(t, first)

	second, err := svc.RemoveItem(ctx, "user-1", "p1")
	require.NoError(t, err)
	assert.Equal(t, first.Items, second.Items)
	assert.Equal(t, first.TotalItems, second.TotalItems)
	assert.Equal(t, first.TotalAmount, second.TotalAmount)
}

// TestClear vérifie que clear vide les lignes mais conserve l'enregistrement.
func TestClear(t *testing.T) {
	t.Parallel()

	svc, _, store := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", "p1", 3)
	require.NoError(t, err)

	c, err := svc.Clear(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
	assert.Equal(t, 0, c.TotalItems)
	assert.Equal(t, 0.0, c.TotalAmount)

	// L'enregistrement existe toujours, vide
	persisted, err := store.Load(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Empty(t, persisted.Items)
}

//
// -----------------------------------------------------------------------------
// Sync
// -----------------------------------------------------------------------------

// TestSync_AdditiveSuccess vérifie la fusion simple dans un panier vide.
func TestSync_AdditiveSuccess(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService()
	ctx := context.Background()

	local := []models.LocalCartItem{
		{ProductID: "p3", Quantity: 2, Price: 40.00, Name: "vieux nom"},
		{ProductID: "p4", Quantity: 1, Price: 20.00},
	}

	c, skipped, err := svc.Sync(ctx, "user-1", local)
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	require.Len(t, c.Items, 2)

	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, 45.50, c.Items[0].Price, "l'instantané doit venir du catalogue, pas du panier local")
	assert.Equal(t, "Clavier Volt", c.Items[0].Name)
	assert.Equal(t, 1, c.Items[1].Quantity)
	assertInvariants(t, c)
}

// TestSync_LenientSkips vérifie le skip silencieux : plafond dépassé et produit hors stock.
func TestSync_LenientSkips(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService()
	ctx := context.Background()

	// Panier serveur : p1 à 3 exemplaires
	_, err := svc.AddItem(ctx, "user-1", "p1", 3)
	require.NoError(t, err)

	local := []models.LocalCartItem{
		{ProductID: "p1", Quantity: 4}, // 3+4 > 5 → ignoré, ligne intacte
		{ProductID: "p2", Quantity: 1}, // hors stock → ignoré
	}

	c, skipped, err := svc.Sync(ctx, "user-1", local)
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "p1", c.Items[0].ProductID)
	assert.Equal(t, 3, c.Items[0].Quantity, "la ligne serveur ne doit pas être tronquée")
	assertInvariants(t, c)
}

// TestSync_SkipsUnknownAndOversizedNewLines vérifie les autres cas ignorés.
func TestSync_SkipsUnknownAndOversizedNewLines(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService()
	ctx := context.Background()

	local := []models.LocalCartItem{
		{ProductID: "fantome", Quantity: 1}, // produit supprimé du catalogue
		{ProductID: "p3", Quantity: 7},      // nouvelle ligne au-dessus du plafond
		{ProductID: "p4", Quantity: 0},      // quantité invalide
		{ProductID: "p1", Quantity: 2},      // valide
	}

	c, skipped, err := svc.Sync(ctx, "user-1", local)
	require.NoError(t, err)
	assert.Equal(t, 3, skipped)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "p1", c.Items[0].ProductID)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assertInvariants(t, c)
}

// TestSync_MergeUnderCap vérifie l'addition serveur+local quand la somme tient sous le plafond.
func TestSync_MergeUnderCap(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", "p1", 2)
	require.NoError(t, err)

	c, skipped, err := svc.Sync(ctx, "user-1", []models.LocalCartItem{{ProductID: "p1", Quantity: 3}})
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assertInvariants(t, c)
}

//
// -----------------------------------------------------------------------------
// Échecs de persistance
// -----------------------------------------------------------------------------

// TestPersistenceFailure_LeavesStateUntouched vérifie qu'un Save raté ne corrompt rien.
func TestPersistenceFailure_LeavesStateUntouched(t *testing.T) {
	t.Parallel()

	finder := &fakeCatalog{products: map[string]models.Product{
		"p1": testProduct("p1", "Smartphone Nova", 599.99, true),
	}}
	store := &failingStore{MemoryStore: NewMemoryStore()}
	svc := NewService(store, finder)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", "p1", 2)
	require.NoError(t, err)

	store.failNextSave = true
	_, err = svc.AddItem(ctx, "user-1", "p1", 1)
	require.Error(t, err)

	// L'état précédemment persisté est intact
	c, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
}
