package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/official-fedorenko/ElectricalShop/internal/models"
)

// TestTotals_Empty vérifie qu'une liste vide donne des totaux nuls.
func TestTotals_Empty(t *testing.T) {
	t.Parallel()

	totalItems, totalAmount := Totals(nil)
	assert.Equal(t, 0, totalItems)
	assert.Equal(t, 0.0, totalAmount)
}

// TestTotals_Sums vérifie totalItems = Σ quantités et totalAmount = Σ prix×quantité.
func TestTotals_Sums(t *testing.T) {
	t.Parallel()

	items := []models.CartItem{
		{ProductID: "p1", Quantity: 2, Price: 19.99},
		{ProductID: "p2", Quantity: 5, Price: 4.50},
		{ProductID: "p3", Quantity: 1, Price: 1299.00},
	}

	totalItems, totalAmount := Totals(items)
	assert.Equal(t, 8, totalItems)
	assert.Equal(t, 1361.48, totalAmount)
}

// TestTotals_NoFloatDrift vérifie l'absence de dérive flottante sur l'accumulation.
func TestTotals_NoFloatDrift(t *testing.T) {
	t.Parallel()

	// 0.1 + 0.2 en float64 vaut 0.30000000000000004 ; l'accumulation
	// décimale doit donner exactement 0.30.
	items := []models.CartItem{
		{ProductID: "p1", Quantity: 1, Price: 0.10},
		{ProductID: "p2", Quantity: 1, Price: 0.20},
	}

	_, totalAmount := Totals(items)
	assert.Equal(t, 0.3, totalAmount)

	// Accumulation répétée d'un centime
	many := make([]models.CartItem, 0, 100)
	for i := 0; i < 100; i++ {
		many = append(many, models.CartItem{ProductID: "p", Quantity: 1, Price: 0.01})
	}
	_, totalAmount = Totals(many)
	assert.Equal(t, 1.0, totalAmount)
}
