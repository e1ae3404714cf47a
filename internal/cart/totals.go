package cart

import (
	"github.com/shopspring/decimal"

	"github.com/official-fedorenko/ElectricalShop/internal/models"
)

// Totals recalcule le nombre d'articles et le montant total à partir des
// lignes. L'accumulation passe par decimal pour éviter toute dérive
// flottante sur les montants ; le résultat est arrondi au centime.
func Totals(items []models.CartItem) (totalItems int, totalAmount float64) {
	amount := decimal.Zero
	for _, item := range items {
		totalItems += item.Quantity
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		amount = amount.Add(line)
	}
	totalAmount, _ = amount.Round(2).Float64()
	return totalItems, totalAmount
}

// refreshTotals est la dernière étape obligatoire avant chaque persist :
// aucun panier ne doit être sauvegardé avec des totaux non dérivés de ses
// lignes courantes.
func refreshTotals(c *models.Cart) {
	c.TotalItems, c.TotalAmount = Totals(c.Items)
}
