package cart

import (
	"errors"
	"fmt"
)

// Erreurs typées du moteur de panier. Les handlers les traduisent en
// codes HTTP via errors.Is ; tout le reste est une erreur de persistance.
var (
	ErrProductNotFound    = errors.New("produit introuvable")
	ErrProductUnavailable = errors.New("produit non disponible en stock")
	ErrItemNotFound       = errors.New("article introuvable dans le panier")

	// Chemin additif (ajout) : la somme dépasserait le plafond.
	ErrQuantityCapExceeded = fmt.Errorf("quantité maximale par article : %d", MaxItemQuantity)

	// Chemin absolu (mise à jour) : quantité hors bornes.
	ErrInvalidQuantity = fmt.Errorf("la quantité doit être comprise entre 1 et %d", MaxItemQuantity)
)
