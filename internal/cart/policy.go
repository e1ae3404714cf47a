package cart

// MaxItemQuantity est le plafond de quantité pour une même ligne de panier.
const MaxItemQuantity = 5

// addQuantity applique le chemin additif : current est la quantité déjà
// présente (0 si la ligne n'existe pas), delta la quantité demandée.
// Un dépassement du plafond est refusé, jamais tronqué : l'utilisateur
// doit savoir que sa demande n'a pas été honorée.
func addQuantity(current, delta int) (int, error) {
	if delta < 1 {
		return 0, ErrInvalidQuantity
	}
	next := current + delta
	if next > MaxItemQuantity {
		return 0, ErrQuantityCapExceeded
	}
	return next, nil
}

// checkQuantity applique le chemin absolu : la quantité cible doit être
// dans [1, MaxItemQuantity]. Mettre une ligne à zéro n'existe pas, la
// suppression est une opération distincte.
func checkQuantity(quantity int) error {
	if quantity < 1 || quantity > MaxItemQuantity {
		return ErrInvalidQuantity
	}
	return nil
}
