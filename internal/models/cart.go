package models

import "time"

// Cart est le panier serveur d'un utilisateur authentifié.
// Un seul panier par utilisateur, créé à la demande au premier accès.
type Cart struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Items       []CartItem `json:"items"`
	TotalItems  int        `json:"totalItems"`
	TotalAmount float64    `json:"totalAmount"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CartItem est une ligne du panier. Prix, nom et image sont des
// instantanés du produit au moment de la dernière écriture, pas des
// références vivantes vers le catalogue.
type CartItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
}

// LocalCartItem a exactement la même forme qu'une ligne de panier serveur,
// mais vit dans le panier invité (non authentifié).
type LocalCartItem = CartItem

// Clone renvoie une copie profonde du panier. Les stores en mémoire
// s'en servent pour ne jamais exposer leur état interne.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Items = append([]CartItem(nil), c.Items...)
	return &cp
}
