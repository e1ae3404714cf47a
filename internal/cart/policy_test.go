package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAddQuantity_WithinCap vérifie le chemin additif sous le plafond.
func TestAddQuantity_WithinCap(t *testing.T) {
	t.Parallel()

	got, err := addQuantity(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = addQuantity(2, 3)
	require.NoError(t, err)
	assert.Equal(t, MaxItemQuantity, got)
}

// TestAddQuantity_CapExceeded vérifie le refus (jamais de troncature) au-delà du plafond.
func TestAddQuantity_CapExceeded(t *testing.T) {
	t.Parallel()

	_, err := addQuantity(5, 1)
	assert.ErrorIs(t, err, ErrQuantityCapExceeded)

	_, err = addQuantity(0, 6)
	assert.ErrorIs(t, err, ErrQuantityCapExceeded)

	_, err = addQuantity(3, 4)
	assert.ErrorIs(t, err, ErrQuantityCapExceeded)
}

// TestAddQuantity_InvalidDelta vérifie que les deltas nuls ou négatifs sont refusés.
func TestAddQuantity_InvalidDelta(t *testing.T) {
	t.Parallel()

	_, err := addQuantity(2, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = addQuantity(2, -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

// TestCheckQuantity vérifie les bornes du chemin absolu.
func TestCheckQuantity(t *testing.T) {
	t.Parallel()

	for q := 1; q <= MaxItemQuantity; q++ {
		assert.NoError(t, checkQuantity(q))
	}

	assert.ErrorIs(t, checkQuantity(0), ErrInvalidQuantity)
	assert.ErrorIs(t, checkQuantity(-3), ErrInvalidQuantity)
	assert.ErrorIs(t, checkQuantity(MaxItemQuantity+1), ErrInvalidQuantity)
}
