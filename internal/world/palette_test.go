package world

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockPalette_Normalization(t *testing.T) {
	p, err := NewBlockPalette(
		PaletteEntry{ID: 1, Weight: 3},
		PaletteEntry{ID: 2, Weight: 1},
		PaletteEntry{ID: 3, Weight: 0},
	)
	require.NoError(t, err)

	entries := p.Entries()
	require.Len(t, entries, 3)
	assert.InDelta(t, 0.75, entries[0].Weight, 1e-12)
	assert.InDelta(t, 0.25, entries[1].Weight, 1e-12)
	assert.Equal(t, 0.0, entries[2].Weight)

	var total float64
	for _, e := range entries {
		total += e.Weight
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestBlockPalette_LoadedLayersNormalized(t *testing.T) {
	for _, layer := range Load().Layers() {
		var total float64
		for _, e := range layer.Palette.Entries() {
			assert.GreaterOrEqual(t, e.Weight, 0.0)
			total += e.Weight
		}
		assert.InDelta(t, 1.0, total, 1e-9, "Слой %q", layer.Name)
	}
}

func TestBlockPalette_ZeroTotal(t *testing.T) {
	p, err := NewBlockPalette(PaletteEntry{ID: 4, Weight: 0}, PaletteEntry{ID: 5, Weight: 0})
	require.NoError(t, err)

	// Нормализация пропущена, выбор вырождается в первый элемент
	assert.Equal(t, 0.0, p.Entries()[0].Weight)
	for _, draw := range []float64{0, 0.3, 0.999} {
		assert.Equal(t, BlockID(4), p.Select(draw))
	}
}

func TestBlockPalette_Errors(t *testing.T) {
	_, err := NewBlockPalette()
	assert.ErrorIs(t, err, ErrEmptyPalette)

	_, err = NewBlockPalette(PaletteEntry{ID: 1, Weight: 1}, PaletteEntry{ID: 2, Weight: -0.5})
	assert.ErrorIs(t, err, ErrNegativeWeight)

	assert.Panics(t, func() { MustBlockPalette() })
}

func TestBlockPalette_DoesNotAliasInput(t *testing.T) {
	in := []PaletteEntry{{ID: 1, Weight: 2}, {ID: 2, Weight: 2}}
	p, err := NewBlockPalette(in...)
	require.NoError(t, err)

	assert.Equal(t, 2.0, in[0].Weight)
	p.Entries()[0].Weight = 100
	assert.Equal(t, 0.5, p.Entries()[0].Weight)
}

func TestWeightedRandom_Bounds(t *testing.T) {
	list := []PaletteEntry{{ID: 7, Weight: 0}, {ID: 8, Weight: 2}, {ID: 9, Weight: 6}, {ID: 10, Weight: 0}}

	t.Run("draw 0: первый с положительным весом", func(t *testing.T) {
		assert.Equal(t, BlockID(8), weightedRandom(list, 0))
	})

	t.Run("draw чуть меньше 1: последний с положительным весом", func(t *testing.T) {
		assert.Equal(t, BlockID(9), weightedRandom(list, math.Nextafter(1, 0)))
	})

	t.Run("середина", func(t *testing.T) {
		assert.Equal(t, BlockID(8), weightedRandom(list, 0.2))
		assert.Equal(t, BlockID(9), weightedRandom(list, 0.25))
	})

	t.Run("сумма <= 0: всегда первый", func(t *testing.T) {
		zero := []PaletteEntry{{ID: 3, Weight: 0}, {ID: 4, Weight: 0}}
		negative := []PaletteEntry{{ID: 5, Weight: -1}, {ID: 6, Weight: 0.5}}
		for _, draw := range []float64{0, 0.5, math.Nextafter(1, 0)} {
			assert.Equal(t, BlockID(3), weightedRandom(zero, draw))
			assert.Equal(t, BlockID(5), weightedRandom(negative, draw))
		}
	})

	t.Run("draw == 1 выходит за конец", func(t *testing.T) {
		assert.Panics(t, func() {
			weightedRandom([]PaletteEntry{{ID: 1, Weight: 0.5}, {ID: 2, Weight: 0.5}}, 1)
		})
	})
}
