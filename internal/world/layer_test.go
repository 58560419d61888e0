package world

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLayer(name string, start, end float64, ids ...BlockID) Layer {
	entries := make([]PaletteEntry, len(ids))
	for i, id := range ids {
		entries[i] = PaletteEntry{ID: id, Weight: 1}
	}
	return Layer{Name: name, Start: start, End: end, Palette: MustBlockPalette(entries...)}
}

func TestLayer_ContainsInclusive(t *testing.T) {
	l := testLayer("l", 0, 200, 1)
	assert.True(t, l.Contains(0))
	assert.True(t, l.Contains(200))
	assert.True(t, l.Contains(100))
	assert.False(t, l.Contains(math.Nextafter(0, -1)))
	assert.False(t, l.Contains(math.Nextafter(200, 300)))

	open := testLayer("open", math.Inf(-1), 0, 1)
	assert.True(t, open.Contains(-1e300))
}

func TestDominance_BoundaryContinuity(t *testing.T) {
	surface := testLayer("surface", 0, 200, 1)
	crust := testLayer("crust", 50, 1100, 2)
	candidates := []Layer{surface, crust}

	// Уходя из surface через верхнюю границу, вес surface плавно стремится к нулю
	prev := math.Inf(1)
	for _, eps := range []float64{10, 1, 0.1, 0.01, 1e-4, 1e-8} {
		w, ok := dominance(candidates, 0, 200-eps)
		require.True(t, ok)
		assert.InDelta(t, eps, w, 1e-9)
		assert.Less(t, w, prev)
		prev = w
	}
	w, ok := dominance(candidates, 0, 200)
	require.True(t, ok)
	assert.Equal(t, 0.0, w, "На самой границе вес нулевой, без скачка")

	// Симметрично для crust у нижней границы
	for _, eps := range []float64{1, 1e-3, 1e-6} {
		w, ok := dominance(candidates, 1, 50+eps)
		require.True(t, ok)
		assert.InDelta(t, eps, w, 1e-9)
	}
}

func TestDominance_MinimumOverNeighbours(t *testing.T) {
	// Три слоя перекрываются в [60, 90]: для b ближайшая граница задаёт минимум
	a := testLayer("a", 0, 100, 1)
	b := testLayer("b", 50, 150, 2)
	c := testLayer("c", 80, 300, 3)
	candidates := []Layer{a, b, c}

	w, ok := dominance(candidates, 1, 85)
	require.True(t, ok)
	// a начинается раньше b: 85-50 = 35; c кончается позже b: 150-85 = 65
	assert.InDelta(t, 35.0, w, 1e-12)
}

func TestDominance_NestedUsesMidpoint(t *testing.T) {
	outer := testLayer("outer", 0, 100, 1)
	inner := testLayer("inner", 40, 60, 2)

	w, ok := dominance([]Layer{outer, inner}, 0, 45)
	require.True(t, ok)
	assert.InDelta(t, 5.0, w, 1e-12)
}

func TestDominance_Unconstrained(t *testing.T) {
	inf := math.Inf(1)
	a := testLayer("a", -inf, inf, 1)
	b := testLayer("b", -inf, inf, 2)

	_, ok := dominance([]Layer{a, b}, 0, 10)
	assert.False(t, ok, "Слой без ограничивающего соседа выпадает из смешивания")

	// Все кандидаты выпали, выбор из палитры первого
	for _, draw := range []float64{0, 0.5, 0.99} {
		assert.Equal(t, BlockID(1), blend([]Layer{a, b}, 10, draw))
	}
}

func TestSelectFromLayers_SingleCandidate(t *testing.T) {
	rules := Load()
	sand, _ := rules.BlockID(BlockSand)
	stone, _ := rules.BlockID(BlockStone)

	// 25 лежит строго внутри одного слоя surface
	for i := 0; i < 1000; i++ {
		draw := float64(i) / 1000
		id := rules.SelectBlock(25, draw)
		assert.Contains(t, []BlockID{sand, stone}, id)
	}
}

func TestSelectFromLayers_SharedBoundary(t *testing.T) {
	rules := Load()
	crust := rules.Layers()[2]

	// На границе 200 вес surface нулевой: выбор только из палитры crust
	for i := 0; i < 1000; i++ {
		id := rules.SelectBlock(200, float64(i)/1000)
		assert.True(t, crust.Palette.Contains(id), "Блок %d не из палитры crust", id)
	}
}

func TestSelectFromLayers_BlendUsesBothSides(t *testing.T) {
	surface := testLayer("surface", 0, 200, 1)
	crust := testLayer("crust", 50, 1100, 2)
	layers := []Layer{surface, crust}

	// В середине перекрытия оба слоя имеют ненулевой вес
	seen := map[BlockID]bool{}
	for i := 0; i < 100; i++ {
		seen[selectFromLayers(layers, 125, float64(i)/100)] = true
	}
	assert.True(t, seen[1])
	assert.True(t, seen[2])
}

func TestSelectFromLayers_Uncovered(t *testing.T) {
	assert.Panics(t, func() {
		selectFromLayers([]Layer{testLayer("l", 0, 1, 1)}, 5, 0.5)
	})
}
