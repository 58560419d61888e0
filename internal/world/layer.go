package world

import "math"

// Layer — интервал глубины [Start, End] (обе границы включительно) и палитра.
// Бесконечные границы задаются math.Inf. Слои могут перекрываться:
// в зоне перекрытия блоки смешиваются.
type Layer struct {
	Name    string
	Start   float64
	End     float64
	Palette BlockPalette
}

// Contains проверяет, лежит ли глубина в интервале слоя
func (l Layer) Contains(depth float64) bool {
	return l.Start <= depth && depth <= l.End
}

func (l Layer) midpoint() float64 {
	return (l.Start + l.End) / 2
}

// boundaryDistance — расстояние от depth до границы layer, которую
// ограничивает соседний слой other.
func boundaryDistance(layer, other Layer, depth float64) float64 {
	switch {
	case other.Start < layer.Start:
		return depth - layer.Start
	case other.End > layer.End:
		return layer.End - depth
	default:
		return math.Abs(depth - other.midpoint())
	}
}

// dominance — вес слоя candidates[i] в смешивании: ближайшая из границ,
// заданных остальными кандидатами. false, если ни один сосед слой не ограничивает.
func dominance(candidates []Layer, i int, depth float64) (float64, bool) {
	best := math.Inf(1)
	for j, other := range candidates {
		if j == i {
			continue
		}
		// NaN (середина слоя без обеих границ) не проходит сравнение
		if d := boundaryDistance(candidates[i], other, depth); d < best {
			best = d
		}
	}
	if math.IsInf(best, 1) {
		return 0, false
	}
	return best, true
}

// selectFromLayers выбирает блок для глубины depth среди слоёв layers
func selectFromLayers(layers []Layer, depth, draw float64) BlockID {
	var candidates []Layer
	for _, l := range layers {
		if l.Contains(depth) {
			candidates = append(candidates, l)
		}
	}

	switch len(candidates) {
	case 0:
		panic("world: глубина не покрыта ни одним слоем")
	case 1:
		return candidates[0].Palette.Select(draw)
	}

	return blend(candidates, depth, draw)
}

// blend смешивает палитры перекрывающихся слоёв: вклад слоя падает до нуля
// при приближении глубины к общей границе с соседом.
func blend(candidates []Layer, depth, draw float64) BlockID {
	var combined []PaletteEntry
	for i, layer := range candidates {
		weight, ok := dominance(candidates, i, depth)
		if !ok {
			continue
		}
		for _, e := range layer.Palette.entries {
			combined = append(combined, PaletteEntry{ID: e.ID, Weight: e.Weight * weight})
		}
	}

	if len(combined) == 0 {
		return candidates[0].Palette.Select(draw)
	}
	return weightedRandom(combined, draw)
}
