package world

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPalette возвращается для палитры без блоков
	ErrEmptyPalette = errors.New("палитра пуста")
	// ErrNegativeWeight возвращается для отрицательного веса
	ErrNegativeWeight = errors.New("отрицательный вес в палитре")
)

// PaletteEntry хранит блок-кандидат и его вес
type PaletteEntry struct {
	ID     BlockID
	Weight float64
}

// BlockPalette — взвешенный набор блоков слоя. Веса нормализованы к 1.0
// при создании, если исходная сумма положительна.
type BlockPalette struct {
	entries []PaletteEntry
}

// NewBlockPalette создаёт палитру и нормализует веса
func NewBlockPalette(entries ...PaletteEntry) (BlockPalette, error) {
	if len(entries) == 0 {
		return BlockPalette{}, ErrEmptyPalette
	}

	normalized := make([]PaletteEntry, len(entries))
	copy(normalized, entries)

	var total float64
	for _, e := range normalized {
		if e.Weight < 0 {
			return BlockPalette{}, fmt.Errorf("%w: блок %d, вес %v", ErrNegativeWeight, e.ID, e.Weight)
		}
		total += e.Weight
	}

	// Нулевая сумма: выбор вырождается в первый элемент, нормализация не нужна
	if total > 0 {
		for i := range normalized {
			normalized[i].Weight /= total
		}
	}

	return BlockPalette{entries: normalized}, nil
}

// MustBlockPalette вызывает NewBlockPalette и паникует при ошибке
func MustBlockPalette(entries ...PaletteEntry) BlockPalette {
	p, err := NewBlockPalette(entries...)
	if err != nil {
		panic(err)
	}
	return p
}

// Entries возвращает копию элементов палитры
func (p BlockPalette) Entries() []PaletteEntry {
	out := make([]PaletteEntry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Contains проверяет, входит ли блок в палитру
func (p BlockPalette) Contains(id BlockID) bool {
	for _, e := range p.entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

// Select выбирает блок по draw ∈ [0, 1)
func (p BlockPalette) Select(draw float64) BlockID {
	return weightedRandom(p.entries, draw)
}

// weightedRandom выбирает элемент по ненормализованным весам.
// При сумме <= 0 всегда первый элемент. Выход за конец списка недостижим
// для draw < 1 и считается нарушением инварианта.
func weightedRandom(list []PaletteEntry, draw float64) BlockID {
	var total float64
	for _, e := range list {
		total += e.Weight
	}
	if !(total > 0) {
		return list[0].ID
	}

	target := total * draw
	var running float64
	for _, e := range list {
		running += e.Weight
		if running > target {
			return e.ID
		}
	}

	panic(fmt.Sprintf("weightedRandom: draw=%v не покрыт суммой весов %v", draw, total))
}
