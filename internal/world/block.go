package world

import (
	"image/color"
	"math"
)

// BlockID — индекс блока в реестре GameRules. Стабилен, пока жив реестр.
type BlockID uint16

// Коэффициенты производной заливки
const (
	shadowFactor    = 0.75 // затемнение для теневой грани
	highlightFactor = 0.25 // доля смешивания с белым для блика
)

// Block — неизменяемое визуальное описание материала
type Block struct {
	Name      string
	Colour    color.RGBA
	Shadow    color.RGBA // Colour, затемнённый на shadowFactor
	Highlight color.RGBA // Colour, смешанный с белым на highlightFactor
}

// NewBlock создаёт блок и вычисляет параметры заливки из основного цвета
func NewBlock(name string, colour color.RGBA) Block {
	return Block{
		Name:      name,
		Colour:    colour,
		Shadow:    shade(colour, shadowFactor),
		Highlight: tint(colour, highlightFactor),
	}
}

func shade(c color.RGBA, k float64) color.RGBA {
	return color.RGBA{R: scaleChannel(c.R, k), G: scaleChannel(c.G, k), B: scaleChannel(c.B, k), A: c.A}
}

func tint(c color.RGBA, k float64) color.RGBA {
	mix := func(v uint8) uint8 {
		return uint8(math.Round(float64(v) + (255-float64(v))*k))
	}
	return color.RGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: c.A}
}

func scaleChannel(v uint8, k float64) uint8 {
	return uint8(math.Round(float64(v) * k))
}
