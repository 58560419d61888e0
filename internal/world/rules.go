package world

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/annel0/worldgen/internal/noise"
	"github.com/annel0/worldgen/internal/vec"
)

var (
	// ErrNoBlocks: в реестре нет блоков
	ErrNoBlocks = errors.New("реестр без блоков")
	// ErrTooManyBlocks: блоков больше, чем вмещает BlockID
	ErrTooManyBlocks = errors.New("слишком много блоков")
	// ErrUnknownBlock: палитра ссылается на отсутствующий блок
	ErrUnknownBlock = errors.New("неизвестный блок")
	// ErrInvalidLayer: у слоя Start > End или NaN-границы
	ErrInvalidLayer = errors.New("некорректный слой")
	// ErrLayerGap: слои не покрывают всю ось глубины
	ErrLayerGap = errors.New("слои не покрывают ось глубины")
)

// GameRules — неизменяемый реестр: блоки, слои глубины и две конфигурации
// шума (поле глубины и поле данных). Создаётся один раз и разделяется
// между мирами по указателю.
type GameRules struct {
	blocks []Block
	byName map[string]BlockID
	layers []Layer
	depth  noise.Config
	data   noise.Config
}

// NewGameRules проверяет и собирает реестр. Слои должны вместе покрывать
// (-inf, +inf), иначе генерация не тотальна.
func NewGameRules(blocks []Block, layers []Layer, depth, data noise.Config) (*GameRules, error) {
	if len(blocks) == 0 {
		return nil, ErrNoBlocks
	}
	if len(blocks) > math.MaxUint16+1 {
		return nil, fmt.Errorf("%w: %d", ErrTooManyBlocks, len(blocks))
	}

	byName := make(map[string]BlockID, len(blocks))
	for i, b := range blocks {
		if _, dup := byName[b.Name]; dup {
			return nil, fmt.Errorf("повторное имя блока %q", b.Name)
		}
		byName[b.Name] = BlockID(i)
	}

	for _, l := range layers {
		if math.IsNaN(l.Start) || math.IsNaN(l.End) || l.Start > l.End {
			return nil, fmt.Errorf("%w: %q [%v, %v]", ErrInvalidLayer, l.Name, l.Start, l.End)
		}
		if len(l.Palette.entries) == 0 {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidLayer, l.Name, ErrEmptyPalette)
		}
		for _, e := range l.Palette.entries {
			if int(e.ID) >= len(blocks) {
				return nil, fmt.Errorf("%w: слой %q ссылается на %d", ErrUnknownBlock, l.Name, e.ID)
			}
		}
	}
	if err := checkCoverage(layers); err != nil {
		return nil, err
	}

	if err := depth.Validate(); err != nil {
		return nil, fmt.Errorf("поле глубины: %w", err)
	}
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("поле данных: %w", err)
	}

	rules := &GameRules{
		blocks: append([]Block(nil), blocks...),
		byName: byName,
		layers: append([]Layer(nil), layers...),
		depth:  depth,
		data:   data,
	}
	return rules, nil
}

func checkCoverage(layers []Layer) error {
	if len(layers) == 0 {
		return fmt.Errorf("%w: нет слоёв", ErrLayerGap)
	}

	sorted := append([]Layer(nil), layers...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	if !math.IsInf(sorted[0].Start, -1) {
		return fmt.Errorf("%w: ниже %v", ErrLayerGap, sorted[0].Start)
	}
	reach := sorted[0].End
	for _, l := range sorted[1:] {
		if l.Start > reach {
			return fmt.Errorf("%w: между %v и %v", ErrLayerGap, reach, l.Start)
		}
		reach = math.Max(reach, l.End)
	}
	if !math.IsInf(reach, 1) {
		return fmt.Errorf("%w: выше %v", ErrLayerGap, reach)
	}
	return nil
}

// Имена встроенных блоков
const (
	BlockSpace = "space"
	BlockStar  = "star"
	BlockSand  = "sand"
	BlockStone = "stone"
	BlockRock  = "rock"
	BlockMagma = "magma"
	BlockCore  = "core"
)

// Параметры встроенного поля глубины
const (
	depthOctaves     = 6
	depthLacunarity  = 2.0
	depthPersistence = 0.5
	depthFrequency   = 1.0 / 256
	depthAmplitude   = 100.0
)

// Load строит встроенный реестр: космос над поверхностью, песок, камень,
// скальная порода, магма и ядро. Глубина растёт вдоль оси Y.
func Load() *GameRules {
	blocks := []Block{
		NewBlock(BlockSpace, color.RGBA{R: 0x05, G: 0x05, B: 0x14, A: 0xFF}),
		NewBlock(BlockStar, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}),
		NewBlock(BlockSand, color.RGBA{R: 0xE2, G: 0xCA, B: 0x76, A: 0xFF}),
		NewBlock(BlockStone, color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xFF}),
		NewBlock(BlockRock, color.RGBA{R: 0x4A, G: 0x44, B: 0x40, A: 0xFF}),
		NewBlock(BlockMagma, color.RGBA{R: 0xCF, G: 0x4A, B: 0x10, A: 0xFF}),
		NewBlock(BlockCore, color.RGBA{R: 0xFF, G: 0xD2, B: 0x3F, A: 0xFF}),
	}
	const (
		space BlockID = iota
		star
		sand
		stone
		rock
		magma
		core
	)

	inf := math.Inf(1)
	layers := []Layer{
		{Name: "space", Start: -inf, End: 0, Palette: MustBlockPalette(
			PaletteEntry{ID: space, Weight: 98}, PaletteEntry{ID: star, Weight: 2})},
		{Name: "surface", Start: 0, End: 200, Palette: MustBlockPalette(
			PaletteEntry{ID: sand, Weight: 7}, PaletteEntry{ID: stone, Weight: 3})},
		{Name: "crust", Start: 50, End: 1100, Palette: MustBlockPalette(
			PaletteEntry{ID: stone, Weight: 2}, PaletteEntry{ID: rock, Weight: 8})},
		{Name: "mantle", Start: 1000, End: 2000, Palette: MustBlockPalette(
			PaletteEntry{ID: rock, Weight: 3}, PaletteEntry{ID: magma, Weight: 7})},
		{Name: "core", Start: 1900, End: inf, Palette: MustBlockPalette(
			PaletteEntry{ID: magma, Weight: 1}, PaletteEntry{ID: core, Weight: 9})},
	}

	depth := noise.Add(
		noise.Scale(
			noise.Octaves(noise.Simplex(), depthOctaves, depthLacunarity, depthPersistence),
			depthFrequency, depthAmplitude),
		noise.Gradient(vec.Vec2Float{X: 0, Y: 1}),
	)

	rules, err := NewGameRules(blocks, layers, depth, noise.Hash())
	if err != nil {
		panic(fmt.Sprintf("world: встроенный реестр некорректен: %v", err))
	}
	return rules
}

// Block возвращает блок по индексу. Выход за границы считается нарушением инварианта.
func (r *GameRules) Block(id BlockID) Block {
	if int(id) >= len(r.blocks) {
		panic(fmt.Sprintf("world: блок %d вне реестра из %d", id, len(r.blocks)))
	}
	return r.blocks[id]
}

// BlockID ищет индекс блока по имени
func (r *GameRules) BlockID(name string) (BlockID, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// BlockCount возвращает число блоков в реестре
func (r *GameRules) BlockCount() int {
	return len(r.blocks)
}

// Layers возвращает копию списка слоёв
func (r *GameRules) Layers() []Layer {
	return append([]Layer(nil), r.layers...)
}

// DepthConfig возвращает конфигурацию поля глубины
func (r *GameRules) DepthConfig() noise.Config {
	return r.depth
}

// DataConfig возвращает конфигурацию поля данных
func (r *GameRules) DataConfig() noise.Config {
	return r.data
}

// SelectBlock выбирает блок для глубины depth и энтропии draw ∈ [0, 1)
func (r *GameRules) SelectBlock(depth, draw float64) BlockID {
	return selectFromLayers(r.layers, depth, draw)
}
