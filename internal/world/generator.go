package world

import (
	"github.com/annel0/worldgen/internal/noise"
	"github.com/annel0/worldgen/internal/vec"
)

// WorldGenParams — поля шума GameRules, засеянные для одного мира
type WorldGenParams struct {
	Seed  uint64
	Depth noise.Noise
	Data  noise.Noise
}

// NewWorldGenParams засевает оба поля реестра. Поля получают разные
// производные сиды, чтобы не коррелировать между собой.
func NewWorldGenParams(rules *GameRules, seed uint64) *WorldGenParams {
	return &WorldGenParams{
		Seed:  seed,
		Depth: rules.depth.Seed(noise.Split(seed, 0)),
		Data:  rules.data.Seed(noise.Split(seed, 1)),
	}
}

// ChunkGenerator строит чанк по координатам. Подменяется в тестах.
type ChunkGenerator func(params *WorldGenParams, coords vec.Vec2) *Chunk

// GenerateChunk детерминированно строит чанк: для каждой клетки считает глубину,
// энтропию и выбирает блок по слоям.
func (r *GameRules) GenerateChunk(params *WorldGenParams, coords vec.Vec2) *Chunk {
	chunk := NewChunk(coords)
	origin := coords.ChunkOrigin()

	for y := 0; y < ChunkSize; y++ {
		for x := 0; x < ChunkSize; x++ {
			local := vec.Vec2{X: x, Y: y}
			p := vec.FromVec2(origin.Add(local))

			depth := params.Depth.Evaluate(p)
			draw := params.Data.Evaluate(p)

			chunk.set(local, r.SelectBlock(depth, draw))
		}
	}

	return chunk
}
