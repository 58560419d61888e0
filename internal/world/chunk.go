package world

import (
	"fmt"

	"github.com/annel0/worldgen/internal/vec"
)

// ChunkSize — сторона чанка в блоках
const ChunkSize = vec.ChunkSize

// Chunk представляет участок мира ChunkSize x ChunkSize. После генерации
// не меняется.
type Chunk struct {
	Coords vec.Vec2 // Координаты чанка в мире

	blocks []BlockID // [y*ChunkSize + x]
}

// NewChunk создаёт пустой чанк с указанными координатами
func NewChunk(coords vec.Vec2) *Chunk {
	return &Chunk{
		Coords: coords,
		blocks: make([]BlockID, ChunkSize*ChunkSize),
	}
}

func index(local vec.Vec2) int {
	if local.X < 0 || local.X >= ChunkSize || local.Y < 0 || local.Y >= ChunkSize {
		panic(fmt.Sprintf("world: локальные координаты %v вне чанка", local))
	}
	return local.Y*ChunkSize + local.X
}

// GetBlock возвращает ID блока по локальным координатам
func (c *Chunk) GetBlock(local vec.Vec2) BlockID {
	return c.blocks[index(local)]
}

func (c *Chunk) set(local vec.Vec2, id BlockID) {
	c.blocks[index(local)] = id
}

// Histogram считает количество каждого блока в чанке
func (c *Chunk) Histogram() map[BlockID]int {
	counts := make(map[BlockID]int)
	for _, id := range c.blocks {
		counts[id]++
	}
	return counts
}
