package world

import (
	"context"
	"time"

	"github.com/annel0/worldgen/internal/logging"
	"github.com/annel0/worldgen/internal/vec"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/annel0/worldgen/internal/world"

// World — бесконечный мир одной игровой сессии: сид, реестр и кэш чанков.
// Чанки генерируются при первом обращении и больше не меняются и не
// выгружаются. World не потокобезопасен: владелец сериализует доступ сам.
type World struct {
	id     uuid.UUID
	seed   uint64
	rules  *GameRules
	params *WorldGenParams
	chunks map[vec.Vec2]*Chunk

	generate  ChunkGenerator
	generated int

	tracer trace.Tracer
	logger *logging.Logger
}

// NewWorld создаёт мир с указанным сидом
func NewWorld(rules *GameRules, seed uint64) *World {
	w := &World{
		id:       uuid.New(),
		seed:     seed,
		rules:    rules,
		params:   NewWorldGenParams(rules, seed),
		chunks:   make(map[vec.Vec2]*Chunk),
		generate: rules.GenerateChunk,
		tracer:   otel.Tracer(tracerName),
		logger:   logging.GetWorldLogger(),
	}

	w.logger.Info("Создан мир %s (seed=%d)", w.id, seed)
	return w
}

// ID возвращает идентификатор сессии мира
func (w *World) ID() uuid.UUID {
	return w.id
}

// Seed возвращает сид мира
func (w *World) Seed() uint64 {
	return w.seed
}

// Rules возвращает реестр мира
func (w *World) Rules() *GameRules {
	return w.rules
}

// Params возвращает засеянные поля мира
func (w *World) Params() *WorldGenParams {
	return w.params
}

// Get возвращает блок в мировой позиции pos
func (w *World) Get(pos vec.Vec2) Block {
	return w.rules.Block(w.GetBlockID(pos))
}

// GetBlockID возвращает ID блока в мировой позиции pos
func (w *World) GetBlockID(pos vec.Vec2) BlockID {
	return w.Chunk(pos.ToChunkCoords()).GetBlock(pos.LocalInChunk())
}

// Chunk возвращает чанк по координатам, генерируя его при первом обращении
func (w *World) Chunk(coords vec.Vec2) *Chunk {
	if chunk, exists := w.chunks[coords]; exists {
		return chunk
	}

	_, span := w.tracer.Start(context.Background(), "world.GenerateChunk",
		trace.WithAttributes(
			attribute.String("world.id", w.id.String()),
			attribute.Int("chunk.x", coords.X),
			attribute.Int("chunk.y", coords.Y),
		))
	start := time.Now()

	chunk := w.generate(w.params, coords)

	elapsed := time.Since(start)
	span.End()

	w.chunks[coords] = chunk
	w.generated++
	chunksGenerated.Inc()
	chunksCached.WithLabelValues(w.id.String()).Set(float64(len(w.chunks)))
	chunkGenerationSeconds.Observe(elapsed.Seconds())

	w.logger.Debug("Мир %s: чанк %v сгенерирован за %v", w.id, coords, elapsed)
	return chunk
}

// IsGenerated проверяет, есть ли чанк в кэше
func (w *World) IsGenerated(coords vec.Vec2) bool {
	_, exists := w.chunks[coords]
	return exists
}

// ChunksGenerated возвращает число вызовов генератора этим миром
func (w *World) ChunksGenerated() int {
	return w.generated
}

// CachedChunks возвращает число чанков в кэше
func (w *World) CachedChunks() int {
	return len(w.chunks)
}

// Close снимает метрики мира. Кэш остаётся доступен, но больше не учитывается.
func (w *World) Close() {
	chunksCached.DeleteLabelValues(w.id.String())
	w.logger.Debug("Мир %s закрыт (%d чанков)", w.id, len(w.chunks))
}
