package vec

import "math"

// ChunkSize — сторона квадратного чанка в блоках.
const ChunkSize = 64

// Vec2 представляет 2D координаты
type Vec2 struct {
	X, Y int
}

// Add складывает два вектора
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Mul умножает вектор на целый скаляр
func (v Vec2) Mul(scalar int) Vec2 {
	return Vec2{X: v.X * scalar, Y: v.Y * scalar}
}

// ToChunkCoords преобразует глобальные координаты в координаты чанка.
// Деление евклидово: отрицательные координаты попадают в чанк слева/снизу.
func (v Vec2) ToChunkCoords() Vec2 {
	return Vec2{X: FloorDiv(v.X, ChunkSize), Y: FloorDiv(v.Y, ChunkSize)}
}

// LocalInChunk возвращает локальные координаты внутри чанка, всегда в [0, ChunkSize)
func (v Vec2) LocalInChunk() Vec2 {
	return Vec2{X: FloorMod(v.X, ChunkSize), Y: FloorMod(v.Y, ChunkSize)}
}

// ChunkOrigin возвращает глобальные координаты левого нижнего блока чанка
func (v Vec2) ChunkOrigin() Vec2 {
	return v.Mul(ChunkSize)
}

// DistanceTo вычисляет расстояние до другой точки
func (v Vec2) DistanceTo(other Vec2) float64 {
	dx := float64(v.X - other.X)
	dy := float64(v.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
