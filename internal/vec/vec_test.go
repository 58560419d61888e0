package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloorDivMod_RoundTrip(t *testing.T) {
	for x := -3 * ChunkSize; x <= 3*ChunkSize; x++ {
		q := FloorDiv(x, ChunkSize)
		r := FloorMod(x, ChunkSize)
		assert.Equal(t, x, q*ChunkSize+r, "x=%d", x)
		assert.GreaterOrEqual(t, r, 0)
		assert.Less(t, r, ChunkSize)
	}
}

func TestFloorDivMod_Extremes(t *testing.T) {
	// 32-битный диапазон мировых координат
	for _, x := range []int{-2147483648, -2147483647, -65, -64, -1, 0, 63, 64, 2147483647} {
		q := FloorDiv(x, ChunkSize)
		r := FloorMod(x, ChunkSize)
		assert.Equal(t, x, q*ChunkSize+r, "x=%d", x)
	}
}

func TestVec2_ToChunkCoords(t *testing.T) {
	assert.Equal(t, Vec2{X: 0, Y: 0}, Vec2{X: 0, Y: 63}.ToChunkCoords())
	assert.Equal(t, Vec2{X: -1, Y: 1}, Vec2{X: -1, Y: 64}.ToChunkCoords())
	assert.Equal(t, Vec2{X: -2, Y: -1}, Vec2{X: -65, Y: -64}.ToChunkCoords())

	assert.Equal(t, Vec2{X: 63, Y: 0}, Vec2{X: -1, Y: 64}.LocalInChunk())
	assert.Equal(t, Vec2{X: 63, Y: 0}, Vec2{X: -65, Y: -64}.LocalInChunk())
}

func TestVec2_ChunkOrigin(t *testing.T) {
	pos := Vec2{X: -130, Y: 77}
	chunk := pos.ToChunkCoords()
	assert.Equal(t, pos, chunk.ChunkOrigin().Add(pos.LocalInChunk()))
}

func TestVec2Float_Dot(t *testing.T) {
	a := Vec2Float{X: 2, Y: -3}
	assert.Equal(t, 2.0*4-3*5, a.Dot(Vec2Float{X: 4, Y: 5}))
	assert.Equal(t, Vec2{X: 3, Y: -2}, Vec2Float{X: 2.5, Y: -2.4}.ToVec2())
}
