package noise

import (
	"encoding/binary"

	"github.com/annel0/worldgen/internal/vec"
	"github.com/cespare/xxhash/v2"
)

// Split выводит дочерний сид из родительского и индекса.
// Одинаковые (seed, index) всегда дают один и тот же результат.
func Split(seed uint64, index int) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], seed)
	binary.LittleEndian.PutUint64(buf[8:16], uint64(index))
	return xxhash.Sum64(buf[:])
}

// hashUnit хэширует (seed, cell) в [0, 1)
func hashUnit(seed uint64, cell vec.Vec2) float64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], seed)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(int32(cell.X)))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(int32(cell.Y)))

	// Старшие 53 бита точно помещаются в мантиссу float64, поэтому результат строго < 1
	return float64(xxhash.Sum64(buf[:])>>11) / (1 << 53)
}
