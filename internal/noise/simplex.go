package noise

import (
	"math"
	"math/rand"

	"github.com/annel0/worldgen/internal/vec"
)

var (
	f2 = (math.Sqrt(3) - 1) / 2
	g2 = (3 - math.Sqrt(3)) / 6
)

// grad3 — 12 рёбер куба; в 2D используются первые две компоненты
var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// PermTable — перестановка 0..255, задающая градиенты решётки
type PermTable [256]uint8

// NewPermTable строит перестановку перемешиванием Фишера–Йетса
// (inside-out) на генераторе, засеянном seed.
func NewPermTable(seed uint64) *PermTable {
	rng := rand.New(rand.NewSource(int64(seed)))

	var table PermTable
	for i := 1; i < len(table); i++ {
		j := rng.Intn(i + 1)
		table[i] = table[j]
		table[j] = uint8(i)
	}
	return &table
}

// Simplex2 вычисляет классический 2D симплекс-шум, значения примерно в [-1, 1]
func (t *PermTable) Simplex2(p vec.Vec2Float) float64 {
	// Перекос в пространство симплексной решётки
	s := (p.X + p.Y) * f2
	i := math.Floor(p.X + s)
	j := math.Floor(p.Y + s)

	// Обратно: смещение точки от начала ячейки
	u := (i + j) * g2
	x0 := p.X - i + u
	y0 := p.Y - j + u

	var i1, j1 uint8
	if x0 > y0 {
		i1, j1 = 1, 0
	} else {
		i1, j1 = 0, 1
	}

	x1 := x0 - float64(i1) + g2
	y1 := y0 - float64(j1) + g2
	x2 := x0 - 1 + 2*g2
	y2 := y0 - 1 + 2*g2

	bi := uint8(int64(i) & 0xFF)
	bj := uint8(int64(j) & 0xFF)

	return 70 * (t.corner(bi, bj, x0, y0) +
		t.corner(bi+i1, bj+j1, x1, y1) +
		t.corner(bi+1, bj+1, x2, y2))
}

func (t *PermTable) corner(i, j uint8, x, y float64) float64 {
	d := 0.5 - x*x - y*y
	if d < 0 {
		return 0
	}
	g := grad3[t[i+t[j]]%12]
	d *= d
	return d * d * (g[0]*x + g[1]*y)
}
