package noise

import (
	"errors"
	"fmt"
	"math"

	"github.com/annel0/worldgen/internal/vec"
	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Kind — вариант шумового поля. Набор закрытый: Evaluate знает их все.
type Kind string

const (
	KindSimplex     Kind = "simplex"     // градиентный 2D симплекс-шум, ~[-1, 1]
	KindHash        Kind = "hash"        // позиционный хэш, [0, 1), без пространственной связности
	KindGradient    Kind = "gradient"    // линейная рампа dot(p, direction)
	KindScale       Kind = "scale"       // inner(p*scale_in) * scale_out
	KindSum         Kind = "sum"         // сумма count копий inner с разными сидами
	KindOctaves     Kind = "octaves"     // фрактальная сумма масштабированных копий
	KindAdd         Kind = "add"         // сумма двух независимо засеянных полей
	KindPerlin      Kind = "perlin"      // шум Перлина (go-perlin)
	KindOpenSimplex Kind = "opensimplex" // OpenSimplex (opensimplex-go)
)

// ErrInvalidConfig возвращается Validate для некорректно собранной конфигурации
var ErrInvalidConfig = errors.New("некорректная конфигурация шума")

// Config — незасеянное описание шумового поля. Это значение: дочерние
// конфигурации хранятся в Inner, копирование Config копирует всё дерево.
type Config struct {
	Kind  Kind     `yaml:"kind"`
	Inner []Config `yaml:"inner,omitempty"`

	// scale
	ScaleIn  float64 `yaml:"scale_in,omitempty"`
	ScaleOut float64 `yaml:"scale_out,omitempty"`

	// sum, octaves
	Count       int     `yaml:"count,omitempty"`
	Lacunarity  float64 `yaml:"lacunarity,omitempty"`
	Persistence float64 `yaml:"persistence,omitempty"`

	// gradient
	Direction vec.Vec2Float `yaml:"direction,omitempty"`

	// perlin
	Alpha float64 `yaml:"alpha,omitempty"`
	Beta  float64 `yaml:"beta,omitempty"`
	N     int32   `yaml:"n,omitempty"`
}

// Simplex создаёт конфигурацию симплекс-шума
func Simplex() Config {
	return Config{Kind: KindSimplex}
}

// Hash создаёт конфигурацию позиционного хэш-шума
func Hash() Config {
	return Config{Kind: KindHash}
}

// Gradient создаёт линейную рампу вдоль direction. Сид игнорируется.
func Gradient(direction vec.Vec2Float) Config {
	return Config{Kind: KindGradient, Direction: direction}
}

// Scale меняет частоту (scaleIn) и амплитуду (scaleOut) inner независимо
func Scale(inner Config, scaleIn, scaleOut float64) Config {
	return Config{Kind: KindScale, Inner: []Config{inner}, ScaleIn: scaleIn, ScaleOut: scaleOut}
}

// Sum складывает count копий inner, каждая со своим производным сидом
func Sum(inner Config, count int) Config {
	return Config{Kind: KindSum, Inner: []Config{inner}, Count: count}
}

// Octaves складывает count копий inner; копия i масштабирована
// lacunarity^i по частоте и persistence^i по амплитуде.
func Octaves(inner Config, count int, lacunarity, persistence float64) Config {
	return Config{
		Kind:        KindOctaves,
		Inner:       []Config{inner},
		Count:       count,
		Lacunarity:  lacunarity,
		Persistence: persistence,
	}
}

// Add складывает два поля
func Add(a, b Config) Config {
	return Config{Kind: KindAdd, Inner: []Config{a, b}}
}

// Perlin создаёт конфигурацию шума Перлина
func Perlin(alpha, beta float64, n int32) Config {
	return Config{Kind: KindPerlin, Alpha: alpha, Beta: beta, N: n}
}

// OpenSimplex создаёт конфигурацию шума OpenSimplex
func OpenSimplex() Config {
	return Config{Kind: KindOpenSimplex}
}

// Validate проверяет арность и параметры всего дерева конфигурации
func (c Config) Validate() error {
	return c.validate(string(c.Kind))
}

func (c Config) validate(path string) error {
	for name, v := range map[string]float64{
		"scale_in":    c.ScaleIn,
		"scale_out":   c.ScaleOut,
		"lacunarity":  c.Lacunarity,
		"persistence": c.Persistence,
		"direction.x": c.Direction.X,
		"direction.y": c.Direction.Y,
		"alpha":       c.Alpha,
		"beta":        c.Beta,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s: %s должен быть конечным, получено %v", ErrInvalidConfig, path, name, v)
		}
	}

	arity := 0
	switch c.Kind {
	case KindSimplex, KindHash, KindOpenSimplex:
	case KindGradient:
		if c.Direction.X == 0 && c.Direction.Y == 0 {
			return fmt.Errorf("%w: %s: нулевое направление градиента", ErrInvalidConfig, path)
		}
	case KindScale:
		arity = 1
	case KindSum:
		arity = 1
		if c.Count < 1 {
			return fmt.Errorf("%w: %s: count должен быть >= 1, получено %d", ErrInvalidConfig, path, c.Count)
		}
	case KindOctaves:
		arity = 1
		if c.Count < 1 {
			return fmt.Errorf("%w: %s: count должен быть >= 1, получено %d", ErrInvalidConfig, path, c.Count)
		}
	case KindAdd:
		arity = 2
	case KindPerlin:
		// alpha делит амплитуду октав go-perlin: ноль даёт NaN
		if !(c.Alpha > 0) || !(c.Beta > 0) {
			return fmt.Errorf("%w: %s: alpha и beta должны быть > 0, получено %v и %v", ErrInvalidConfig, path, c.Alpha, c.Beta)
		}
		if c.N < 1 {
			return fmt.Errorf("%w: %s: n должен быть >= 1, получено %d", ErrInvalidConfig, path, c.N)
		}
	default:
		return fmt.Errorf("%w: %s: неизвестный вид шума %q", ErrInvalidConfig, path, c.Kind)
	}

	if len(c.Inner) != arity {
		return fmt.Errorf("%w: %s: ожидалось %d вложенных, получено %d", ErrInvalidConfig, path, arity, len(c.Inner))
	}
	for i, inner := range c.Inner {
		if err := inner.validate(fmt.Sprintf("%s.inner[%d](%s)", path, i, inner.Kind)); err != nil {
			return err
		}
	}
	return nil
}

// Seed детерминированно строит экземпляр шума для сида.
// Паникует на конфигурации, не прошедшей Validate.
func (c Config) Seed(seed uint64) Noise {
	if err := c.Validate(); err != nil {
		panic(err)
	}
	return c.seed(seed)
}

func (c Config) seed(seed uint64) Noise {
	n := Noise{kind: c.Kind, seed: seed}

	switch c.Kind {
	case KindSimplex:
		n.perm = NewPermTable(seed)
	case KindGradient:
		n.direction = c.Direction
	case KindScale:
		n.terms = []Noise{c.Inner[0].seed(seed)}
		n.scaleIn = c.ScaleIn
		n.scaleOut = c.ScaleOut
	case KindSum:
		n.terms = make([]Noise, c.Count)
		for i := range n.terms {
			n.terms[i] = c.Inner[0].seed(Split(seed, i))
		}
	case KindOctaves:
		n.terms = make([]Noise, c.Count)
		for i := range n.terms {
			n.terms[i] = Noise{
				kind:     KindScale,
				seed:     Split(seed, i),
				terms:    []Noise{c.Inner[0].seed(Split(seed, i))},
				scaleIn:  math.Pow(c.Lacunarity, float64(i)),
				scaleOut: math.Pow(c.Persistence, float64(i)),
			}
		}
	case KindAdd:
		n.terms = []Noise{c.Inner[0].seed(Split(seed, 0)), c.Inner[1].seed(Split(seed, 1))}
	case KindPerlin:
		n.perlin = perlin.NewPerlin(c.Alpha, c.Beta, c.N, int64(seed))
	case KindOpenSimplex:
		n.open = opensimplex.New(int64(seed))
	}

	return n
}

// Noise — засеянный экземпляр поля. Evaluate является чистой функцией: все таблицы
// строятся в Seed и дальше только читаются.
type Noise struct {
	kind      Kind
	seed      uint64
	terms     []Noise
	scaleIn   float64
	scaleOut  float64
	direction vec.Vec2Float
	perm      *PermTable
	perlin    *perlin.Perlin
	open      opensimplex.Noise
}

// Kind возвращает вид поля
func (n Noise) Kind() Kind {
	return n.kind
}

// Evaluate возвращает значение поля в точке p
func (n Noise) Evaluate(p vec.Vec2Float) float64 {
	switch n.kind {
	case KindSimplex:
		return n.perm.Simplex2(p)
	case KindHash:
		return hashUnit(n.seed, p.ToVec2())
	case KindGradient:
		return p.Dot(n.direction)
	case KindScale:
		return n.terms[0].Evaluate(p.Mul(n.scaleIn)) * n.scaleOut
	case KindSum, KindOctaves, KindAdd:
		var total float64
		for _, term := range n.terms {
			total += term.Evaluate(p)
		}
		return total
	case KindPerlin:
		return n.perlin.Noise2D(p.X, p.Y)
	case KindOpenSimplex:
		return n.open.Eval2(p.X, p.Y)
	}
	panic(fmt.Sprintf("noise: неизвестный вид %q", n.kind))
}
