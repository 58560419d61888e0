package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sort"

	"github.com/annel0/worldgen/internal/vec"
	"github.com/annel0/worldgen/internal/world"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
)

// region — прямоугольник мировых позиций [Min, Min+Size)
type region struct {
	Min  vec.Vec2
	Size vec.Vec2
}

func (r region) area() int {
	return r.Size.X * r.Size.Y
}

// sampleRegion читает каждую позицию региона и считает блоки
func sampleRegion(w *world.World, r region) map[world.BlockID]int {
	counts := make(map[world.BlockID]int)
	for y := r.Min.Y; y < r.Min.Y+r.Size.Y; y++ {
		for x := r.Min.X; x < r.Min.X+r.Size.X; x++ {
			counts[w.GetBlockID(vec.Vec2{X: x, Y: y})]++
		}
	}
	return counts
}

type surveyResult struct {
	Seed   uint64
	Counts map[world.BlockID]int
	Chunks int
}

// surveySeeds сэмплирует один регион в нескольких мирах параллельно.
// Каждая горутина владеет своим World, реестр общий.
func surveySeeds(ctx context.Context, rules *world.GameRules, seeds []uint64, r region) ([]surveyResult, error) {
	results := make([]surveyResult, len(seeds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, seed := range seeds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			w := world.NewWorld(rules, seed)
			defer w.Close()
			results[i] = surveyResult{
				Seed:   seed,
				Counts: sampleRegion(w, r),
				Chunks: w.ChunksGenerated(),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

type histogramRow struct {
	ID    world.BlockID
	Count int
}

// sortedHistogram упорядочивает блоки по убыванию количества, затем по ID
func sortedHistogram(counts map[world.BlockID]int) []histogramRow {
	rows := make([]histogramRow, 0, len(counts))
	for id, n := range counts {
		rows = append(rows, histogramRow{ID: id, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].ID < rows[j].ID
	})
	return rows
}

func printHistogram(out io.Writer, rules *world.GameRules, counts map[world.BlockID]int) {
	var total int
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		fmt.Fprintln(out, "  (пусто)")
		return
	}

	for _, row := range sortedHistogram(counts) {
		share := float64(row.Count) * 100 / float64(total)
		fmt.Fprintf(out, "  %-8s %10s  %6s%%\n",
			rules.Block(row.ID).Name, humanize.Comma(int64(row.Count)), humanize.FtoaWithDigits(share, 2))
	}
}
