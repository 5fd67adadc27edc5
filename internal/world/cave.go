package world

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/obsidianarcane/internal/telemetry"
)

const (
	// Default cellular automata parameters.
	DefaultCaveDensity    = 0.45
	DefaultCaveThreshold  = 4
	DefaultCaveIterations = 5
)

// CaveGenerator produces WALL/FLOOR grids with the cave-generation automaton.
// It is not safe for concurrent use.
type CaveGenerator struct {
	width          int
	height         int
	initialDensity float64
	wallThreshold  int
	iterations     int
	keepLargest    bool
	seed           int64
	rng            *rand.Rand
}

// CaveOption configures a CaveGenerator at construction.
type CaveOption func(*CaveGenerator)

// WithSeed makes generation reproducible.
func WithSeed(seed int64) CaveOption {
	return func(g *CaveGenerator) {
		g.seed = seed
	}
}

// WithKeepLargestRegion fills every floor region except the largest one,
// leaving a single connected cave.
func WithKeepLargestRegion() CaveOption {
	return func(g *CaveGenerator) {
		g.keepLargest = true
	}
}

// NewCaveGenerator creates a generator for a width x height grid.
// Without WithSeed the seed is taken from the clock.
func NewCaveGenerator(width, height int, opts ...CaveOption) *CaveGenerator {
	g := &CaveGenerator{
		width:          max(width, 1),
		height:         max(height, 1),
		initialDensity: DefaultCaveDensity,
		wallThreshold:  DefaultCaveThreshold,
		iterations:     DefaultCaveIterations,
		seed:           time.Now().UnixNano(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.rng = rand.New(rand.NewSource(g.seed))
	return g
}

func (g *CaveGenerator) Width() int              { return g.width }
func (g *CaveGenerator) Height() int             { return g.height }
func (g *CaveGenerator) InitialDensity() float64 { return g.initialDensity }
func (g *CaveGenerator) WallThreshold() int      { return g.wallThreshold }
func (g *CaveGenerator) Iterations() int         { return g.iterations }
func (g *CaveGenerator) Seed() int64             { return g.seed }

// SetInitialDensity sets the wall probability for interior cells, clamped to [0, 1].
func (g *CaveGenerator) SetInitialDensity(density float64) {
	g.initialDensity = clampFloat(density, 0, 1)
}

// SetWallThreshold sets the wall-neighbor count needed for a wall, clamped to [0, 8].
func (g *CaveGenerator) SetWallThreshold(threshold int) {
	g.wallThreshold = clampInt(threshold, 0, 8)
}

// SetIterations sets the number of smoothing passes, at least 1.
func (g *CaveGenerator) SetIterations(iterations int) {
	g.iterations = max(iterations, 1)
}

// SetSeed restarts the random source from seed.
func (g *CaveGenerator) SetSeed(seed int64) {
	g.seed = seed
	g.rng = rand.New(rand.NewSource(seed))
}

// Generate builds a new cave grid. Every call consumes the random source,
// so two calls on one generator differ unless SetSeed is called in between.
func (g *CaveGenerator) Generate(ctx context.Context) *Grid {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "cave.generate")
	defer span.End()

	startTime := time.Now()

	grid := g.initialize()
	for i := 0; i < g.iterations; i++ {
		grid = g.smooth(grid)
	}
	grid = g.fillEnclosed(grid)
	if g.keepLargest {
		g.keepLargestRegion(grid)
	}

	span.SetAttributes(
		attribute.Int("cave.width", g.width),
		attribute.Int("cave.height", g.height),
		attribute.Int64("cave.seed", g.seed),
		attribute.Float64("cave.density", g.initialDensity),
		attribute.Int("cave.threshold", g.wallThreshold),
		attribute.Int("cave.iterations", g.iterations),
		attribute.Float64("cave.wall_pct", WallPercentage(grid)),
		attribute.Int64("cave.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return grid
}

// GenerateWithParams generates with temporary parameters and restores the
// previous ones afterwards.
func (g *CaveGenerator) GenerateWithParams(ctx context.Context, density float64, threshold, iterations int) *Grid {
	oldDensity, oldThreshold, oldIterations := g.initialDensity, g.wallThreshold, g.iterations
	defer func() {
		g.initialDensity, g.wallThreshold, g.iterations = oldDensity, oldThreshold, oldIterations
	}()

	g.SetInitialDensity(density)
	g.SetWallThreshold(threshold)
	g.SetIterations(iterations)
	return g.Generate(ctx)
}

// initialize forces the border to wall and randomizes the interior.
func (g *CaveGenerator) initialize() *Grid {
	grid := NewGrid(g.width, g.height, TileFloor)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if grid.IsBorder(x, y) || g.rng.Float64() < g.initialDensity {
				grid.Tiles[y][x] = TileWall
			}
		}
	}
	return grid
}

// smooth applies one automaton pass. It reads only from prev.
func (g *CaveGenerator) smooth(prev *Grid) *Grid {
	next := NewGrid(g.width, g.height, TileFloor)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if prev.IsBorder(x, y) || countWallNeighbors(prev, x, y) >= g.wallThreshold {
				next.Tiles[y][x] = TileWall
			}
		}
	}
	return next
}

// fillEnclosed turns floor cells with eight wall neighbors into walls.
func (g *CaveGenerator) fillEnclosed(grid *Grid) *Grid {
	out := grid.Clone()
	for y := 1; y < g.height-1; y++ {
		for x := 1; x < g.width-1; x++ {
			if grid.Tiles[y][x] == TileFloor && countWallNeighbors(grid, x, y) == 8 {
				out.Tiles[y][x] = TileWall
			}
		}
	}
	return out
}

func (g *CaveGenerator) keepLargestRegion(grid *Grid) {
	regions := FloorRegions(grid)
	for _, region := range regions[min(1, len(regions)):] {
		for _, p := range region {
			grid.Tiles[p.Y][p.X] = TileWall
		}
	}
}

// countWallNeighbors counts walls among the 8 cells around (x, y).
// Cells outside the grid count as walls.
func countWallNeighbors(grid *Grid, x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if grid.At(x+dx, y+dy) == TileWall {
				count++
			}
		}
	}
	return count
}

// WallPercentage returns the fraction of cells that are walls, in [0, 1].
func WallPercentage(grid *Grid) float64 {
	total := grid.Width * grid.Height
	if total == 0 {
		return 0
	}
	return float64(grid.Count(TileWall)) / float64(total)
}

// floorPather exposes 4-connected passable neighbors to gruid's path range.
type floorPather struct {
	grid *Grid
	nbs  paths.Neighbors
}

func (fp *floorPather) Neighbors(p gruid.Point) []gruid.Point {
	return fp.nbs.Cardinal(p, func(q gruid.Point) bool {
		return fp.grid.InBounds(q.X, q.Y) && fp.grid.Tiles[q.Y][q.X].IsPassable()
	})
}

// FloorRegions returns the 4-connected passable regions of the grid,
// largest first. Ties keep scan order.
func FloorRegions(grid *Grid) [][]TilePos {
	pr := paths.NewPathRange(gruid.NewRange(0, 0, grid.Width, grid.Height))
	pather := &floorPather{grid: grid}
	seen := make([]bool, grid.Width*grid.Height)

	var regions [][]TilePos
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			if seen[y*grid.Width+x] || grid.Tiles[y][x].IsSolid() {
				continue
			}
			cc := pr.CCMap(pather, gruid.Point{X: x, Y: y})
			region := make([]TilePos, 0, len(cc))
			for _, p := range cc {
				seen[p.Y*grid.Width+p.X] = true
				region = append(region, TilePos{X: p.X, Y: p.Y})
			}
			regions = append(regions, region)
		}
	}

	sort.SliceStable(regions, func(i, j int) bool {
		return len(regions[i]) > len(regions[j])
	})
	return regions
}

func clampFloat(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
