package world

import (
	"context"
	"math/rand"
)

// CaveConfig holds the parameters of a cave map.
type CaveConfig struct {
	Width             int
	Height            int
	Density           float64
	Threshold         int
	Iterations        int
	KeepLargestRegion bool
}

// DefaultCaveConfig returns the 50x30 cave used by the game.
func DefaultCaveConfig() CaveConfig {
	return CaveConfig{
		Width:      50,
		Height:     30,
		Density:    DefaultCaveDensity,
		Threshold:  DefaultCaveThreshold,
		Iterations: DefaultCaveIterations,
	}
}

// CaveMap is a Map backed by a single cellular automata grid.
type CaveMap struct {
	cfg  CaveConfig
	seed int64
	gen  *CaveGenerator
	grid *Grid
	rng  *rand.Rand
}

// NewCaveMap generates a cave map from seed.
func NewCaveMap(ctx context.Context, seed int64, cfg CaveConfig) *CaveMap {
	m := &CaveMap{cfg: cfg}
	m.RegenerateWithSeed(ctx, seed)
	return m
}

// Seed returns the seed the current layout was generated from.
func (m *CaveMap) Seed() int64 { return m.seed }

// Grid returns the current cave grid.
func (m *CaveMap) Grid() *Grid { return m.grid }

// Regenerate rebuilds the cave from the stored seed.
func (m *CaveMap) Regenerate(ctx context.Context) {
	m.RegenerateWithSeed(ctx, m.seed)
}

// RegenerateWithSeed replaces the stored seed and rebuilds the cave.
func (m *CaveMap) RegenerateWithSeed(ctx context.Context, seed int64) {
	opts := []CaveOption{WithSeed(seed)}
	if m.cfg.KeepLargestRegion {
		opts = append(opts, WithKeepLargestRegion())
	}
	gen := NewCaveGenerator(m.cfg.Width, m.cfg.Height, opts...)
	gen.SetInitialDensity(m.cfg.Density)
	gen.SetWallThreshold(m.cfg.Threshold)
	gen.SetIterations(m.cfg.Iterations)

	m.seed = seed
	m.gen = gen
	m.grid = gen.Generate(ctx)
	m.rng = rand.New(rand.NewSource(seed))
}

// IsCollision reports whether the world position is solid.
func (m *CaveMap) IsCollision(worldX, worldY float64) bool {
	return m.grid.At(WorldToTile(worldX), WorldToTile(worldY)).IsSolid()
}

// FindValidSpawnPosition samples random tiles, then falls back to the
// largest open region, then to the map centre.
func (m *CaveMap) FindValidSpawnPosition() Point {
	for i := 0; i < 100; i++ {
		x := m.rng.Intn(m.grid.Width)
		y := m.rng.Intn(m.grid.Height)
		if m.grid.At(x, y).IsPassable() {
			return Point{X: TileCenter(x), Y: TileCenter(y)}
		}
	}

	if regions := FloorRegions(m.grid); len(regions) > 0 {
		p := regions[0][0]
		return Point{X: TileCenter(p.X), Y: TileCenter(p.Y)}
	}
	return Point{X: TileCenter(m.grid.Width / 2), Y: TileCenter(m.grid.Height / 2)}
}

// TileAt returns the tile at a tile coordinate.
func (m *CaveMap) TileAt(tileX, tileY int) Tile {
	return m.grid.At(tileX, tileY)
}

// Bounds returns the map size in tiles.
func (m *CaveMap) Bounds() (width, height int) {
	return m.grid.Width, m.grid.Height
}
