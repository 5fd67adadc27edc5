package world

import (
	"context"
	"testing"
)

func TestCaveReproducibility(t *testing.T) {
	ctx := context.Background()

	g1 := NewCaveGenerator(50, 30, WithSeed(12345))
	g2 := NewCaveGenerator(50, 30, WithSeed(12345))

	c1 := g1.Generate(ctx)
	c2 := g2.Generate(ctx)

	if !c1.Equal(c2) {
		t.Fatalf("Caves with the same seed differ:\n%s\nvs\n%s", c1, c2)
	}
}

func TestCaveSetSeedRestartsStream(t *testing.T) {
	ctx := context.Background()
	g := NewCaveGenerator(40, 25, WithSeed(99))

	first := g.Generate(ctx)
	g.SetSeed(99)
	second := g.Generate(ctx)

	if !first.Equal(second) {
		t.Error("SetSeed should reproduce the first generation")
	}
}

func TestCaveBorderIsWall(t *testing.T) {
	ctx := context.Background()

	for _, density := range []float64{0, 0.3, 0.45, 0.7, 1} {
		for seed := int64(0); seed < 10; seed++ {
			g := NewCaveGenerator(30, 20, WithSeed(seed))
			g.SetInitialDensity(density)
			grid := g.Generate(ctx)

			for y := 0; y < grid.Height; y++ {
				for x := 0; x < grid.Width; x++ {
					if grid.IsBorder(x, y) && grid.Tiles[y][x] != TileWall {
						t.Fatalf("density %.2f seed %d: border (%d,%d) is %v", density, seed, x, y, grid.Tiles[y][x])
					}
				}
			}
		}
	}
}

func TestCaveWallPercentageScenario(t *testing.T) {
	ctx := context.Background()

	gen := func() float64 {
		g := NewCaveGenerator(50, 30, WithSeed(7))
		g.SetInitialDensity(0.45)
		g.SetWallThreshold(4)
		g.SetIterations(5)
		return WallPercentage(g.Generate(ctx))
	}

	// Out-of-bounds neighbors count as walls and a cell turns to wall at
	// four or more wall neighbors, so these parameters settle mostly solid.
	pct := gen()
	if pct < 0.7 || pct >= 1 {
		t.Errorf("WallPercentage = %.3f, want in [0.70, 1.00)", pct)
	}
	if again := gen(); again != pct {
		t.Errorf("WallPercentage not reproducible: %v != %v", pct, again)
	}
}

func TestCaveNoEnclosedFloor(t *testing.T) {
	ctx := context.Background()

	for seed := int64(0); seed < 20; seed++ {
		grid := NewCaveGenerator(50, 30, WithSeed(seed)).Generate(ctx)
		for y := 1; y < grid.Height-1; y++ {
			for x := 1; x < grid.Width-1; x++ {
				if grid.Tiles[y][x] == TileFloor && countWallNeighbors(grid, x, y) == 8 {
					t.Fatalf("seed %d: enclosed floor left at (%d,%d)", seed, x, y)
				}
			}
		}
	}
}

func TestCaveExtremeDensities(t *testing.T) {
	ctx := context.Background()

	full := NewCaveGenerator(20, 20, WithSeed(1))
	full.SetInitialDensity(1)
	if pct := WallPercentage(full.Generate(ctx)); pct != 1 {
		t.Errorf("density 1: WallPercentage = %v, want 1", pct)
	}

	open := NewCaveGenerator(20, 20, WithSeed(1))
	open.SetInitialDensity(0)
	open.SetWallThreshold(8)
	grid := open.Generate(ctx)
	if grid.Tiles[10][10] != TileFloor {
		t.Errorf("density 0, threshold 8: centre should stay floor, got %v", grid.Tiles[10][10])
	}
}

func TestCaveSettersClamp(t *testing.T) {
	g := NewCaveGenerator(10, 10, WithSeed(1))

	tests := []struct {
		name string
		set  func()
		got  func() float64
		want float64
	}{
		{"density below", func() { g.SetInitialDensity(-0.5) }, g.InitialDensity, 0},
		{"density above", func() { g.SetInitialDensity(1.5) }, g.InitialDensity, 1},
		{"density inside", func() { g.SetInitialDensity(0.25) }, g.InitialDensity, 0.25},
		{"threshold below", func() { g.SetWallThreshold(-3) }, func() float64 { return float64(g.WallThreshold()) }, 0},
		{"threshold above", func() { g.SetWallThreshold(12) }, func() float64 { return float64(g.WallThreshold()) }, 8},
		{"iterations zero", func() { g.SetIterations(0) }, func() float64 { return float64(g.Iterations()) }, 1},
		{"iterations set", func() { g.SetIterations(7) }, func() float64 { return float64(g.Iterations()) }, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.set()
			if got := tt.got(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerateWithParamsRestores(t *testing.T) {
	g := NewCaveGenerator(30, 20, WithSeed(3))
	g.GenerateWithParams(context.Background(), 0.6, 5, 2)

	if g.InitialDensity() != DefaultCaveDensity {
		t.Errorf("InitialDensity = %v, want %v", g.InitialDensity(), DefaultCaveDensity)
	}
	if g.WallThreshold() != DefaultCaveThreshold {
		t.Errorf("WallThreshold = %d, want %d", g.WallThreshold(), DefaultCaveThreshold)
	}
	if g.Iterations() != DefaultCaveIterations {
		t.Errorf("Iterations = %d, want %d", g.Iterations(), DefaultCaveIterations)
	}
}

func TestFloorRegions(t *testing.T) {
	grid := NewGrid(7, 5, TileWall)
	// Three-tile corridor on the left, single cell on the right.
	grid.Set(1, 2, TileFloor)
	grid.Set(2, 2, TileFloor)
	grid.Set(3, 2, TileFloor)
	grid.Set(5, 2, TileFloor)

	regions := FloorRegions(grid)
	if len(regions) != 2 {
		t.Fatalf("FloorRegions returned %d regions, want 2", len(regions))
	}
	if len(regions[0]) != 3 || len(regions[1]) != 1 {
		t.Errorf("region sizes = %d, %d, want 3, 1", len(regions[0]), len(regions[1]))
	}
	if regions[1][0] != (TilePos{X: 5, Y: 2}) {
		t.Errorf("small region = %v, want (5,2)", regions[1][0])
	}
}

func TestCaveKeepLargestRegion(t *testing.T) {
	ctx := context.Background()

	for seed := int64(0); seed < 10; seed++ {
		grid := NewCaveGenerator(50, 30, WithSeed(seed), WithKeepLargestRegion()).Generate(ctx)
		if n := len(FloorRegions(grid)); n > 1 {
			t.Errorf("seed %d: %d floor regions remain, want at most 1", seed, n)
		}
	}
}

func TestCaveMapQueries(t *testing.T) {
	ctx := context.Background()
	m := NewCaveMap(ctx, 7, DefaultCaveConfig())

	if m.Seed() != 7 {
		t.Errorf("Seed() = %d, want 7", m.Seed())
	}

	w, h := m.Bounds()
	if w != 50 || h != 30 {
		t.Errorf("Bounds() = %dx%d, want 50x30", w, h)
	}

	if !m.IsCollision(-1, -1) {
		t.Error("IsCollision outside the map should be true")
	}
	if !m.IsCollision(TileCenter(0), TileCenter(0)) {
		t.Error("corner tile should be solid")
	}

	for i := 0; i < 20; i++ {
		p := m.FindValidSpawnPosition()
		if m.IsCollision(p.X, p.Y) {
			t.Fatalf("spawn %v collides", p)
		}
	}

	before := m.Grid().Clone()
	m.Regenerate(ctx)
	if !before.Equal(m.Grid()) {
		t.Error("Regenerate should reproduce the same cave")
	}

	m.RegenerateWithSeed(ctx, 8)
	if m.Seed() != 8 {
		t.Errorf("Seed() after RegenerateWithSeed = %d, want 8", m.Seed())
	}
}
