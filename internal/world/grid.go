package world

import "strings"

// Grid is a fixed-size 2D array of tiles indexed as Tiles[y][x].
// Row 0 is the bottom of the map.
type Grid struct {
	Width  int
	Height int
	Tiles  [][]Tile
}

// NewGrid creates a grid filled with the given tile.
func NewGrid(width, height int, fill Tile) *Grid {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = fill
		}
	}
	return &Grid{Width: width, Height: height, Tiles: tiles}
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// IsBorder reports whether (x, y) is on the outermost ring of the grid.
func (g *Grid) IsBorder(x, y int) bool {
	return x == 0 || x == g.Width-1 || y == 0 || y == g.Height-1
}

// At returns the tile at (x, y). Positions outside the grid read as walls.
func (g *Grid) At(x, y int) Tile {
	if !g.InBounds(x, y) {
		return TileWall
	}
	return g.Tiles[y][x]
}

// Set stores a tile at (x, y). Out of bounds writes are ignored.
func (g *Grid) Set(x, y int, t Tile) {
	if g.InBounds(x, y) {
		g.Tiles[y][x] = t
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{Width: g.Width, Height: g.Height, Tiles: make([][]Tile, g.Height)}
	for y := range g.Tiles {
		c.Tiles[y] = make([]Tile, g.Width)
		copy(c.Tiles[y], g.Tiles[y])
	}
	return c
}

// Count returns how many cells hold the given tile.
func (g *Grid) Count(t Tile) int {
	n := 0
	for y := range g.Tiles {
		for _, cell := range g.Tiles[y] {
			if cell == t {
				n++
			}
		}
	}
	return n
}

// Equal reports whether two grids have the same size and contents.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.Width != other.Width || g.Height != other.Height {
		return false
	}
	for y := range g.Tiles {
		for x := range g.Tiles[y] {
			if g.Tiles[y][x] != other.Tiles[y][x] {
				return false
			}
		}
	}
	return true
}

// String renders the grid with the top row first, one line per row.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.Width + 1) * g.Height)
	for y := g.Height - 1; y >= 0; y-- {
		for x := 0; x < g.Width; x++ {
			sb.WriteRune(g.Tiles[y][x].Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
