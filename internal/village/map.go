package village

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/obsidianarcane/internal/gamedata"
	"github.com/samdwyer/obsidianarcane/internal/world"
)

const (
	// Default village dimensions in tiles.
	DefaultWidth  = 50
	DefaultHeight = 30
)

var (
	// ErrOutOfBounds is returned when a footprint leaves the map.
	ErrOutOfBounds = errors.New("building outside the map")
	// ErrOccupied is returned when a footprint overlaps an occupied tile.
	ErrOccupied = errors.New("tiles already occupied")
	// ErrUnique is returned when a second copy of a unique building is placed.
	ErrUnique = errors.New("building is unique")
)

// Map is the buildable village area. Every tile is free floor until a
// building occupies it.
type Map struct {
	width     int
	height    int
	seed      int64
	occupied  [][]bool // [x][y]
	buildings []*Building
	registry  *gamedata.BuildingRegistry
}

// NewMap creates an empty village with a completed town hall at the centre.
func NewMap(registry *gamedata.BuildingRegistry, seed int64) (*Map, error) {
	if registry.GetByID(gamedata.BuildingTownHall) == nil {
		return nil, fmt.Errorf("building registry has no %q", gamedata.BuildingTownHall)
	}
	m := &Map{
		width:    DefaultWidth,
		height:   DefaultHeight,
		seed:     seed,
		registry: registry,
	}
	m.reset()
	return m, nil
}

func (m *Map) reset() {
	m.occupied = make([][]bool, m.width)
	for x := range m.occupied {
		m.occupied[x] = make([]bool, m.height)
	}
	m.buildings = nil

	def := m.registry.GetByID(gamedata.BuildingTownHall)
	hall := NewBuilding(def, m.width/2-def.WidthTiles/2, m.height/2-def.HeightTiles/2)
	hall.Complete()
	// The centre of an empty map always fits the hall.
	_ = m.AddBuilding(hall)
}

// Seed returns the stored seed. Village layout does not depend on it.
func (m *Map) Seed() int64 { return m.seed }

// Regenerate clears every building except a fresh town hall.
func (m *Map) Regenerate(ctx context.Context) {
	m.reset()
}

// RegenerateWithSeed stores seed and resets the village.
func (m *Map) RegenerateWithSeed(ctx context.Context, seed int64) {
	m.seed = seed
	m.reset()
}

// AddBuilding places b, marking its footprint occupied.
func (m *Map) AddBuilding(b *Building) error {
	if b == nil {
		return errors.New("nil building")
	}
	if b.Def.Unique && slices.ContainsFunc(m.buildings, func(o *Building) bool { return o.Def.ID == b.Def.ID }) {
		return fmt.Errorf("%w: %s", ErrUnique, b.Def.ID)
	}

	x0, y0, w, h := b.Footprint()
	for x := x0; x < x0+w; x++ {
		for y := y0; y < y0+h; y++ {
			if !m.inBounds(x, y) {
				return fmt.Errorf("%w: %s at (%d,%d)", ErrOutOfBounds, b.Def.ID, x0, y0)
			}
			if m.occupied[x][y] {
				return fmt.Errorf("%w: %s at (%d,%d)", ErrOccupied, b.Def.ID, x, y)
			}
		}
	}

	m.buildings = append(m.buildings, b)
	m.setFootprint(b, true)
	return nil
}

// PlaceBuilding creates a building of type id at a tile and adds it.
func (m *Map) PlaceBuilding(id string, tileX, tileY int) (*Building, error) {
	def := m.registry.GetByID(id)
	if def == nil {
		return nil, fmt.Errorf("unknown building %q", id)
	}
	b := NewBuilding(def, tileX, tileY)
	if err := m.AddBuilding(b); err != nil {
		return nil, err
	}
	return b, nil
}

// RemoveBuilding removes b and frees its footprint. It returns false if b
// is not on the map.
func (m *Map) RemoveBuilding(b *Building) bool {
	i := slices.Index(m.buildings, b)
	if i < 0 {
		return false
	}
	m.buildings = slices.Delete(m.buildings, i, i+1)
	m.setFootprint(b, false)
	return true
}

func (m *Map) setFootprint(b *Building, occupied bool) {
	x0, y0, w, h := b.Footprint()
	for x := x0; x < x0+w; x++ {
		for y := y0; y < y0+h; y++ {
			m.SetTileOccupied(x, y, occupied)
		}
	}
}

// Update advances construction of every building.
func (m *Map) Update(dt float64) {
	for _, b := range m.buildings {
		b.Update(dt)
	}
}

// Buildings returns a copy of the building list.
func (m *Map) Buildings() []*Building {
	return slices.Clone(m.buildings)
}

// BuildingAt returns the building covering a tile, or nil.
func (m *Map) BuildingAt(tileX, tileY int) *Building {
	for _, b := range m.buildings {
		if b.Contains(tileX, tileY) {
			return b
		}
	}
	return nil
}

// TownHall returns the town hall, or nil.
func (m *Map) TownHall() *Building {
	for _, b := range m.buildings {
		if b.Def.ID == gamedata.BuildingTownHall {
			return b
		}
	}
	return nil
}

func (m *Map) inBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// SetTileOccupied marks a tile. Out of bounds tiles are ignored.
func (m *Map) SetTileOccupied(tileX, tileY int, occupied bool) {
	if m.inBounds(tileX, tileY) {
		m.occupied[tileX][tileY] = occupied
	}
}

// IsTileOccupied reports whether a tile is taken. Tiles outside the map
// count as occupied.
func (m *Map) IsTileOccupied(tileX, tileY int) bool {
	if !m.inBounds(tileX, tileY) {
		return true
	}
	return m.occupied[tileX][tileY]
}

// IsCollision reports whether a world position is blocked.
func (m *Map) IsCollision(worldX, worldY float64) bool {
	return m.IsTileOccupied(world.WorldToTile(worldX), world.WorldToTile(worldY))
}

// FindValidSpawnPosition returns the first free tile centre found walking
// outward from the middle of the map.
func (m *Map) FindValidSpawnPosition() world.Point {
	cx, cy := m.width/2, m.height/2
	for r := 0; r < max(m.width, m.height); r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if max(abs(dx), abs(dy)) != r {
					continue
				}
				if !m.IsTileOccupied(cx+dx, cy+dy) {
					return world.Point{X: world.TileCenter(cx + dx), Y: world.TileCenter(cy + dy)}
				}
			}
		}
	}
	return world.Point{X: world.TileCenter(cx), Y: world.TileCenter(cy)}
}

// TileAt reports occupied tiles as walls and free tiles as floor.
func (m *Map) TileAt(tileX, tileY int) world.Tile {
	if m.IsTileOccupied(tileX, tileY) {
		return world.TileWall
	}
	return world.TileFloor
}

// OverlayAt returns the glyph and colour of the building covering a tile.
// Buildings still under construction are drawn grey.
func (m *Map) OverlayAt(tileX, tileY int) (rune, tcell.Color, bool) {
	b := m.BuildingAt(tileX, tileY)
	if b == nil {
		return 0, tcell.ColorDefault, false
	}
	if !b.IsBuilt() {
		return b.Def.GlyphRune(), tcell.ColorGray, true
	}
	return b.Def.GlyphRune(), b.Def.TCellColor(), true
}

// Bounds returns the map size in tiles.
func (m *Map) Bounds() (width, height int) {
	return m.width, m.height
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var _ world.Map = (*Map)(nil)
