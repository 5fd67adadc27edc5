// Package village implements the non-procedural village map: a flat
// buildable area with a town hall and the occupancy overlay that buildings
// place on it.
package village

import (
	"fmt"

	"github.com/samdwyer/obsidianarcane/internal/gamedata"
)

// Building is a structure placed on the village map. Its footprint is
// anchored at its lower-left tile.
type Building struct {
	Def          *gamedata.BuildingDef
	TileX, TileY int

	built     bool
	active    bool
	buildTime float64
	elapsed   float64
}

// NewBuilding creates an unbuilt building from a definition.
func NewBuilding(def *gamedata.BuildingDef, tileX, tileY int) *Building {
	return &Building{
		Def:       def,
		TileX:     tileX,
		TileY:     tileY,
		buildTime: def.BuildTime,
	}
}

// Update advances construction by dt seconds.
func (b *Building) Update(dt float64) {
	if b.built || dt <= 0 {
		return
	}
	b.elapsed += dt
	if b.elapsed >= b.buildTime {
		b.Complete()
	}
}

// Complete finishes construction immediately.
func (b *Building) Complete() {
	b.built = true
	b.active = true
	b.elapsed = b.buildTime
}

// IsBuilt reports whether construction has finished.
func (b *Building) IsBuilt() bool { return b.built }

// IsActive reports whether the building is operating.
func (b *Building) IsActive() bool { return b.active }

// SetActive toggles a finished building on or off.
func (b *Building) SetActive(active bool) {
	b.active = active && b.built
}

// BuildProgress returns construction progress in [0, 1].
func (b *Building) BuildProgress() float64 {
	if b.built || b.buildTime <= 0 {
		return 1
	}
	return min(b.elapsed/b.buildTime, 1)
}

// Footprint returns the tile rectangle covered by the building.
func (b *Building) Footprint() (x, y, w, h int) {
	return b.TileX, b.TileY, b.Def.WidthTiles, b.Def.HeightTiles
}

// Contains reports whether a tile lies in the footprint.
func (b *Building) Contains(tileX, tileY int) bool {
	return tileX >= b.TileX && tileX < b.TileX+b.Def.WidthTiles &&
		tileY >= b.TileY && tileY < b.TileY+b.Def.HeightTiles
}

// Info returns a one-line status for the HUD.
func (b *Building) Info() string {
	if !b.built {
		return fmt.Sprintf("%s (building: %d%%)", b.Def.Name, int(b.BuildProgress()*100))
	}
	return b.Def.Name
}
