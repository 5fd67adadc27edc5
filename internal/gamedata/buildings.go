package gamedata

import "github.com/gdamore/tcell/v2"

// Building identifiers used by the village map.
const (
	BuildingTownHall = "town_hall"
	BuildingHouse    = "house"
)

// BuildingDef defines a building type loaded from JSON.
type BuildingDef struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Glyph        string  `json:"glyph"`       // Single character for rendering
	Color        string  `json:"color"`       // Hex color code (e.g., "#CC6633")
	WidthTiles   int     `json:"widthTiles"`  // Footprint width in tiles
	HeightTiles  int     `json:"heightTiles"` // Footprint height in tiles
	Cost         int     `json:"cost"`
	BuildTime    float64 `json:"buildTime"` // Seconds until construction completes
	Unique       bool    `json:"unique,omitempty"`
	MaxResidents int     `json:"maxResidents,omitempty"`
}

// GlyphRune returns the glyph as a rune for rendering.
func (b *BuildingDef) GlyphRune() rune {
	if len(b.Glyph) == 0 {
		return '?'
	}
	return rune(b.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (b *BuildingDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(b.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

// BuildingsFile represents the structure of buildings.json.
type BuildingsFile struct {
	Buildings []BuildingDef `json:"buildings"`
}

// LoadBuildings loads building definitions from the embedded buildings.json file.
func LoadBuildings() ([]BuildingDef, error) {
	file, err := Load[BuildingsFile]("buildings.json")
	if err != nil {
		return nil, err
	}
	return file.Buildings, nil
}
