// Package world provides procedural map generation and the spatial queries
// the rest of the game uses to move around a generated map.
package world

// Tile represents a single map tile.
type Tile rune

const (
	// TileFloor is walkable ground inside a room or cave.
	TileFloor Tile = '.'
	// TileWall is an impassable wall tile.
	TileWall Tile = '#'
	// TileTunnelEntrance marks a door opening cut into a room perimeter.
	TileTunnelEntrance Tile = '+'
	// TileTunnelFloor is walkable tunnel ground.
	TileTunnelFloor Tile = ','
	// TileTunnelWall is the solid lining of a tunnel.
	TileTunnelWall Tile = '%'
	// TileParkourPlatform is a walkable ledge.
	TileParkourPlatform Tile = '='
)

// IsSolid returns true if the tile blocks movement.
func (t Tile) IsSolid() bool {
	return t == TileWall || t == TileTunnelWall
}

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return !t.IsSolid()
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}

// String returns a human-readable tile name.
func (t Tile) String() string {
	switch t {
	case TileFloor:
		return "floor"
	case TileWall:
		return "wall"
	case TileTunnelEntrance:
		return "tunnel_entrance"
	case TileTunnelFloor:
		return "tunnel_floor"
	case TileTunnelWall:
		return "tunnel_wall"
	case TileParkourPlatform:
		return "parkour_platform"
	default:
		return "unknown"
	}
}
