package world

import "math"

// TileSize is the edge length of one tile in world units.
const TileSize = 32.0

// Point is a position in world units.
type Point struct {
	X, Y float64
}

// WorldToTile converts a world coordinate to the index of the tile containing it.
func WorldToTile(v float64) int {
	return int(math.Floor(v / TileSize))
}

// TileToWorld returns the world coordinate of a tile's lower edge.
func TileToWorld(t int) float64 {
	return float64(t) * TileSize
}

// TileCenter returns the world coordinate of a tile's centre.
func TileCenter(t int) float64 {
	return float64(t)*TileSize + TileSize/2
}

// Direction is one of the four room connection sides.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// Directions lists every direction in connection order.
var Directions = [4]Direction{North, South, East, West}

// Opposite returns the direction facing back.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// Delta returns the grid step for the direction. North is +y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, 1
	case South:
		return 0, -1
	case East:
		return 1, 0
	default:
		return -1, 0
	}
}

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// TilePos addresses a tile by integer grid coordinates.
type TilePos struct {
	X, Y int
}
