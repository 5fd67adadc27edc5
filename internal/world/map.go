package world

import (
	"context"
	"fmt"
)

// Map is the query surface every map strategy exposes to the game loop.
type Map interface {
	Seed() int64
	Regenerate(ctx context.Context)
	RegenerateWithSeed(ctx context.Context, seed int64)
	IsCollision(worldX, worldY float64) bool
	FindValidSpawnPosition() Point
	TileAt(tileX, tileY int) Tile
	Bounds() (width, height int)
}

var (
	_ Map = (*RoomGraph)(nil)
	_ Map = (*CaveMap)(nil)
)

// Strategy names a map generation strategy.
type Strategy string

const (
	StrategyRooms   Strategy = "rooms"
	StrategyCave    Strategy = "cave"
	StrategyVillage Strategy = "village"
)

// ParseStrategy validates a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyRooms, StrategyCave, StrategyVillage:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown map strategy %q", s)
	}
}
