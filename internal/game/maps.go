package game

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/obsidianarcane/internal/gamedata"
	"github.com/samdwyer/obsidianarcane/internal/telemetry"
	"github.com/samdwyer/obsidianarcane/internal/village"
	"github.com/samdwyer/obsidianarcane/internal/world"
)

// NewMap builds the map for strategy from seed. Given the same arguments it
// always produces the same layout, which is what makes a save of
// (strategy, seed) enough to restore a map.
func NewMap(ctx context.Context, strategy world.Strategy, seed int64, cfg Config, buildings *gamedata.BuildingRegistry) (world.Map, error) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.new_map")
	defer span.End()
	span.SetAttributes(
		attribute.String("map.strategy", string(strategy)),
		attribute.Int64("map.seed", seed),
	)

	switch strategy {
	case world.StrategyRooms:
		graph, err := world.NewRoomGraph(ctx, seed, cfg.Rooms)
		if err != nil {
			return nil, err
		}
		return graph, nil
	case world.StrategyCave:
		return world.NewCaveMap(ctx, seed, cfg.Cave), nil
	case world.StrategyVillage:
		if buildings == nil {
			return nil, fmt.Errorf("village map needs a building registry")
		}
		m, err := village.NewMap(buildings, seed)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown map strategy %q", strategy)
	}
}
