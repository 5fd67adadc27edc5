package game

import (
	"fmt"
	"os"
	"strconv"

	"github.com/samdwyer/obsidianarcane/internal/gamedata"
	"github.com/samdwyer/obsidianarcane/internal/world"
)

// Environment variables read by LoadConfig.
const (
	EnvSeed                  = "OBSIDIAN_SEED"
	EnvMap                   = "OBSIDIAN_MAP"
	EnvSavePath              = "OBSIDIAN_SAVE_PATH"
	EnvDatabaseURL           = "OBSIDIAN_DATABASE_URL"
	EnvCaveDensity           = "OBSIDIAN_CAVE_DENSITY"
	EnvCaveThreshold         = "OBSIDIAN_CAVE_THRESHOLD"
	EnvCaveIterations        = "OBSIDIAN_CAVE_ITERATIONS"
	EnvExtraConnectionChance = "OBSIDIAN_EXTRA_CONNECTION_CHANCE"
	EnvVillageName           = "OBSIDIAN_VILLAGE_NAME"
)

// DefaultSavePath is where the JSON save store lives when no database is set.
const DefaultSavePath = "saves/saves.json"

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible map generation.
	// A seed of 0 means a random seed will be generated.
	Seed     int64
	Strategy world.Strategy

	// SavePath is the JSON save file. Ignored when DatabaseURL is set.
	SavePath    string
	DatabaseURL string

	VillageName string

	Rooms world.RoomGraphConfig
	Cave  world.CaveConfig
}

// DefaultConfig returns the configuration used when no environment is set.
// Room sizes come from the embedded room_sizes.json.
func DefaultConfig() (Config, error) {
	rooms := world.DefaultRoomGraphConfig()
	sizes, err := gamedata.LoadRoomSizes()
	if err != nil {
		return Config{}, fmt.Errorf("failed to load room sizes: %w", err)
	}
	rooms.BaseWidth = sizes.BaseWidth
	rooms.BaseHeight = sizes.BaseHeight
	rooms.SizeWeights = make([]world.SizeWeight, 0, len(sizes.Sizes))
	for _, s := range sizes.Sizes {
		rooms.SizeWeights = append(rooms.SizeWeights, world.SizeWeight{
			Multiplier:  s.Multiplier,
			Probability: s.Probability,
		})
	}

	return Config{
		Strategy:    world.StrategyRooms,
		SavePath:    DefaultSavePath,
		VillageName: "Obsidian",
		Rooms:       rooms,
		Cave:        world.DefaultCaveConfig(),
	}, nil
}

// LoadConfig builds a Config from the defaults overridden by OBSIDIAN_*
// environment variables.
func LoadConfig() (Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return cfg, err
	}

	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}
	if v := os.Getenv(EnvMap); v != "" {
		strategy, err := world.ParseStrategy(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvMap, err)
		}
		cfg.Strategy = strategy
	}
	if v := os.Getenv(EnvSavePath); v != "" {
		cfg.SavePath = v
	}
	cfg.DatabaseURL = os.Getenv(EnvDatabaseURL)
	if v := os.Getenv(EnvVillageName); v != "" {
		cfg.VillageName = v
	}

	if v := os.Getenv(EnvCaveDensity); v != "" {
		density, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvCaveDensity, err)
		}
		cfg.Cave.Density = density
	}
	if v := os.Getenv(EnvCaveThreshold); v != "" {
		threshold, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvCaveThreshold, err)
		}
		cfg.Cave.Threshold = threshold
	}
	if v := os.Getenv(EnvCaveIterations); v != "" {
		iterations, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvCaveIterations, err)
		}
		cfg.Cave.Iterations = iterations
	}
	if v := os.Getenv(EnvExtraConnectionChance); v != "" {
		chance, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvExtraConnectionChance, err)
		}
		cfg.Rooms.ExtraConnectionChance = chance
	}

	if err := cfg.Rooms.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
