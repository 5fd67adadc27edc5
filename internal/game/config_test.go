package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/obsidianarcane/internal/world"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvSeed, EnvMap, EnvSavePath, EnvDatabaseURL, EnvCaveDensity,
		EnvCaveThreshold, EnvCaveIterations, EnvExtraConnectionChance, EnvVillageName,
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, int64(0), cfg.Seed)
	assert.Equal(t, world.StrategyRooms, cfg.Strategy)
	assert.Equal(t, DefaultSavePath, cfg.SavePath)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, world.DefaultRoomGraphConfig(), cfg.Rooms)
	assert.Equal(t, world.DefaultCaveConfig(), cfg.Cave)
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvSeed, "1234")
	t.Setenv(EnvMap, "cave")
	t.Setenv(EnvSavePath, "/tmp/obsidian.json")
	t.Setenv(EnvDatabaseURL, "postgres://localhost/obsidian")
	t.Setenv(EnvCaveDensity, "0.5")
	t.Setenv(EnvCaveThreshold, "5")
	t.Setenv(EnvCaveIterations, "3")
	t.Setenv(EnvExtraConnectionChance, "0")
	t.Setenv(EnvVillageName, "Ashford")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, int64(1234), cfg.Seed)
	assert.Equal(t, world.StrategyCave, cfg.Strategy)
	assert.Equal(t, "/tmp/obsidian.json", cfg.SavePath)
	assert.Equal(t, "postgres://localhost/obsidian", cfg.DatabaseURL)
	assert.InDelta(t, 0.5, cfg.Cave.Density, 1e-9)
	assert.Equal(t, 5, cfg.Cave.Threshold)
	assert.Equal(t, 3, cfg.Cave.Iterations)
	assert.Zero(t, cfg.Rooms.ExtraConnectionChance)
	assert.Equal(t, "Ashford", cfg.VillageName)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{EnvSeed, "abc"},
		{EnvMap, "forest"},
		{EnvCaveDensity, "dense"},
		{EnvCaveThreshold, "4.5"},
		{EnvCaveIterations, "many"},
		{EnvExtraConnectionChance, "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
