package saves

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/obsidianarcane/internal/world"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "saves", "saves.json")
	store, err := NewJSONStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewManager(context.Background(), store), path
}

func TestValidSlot(t *testing.T) {
	tests := []struct {
		slot int
		want bool
	}{
		{0, false},
		{1, true},
		{4, true},
		{5, false},
		{-1, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidSlot(tt.slot), "ValidSlot(%d)", tt.slot)
	}
}

func TestNewJSONStoreCreatesFile(t *testing.T) {
	_, path := newTestManager(t)
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestManagerSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	state := NewSaveState(world.StrategyRooms, 42, world.Point{X: 48, Y: 80})
	state.VillageName = "Obsidian"
	state.PlayTime = 125.5
	require.NoError(t, m.Save(ctx, 2, state))

	loaded, err := m.Load(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Slot)
	assert.Equal(t, state.ID, loaded.ID)
	assert.Equal(t, int64(42), loaded.Seed)
	assert.Equal(t, world.StrategyRooms, loaded.Strategy)
	assert.Equal(t, "Obsidian", loaded.VillageName)
	assert.Equal(t, world.Point{X: 48, Y: 80}, loaded.PlayerPosition())
	assert.InDelta(t, 125.5, loaded.PlayTime, 1e-9)
	assert.False(t, loaded.SavedAt.IsZero())
}

func TestManagerLoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	require.NoError(t, m.Save(ctx, 1, NewSaveState(world.StrategyCave, 7, world.Point{})))

	first, err := m.Load(ctx, 1)
	require.NoError(t, err)
	first.Seed = 999

	second, err := m.Load(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), second.Seed)
}

func TestManagerInvalidSlot(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	state := NewSaveState(world.StrategyRooms, 1, world.Point{})

	for _, slot := range []int{0, 5, -3} {
		assert.ErrorIs(t, m.Save(ctx, slot, state), ErrInvalidSlot)
		_, err := m.Load(ctx, slot)
		assert.ErrorIs(t, err, ErrInvalidSlot)
		assert.ErrorIs(t, m.Delete(ctx, slot), ErrInvalidSlot)
	}
}

func TestManagerEmptySlot(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	_, err := m.Load(ctx, 3)
	assert.ErrorIs(t, err, ErrSlotEmpty)
	assert.False(t, m.HasSave(ctx, 3))
	assert.ErrorIs(t, m.Delete(ctx, 3), ErrSlotEmpty)
}

func TestManagerDelete(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	require.NoError(t, m.Save(ctx, 4, NewSaveState(world.StrategyVillage, 3, world.Point{})))
	require.True(t, m.HasSave(ctx, 4))

	require.NoError(t, m.Delete(ctx, 4))
	assert.False(t, m.HasSave(ctx, 4))
}

func TestManagerAll(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	require.NoError(t, m.Save(ctx, 1, NewSaveState(world.StrategyRooms, 1, world.Point{})))
	require.NoError(t, m.Save(ctx, 3, NewSaveState(world.StrategyCave, 3, world.Point{})))

	all := m.All(ctx)
	require.NotNil(t, all[0])
	assert.Nil(t, all[1])
	require.NotNil(t, all[2])
	assert.Nil(t, all[3])
	assert.Equal(t, int64(3), all[2].Seed)
}

func TestJSONStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "saves.json")

	store, err := NewJSONStore(path)
	require.NoError(t, err)
	m := NewManager(ctx, store)
	require.NoError(t, m.Save(ctx, 2, NewSaveState(world.StrategyCave, 1234, world.Point{X: 16, Y: 16})))
	require.NoError(t, store.Close())

	reopened, err := NewJSONStore(path)
	require.NoError(t, err)
	m2 := NewManager(ctx, reopened)
	loaded, err := m2.Load(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1234), loaded.Seed)
	assert.Equal(t, world.StrategyCave, loaded.Strategy)
}

func TestJSONStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saves.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewJSONStore(path)
	assert.Error(t, err)
}

func TestSavedSeedRebuildsMap(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	original, err := world.NewRoomGraph(ctx, 42, world.DefaultRoomGraphConfig())
	require.NoError(t, err)
	require.NoError(t, m.Save(ctx, 1, NewSaveState(world.StrategyRooms, original.Seed(), world.Point{})))

	loaded, err := m.Load(ctx, 1)
	require.NoError(t, err)
	rebuilt, err := world.NewRoomGraph(ctx, loaded.Seed, world.DefaultRoomGraphConfig())
	require.NoError(t, err)
	assert.Equal(t, original.Edges(), rebuilt.Edges())
	ow, oh := original.Bounds()
	rw, rh := rebuilt.Bounds()
	assert.Equal(t, ow, rw)
	assert.Equal(t, oh, rh)
}
