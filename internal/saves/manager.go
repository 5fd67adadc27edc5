package saves

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/obsidianarcane/internal/telemetry"
)

// Manager validates slot numbers and caches loaded saves in front of a Store.
// It is constructed explicitly and passed to whoever needs it.
type Manager struct {
	store Store
	cache map[int]*SaveState
}

// NewManager wraps store and warms the cache with every existing slot.
func NewManager(ctx context.Context, store Store) *Manager {
	m := &Manager{
		store: store,
		cache: make(map[int]*SaveState),
	}
	for slot := 1; slot <= MaxSlots; slot++ {
		if _, err := m.Load(ctx, slot); err != nil && !errors.Is(err, ErrSlotEmpty) {
			log.Printf("Warning: could not read save slot %d: %v", slot, err)
		}
	}
	return m
}

// Save writes state into slot, stamping the save time.
func (m *Manager) Save(ctx context.Context, slot int, state *SaveState) error {
	tracer := telemetry.Tracer("saves")
	ctx, span := tracer.Start(ctx, "saves.save")
	defer span.End()

	if !ValidSlot(slot) {
		return fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidSlot, slot, MaxSlots)
	}

	state = state.Copy()
	state.Slot = slot
	state.SavedAt = time.Now()
	if err := m.store.Save(ctx, state); err != nil {
		span.RecordError(err)
		return err
	}
	m.cache[slot] = state

	span.SetAttributes(
		attribute.Int("save.slot", slot),
		attribute.Int64("save.seed", state.Seed),
		attribute.String("save.strategy", string(state.Strategy)),
	)
	return nil
}

// Load returns a copy of the save in slot.
func (m *Manager) Load(ctx context.Context, slot int) (*SaveState, error) {
	if !ValidSlot(slot) {
		return nil, fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidSlot, slot, MaxSlots)
	}
	if state, ok := m.cache[slot]; ok {
		return state.Copy(), nil
	}

	state, err := m.store.Load(ctx, slot)
	if err != nil {
		return nil, err
	}
	m.cache[slot] = state
	return state.Copy(), nil
}

// Delete removes the save in slot.
func (m *Manager) Delete(ctx context.Context, slot int) error {
	if !ValidSlot(slot) {
		return fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidSlot, slot, MaxSlots)
	}
	delete(m.cache, slot)
	return m.store.Delete(ctx, slot)
}

// HasSave reports whether slot holds a save.
func (m *Manager) HasSave(ctx context.Context, slot int) bool {
	_, err := m.Load(ctx, slot)
	return err == nil
}

// All returns every slot in order; empty slots are nil.
func (m *Manager) All(ctx context.Context) [MaxSlots]*SaveState {
	var out [MaxSlots]*SaveState
	for slot := 1; slot <= MaxSlots; slot++ {
		if state, err := m.Load(ctx, slot); err == nil {
			out[slot-1] = state
		}
	}
	return out
}

// ClearCache drops cached saves so the next load reads the store.
func (m *Manager) ClearCache() {
	clear(m.cache)
}
