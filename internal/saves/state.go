// Package saves persists game save slots. A slot stores the map seed and
// strategy, which is all that is needed to rebuild the map exactly.
package saves

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/samdwyer/obsidianarcane/internal/world"
)

// MaxSlots is the number of save slots, numbered from 1.
const MaxSlots = 4

var (
	// ErrInvalidSlot is returned for slot numbers outside [1, MaxSlots].
	ErrInvalidSlot = errors.New("invalid save slot")
	// ErrSlotEmpty is returned when loading a slot with no save.
	ErrSlotEmpty = errors.New("save slot is empty")
)

// SaveState is one saved game.
type SaveState struct {
	ID          uuid.UUID      `json:"id"`
	Slot        int            `json:"slot"`
	Name        string         `json:"name"`
	VillageName string         `json:"villageName"`
	Strategy    world.Strategy `json:"strategy"`
	Seed        int64          `json:"seed"`
	PlayerX     float64        `json:"playerX"`
	PlayerY     float64        `json:"playerY"`
	PlayTime    float64        `json:"playTime"` // Seconds
	SavedAt     time.Time      `json:"savedAt"`
}

// NewSaveState creates a save with a fresh ID and a default name.
func NewSaveState(strategy world.Strategy, seed int64, player world.Point) *SaveState {
	now := time.Now()
	return &SaveState{
		ID:       uuid.New(),
		Name:     "Game " + now.Format("2006-01-02 15:04"),
		Strategy: strategy,
		Seed:     seed,
		PlayerX:  player.X,
		PlayerY:  player.Y,
		SavedAt:  now,
	}
}

// PlayerPosition returns the saved player position.
func (s *SaveState) PlayerPosition() world.Point {
	return world.Point{X: s.PlayerX, Y: s.PlayerY}
}

// Copy returns an independent copy of the save.
func (s *SaveState) Copy() *SaveState {
	c := *s
	return &c
}

// ValidSlot reports whether slot is a usable slot number.
func ValidSlot(slot int) bool {
	return slot >= 1 && slot <= MaxSlots
}
