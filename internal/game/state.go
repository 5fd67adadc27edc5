// Package game provides the main game loop and state management.
package game

// State represents the current game state.
type State int

const (
	// StateExplore is the default mode where arrow keys move the player.
	StateExplore State = iota
	// StateSave waits for a slot number to save into.
	StateSave
	// StateLoad waits for a slot number to load from.
	StateLoad
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateSave:
		return "save"
	case StateLoad:
		return "load"
	default:
		return "unknown"
	}
}
