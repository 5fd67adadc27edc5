package saves

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// JSONStore keeps every slot in a single local JSON file.
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     *jsonData
}

// jsonData is the on-disk layout, keyed by slot number.
type jsonData struct {
	Slots map[string]*SaveState `json:"slots"`
}

// NewJSONStore opens the store at filePath, creating it if missing.
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{
		filePath: filePath,
		data:     &jsonData{Slots: make(map[string]*SaveState)},
	}

	if _, err := os.Stat(filePath); err == nil {
		if err := store.loadFromFile(); err != nil {
			return nil, fmt.Errorf("failed to load save file: %w", err)
		}
	} else {
		if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create save directory: %w", err)
		}
		if err := store.saveToFile(); err != nil {
			return nil, fmt.Errorf("failed to create save file: %w", err)
		}
	}

	return store, nil
}

func (js *JSONStore) loadFromFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	content, err := os.ReadFile(js.filePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(content, js.data); err != nil {
		return err
	}
	if js.data.Slots == nil {
		js.data.Slots = make(map[string]*SaveState)
	}
	return nil
}

func (js *JSONStore) saveToFile() error {
	js.mutex.RLock()
	content, err := json.MarshalIndent(js.data, "", "  ")
	js.mutex.RUnlock()
	if err != nil {
		return err
	}

	// Write then rename so a crash never leaves a truncated file
	tmp := js.filePath + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, js.filePath)
}

// Save stores state under its slot.
func (js *JSONStore) Save(ctx context.Context, state *SaveState) error {
	if !ValidSlot(state.Slot) {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, state.Slot)
	}

	js.mutex.Lock()
	js.data.Slots[strconv.Itoa(state.Slot)] = state.Copy()
	js.mutex.Unlock()

	return js.saveToFile()
}

// Load returns the save in slot.
func (js *JSONStore) Load(ctx context.Context, slot int) (*SaveState, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	state, exists := js.data.Slots[strconv.Itoa(slot)]
	if !exists {
		return nil, fmt.Errorf("%w: %d", ErrSlotEmpty, slot)
	}
	return state.Copy(), nil
}

// Delete removes the save in slot.
func (js *JSONStore) Delete(ctx context.Context, slot int) error {
	key := strconv.Itoa(slot)

	js.mutex.Lock()
	_, exists := js.data.Slots[key]
	delete(js.data.Slots, key)
	js.mutex.Unlock()

	if !exists {
		return fmt.Errorf("%w: %d", ErrSlotEmpty, slot)
	}
	return js.saveToFile()
}

// Close is a no-op for the JSON store.
func (js *JSONStore) Close() error {
	return nil
}
