package saves

import "context"

// Store is a backend for save slots.
type Store interface {
	Save(ctx context.Context, state *SaveState) error
	Load(ctx context.Context, slot int) (*SaveState, error)
	Delete(ctx context.Context, slot int) error
	Close() error
}
