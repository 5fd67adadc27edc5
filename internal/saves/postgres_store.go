package saves

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/samdwyer/obsidianarcane/internal/world"
)

// PostgresStore keeps save slots in a PostgreSQL table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to PostgreSQL and creates the schema.
func NewPostgresStore(ctx context.Context, connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (ps *PostgresStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS save_slots (
		slot INTEGER PRIMARY KEY CHECK (slot BETWEEN 1 AND 4),
		id UUID NOT NULL,
		name TEXT NOT NULL,
		village_name TEXT NOT NULL DEFAULT '',
		strategy TEXT NOT NULL,
		seed BIGINT NOT NULL,
		player_x DOUBLE PRECISION NOT NULL,
		player_y DOUBLE PRECISION NOT NULL,
		play_time DOUBLE PRECISION NOT NULL DEFAULT 0,
		saved_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	);
	`
	_, err := ps.db.ExecContext(ctx, schema)
	return err
}

// Save upserts state into its slot.
func (ps *PostgresStore) Save(ctx context.Context, state *SaveState) error {
	if !ValidSlot(state.Slot) {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, state.Slot)
	}

	query := `
	INSERT INTO save_slots (slot, id, name, village_name, strategy, seed, player_x, player_y, play_time, saved_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (slot)
	DO UPDATE SET
		id = $2, name = $3, village_name = $4, strategy = $5, seed = $6,
		player_x = $7, player_y = $8, play_time = $9, saved_at = $10
	`
	_, err := ps.db.ExecContext(ctx, query,
		state.Slot, state.ID.String(), state.Name, state.VillageName, string(state.Strategy),
		state.Seed, state.PlayerX, state.PlayerY, state.PlayTime, state.SavedAt)
	if err != nil {
		return fmt.Errorf("failed to save slot %d: %w", state.Slot, err)
	}
	return nil
}

// Load reads the save in slot.
func (ps *PostgresStore) Load(ctx context.Context, slot int) (*SaveState, error) {
	query := `SELECT slot, id, name, village_name, strategy, seed, player_x, player_y, play_time, saved_at FROM save_slots WHERE slot = $1`

	var state SaveState
	var id, strategy string
	err := ps.db.QueryRowContext(ctx, query, slot).Scan(
		&state.Slot, &id, &state.Name, &state.VillageName, &strategy,
		&state.Seed, &state.PlayerX, &state.PlayerY, &state.PlayTime, &state.SavedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", ErrSlotEmpty, slot)
		}
		return nil, fmt.Errorf("failed to load slot %d: %w", slot, err)
	}

	if state.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("slot %d has a malformed id: %w", slot, err)
	}
	state.Strategy = world.Strategy(strategy)
	return &state, nil
}

// Delete removes the save in slot.
func (ps *PostgresStore) Delete(ctx context.Context, slot int) error {
	res, err := ps.db.ExecContext(ctx, `DELETE FROM save_slots WHERE slot = $1`, slot)
	if err != nil {
		return fmt.Errorf("failed to delete slot %d: %w", slot, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrSlotEmpty, slot)
	}
	return nil
}

// Close closes the database connection.
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
