package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/ecomkit/storefront-cart/internal/model"
	"github.com/ecomkit/storefront-cart/pkg/database"
)

// SnapshotRepository stores one serialized cart snapshot per cart ID.
// It is the durable stand-in for a per-browser storage entry: reads tolerate
// missing and corrupt rows, and concurrent writers for the same ID follow
// last-writer-wins.
type SnapshotRepository struct {
	pool database.Querier
}

// NewSnapshotRepository creates a SnapshotRepository backed by the given pool.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

// NewSnapshotRepositoryWithPool creates a SnapshotRepository with a custom
// querier. This is primarily used for testing.
func NewSnapshotRepositoryWithPool(pool database.Querier) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

// Load reads the snapshot for the given cart ID. A missing row or corrupt
// payload degrades to the empty state without an error; only infrastructure
// failures are returned, and callers treat those as empty too.
func (r *SnapshotRepository) Load(ctx context.Context, cartID string) (model.CartState, error) {
	query := `SELECT data FROM cart_snapshots WHERE cart_id = $1`

	var data []byte
	err := r.pool.QueryRow(ctx, query, cartID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.EmptyCartState(), nil
		}
		return model.EmptyCartState(), fmt.Errorf("load cart snapshot %s: %w", cartID, err)
	}

	// Unmarshal over the defaults so partial snapshots keep the empty-state
	// values for any missing field.
	state := model.EmptyCartState()
	if err := json.Unmarshal(data, &state); err != nil {
		log.Warn().Err(err).Str("cart_id", cartID).Msg("corrupt cart snapshot, using empty state")
		return model.EmptyCartState(), nil
	}
	if state.Items == nil {
		state.Items = []model.CartItem{}
	}
	state.Loaded = false

	return state, nil
}

// Write upserts the snapshot for the given cart ID. The loaded flag is never
// serialized; it is re-derived on load.
func (r *SnapshotRepository) Write(ctx context.Context, cartID string, state model.CartState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal cart snapshot %s: %w", cartID, err)
	}

	query := `INSERT INTO cart_snapshots (cart_id, data) VALUES ($1, $2)
		ON CONFLICT (cart_id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`

	if _, err := r.pool.Exec(ctx, query, cartID, data); err != nil {
		return fmt.Errorf("write cart snapshot %s: %w", cartID, err)
	}
	return nil
}
