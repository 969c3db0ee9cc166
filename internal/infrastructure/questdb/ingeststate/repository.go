package ingeststate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mewroo/market-history-service/pkg/errors"
	"github.com/mewroo/market-history-service/pkg/questdb"
)

// Repository represents the repository for ingest watermarks.
//
// The table is append-only: every advance inserts a new row and reads take
// the row with the greatest updated_at, mirroring the fact store's
// latest-wins rule. The check-then-insert of Advance runs under a
// per-identity lock so concurrent advances for one identity cannot lose
// updates.
type Repository struct {
	client questdb.QuestDBClient

	locks sync.Map // Identity -> *sync.Mutex
	now   func() time.Time
}

// NewRepository creates a new ingest state repository.
func NewRepository(client questdb.QuestDBClient) *Repository {
	return &Repository{
		client: client,
		now:    time.Now,
	}
}

func (r *Repository) lock(id Identity) *sync.Mutex {
	mu, _ := r.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Get retrieves the current watermark for an identity.
func (r *Repository) Get(ctx context.Context, id Identity) (*Watermark, error) {
	query := `SELECT last_ts, last_asof_date, updated_at
			  FROM ingest_state
			  WHERE source = $1 AND target = $2 AND key = $3
			  ORDER BY updated_at DESC
			  LIMIT 1`

	wm := &Watermark{Identity: id}
	err := r.client.QueryRow(ctx, query, id.Source, id.Target, id.Key).Scan(
		&wm.LastTimestamp, &wm.LastAsOf, &wm.UpdatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, errors.NewTransientStoreError("failed to get watermark", err)
	}

	return wm, nil
}

// Advance moves the watermark forward for an identity. Regressions are
// rejected; the stored row stays untouched.
func (r *Repository) Advance(ctx context.Context, id Identity, lastTS, lastAsOf *time.Time) (*Watermark, error) {
	mu := r.lock(id)
	mu.Lock()
	defer mu.Unlock()

	current, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if current != nil && current.Behind(lastTS, lastAsOf) {
		return nil, errors.NewErrorDetailsWithObject(
			fmt.Sprintf("watermark regression for %s/%s/%s", id.Source, id.Target, id.Key),
			string(errors.WatermarkOutOfOrder),
			"watermark",
			current,
		)
	}

	// Carry forward the bound the caller did not supply.
	if current != nil {
		if lastTS == nil {
			lastTS = current.LastTimestamp
		}
		if lastAsOf == nil {
			lastAsOf = current.LastAsOf
		}
	}

	return r.insert(ctx, id, lastTS, lastAsOf)
}

// Reset rewrites the watermark, bypassing the monotonicity check.
func (r *Repository) Reset(ctx context.Context, id Identity, lastTS, lastAsOf *time.Time) (*Watermark, error) {
	mu := r.lock(id)
	mu.Lock()
	defer mu.Unlock()

	return r.insert(ctx, id, lastTS, lastAsOf)
}

func (r *Repository) insert(ctx context.Context, id Identity, lastTS, lastAsOf *time.Time) (*Watermark, error) {
	query := `INSERT INTO ingest_state (source, target, key, last_ts, last_asof_date, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	updatedAt := r.now().UTC()
	err := r.client.Exec(ctx, query, id.Source, id.Target, id.Key, lastTS, lastAsOf, updatedAt)
	if err != nil {
		return nil, errors.NewTransientStoreError("failed to store watermark", err)
	}

	return &Watermark{
		Identity:      id,
		LastTimestamp: lastTS,
		LastAsOf:      lastAsOf,
		UpdatedAt:     updatedAt,
	}, nil
}
