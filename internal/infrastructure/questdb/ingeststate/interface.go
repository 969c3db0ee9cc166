package ingeststate

import (
	"context"
	"time"
)

// StateRepository is the interface for the ingest watermark store.
//
//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock
type StateRepository interface {
	// Get returns the current watermark for an identity, or nil when no
	// ingestion has completed for it yet.
	Get(ctx context.Context, id Identity) (*Watermark, error)

	// Advance moves the watermark forward. A proposed bound strictly
	// earlier than the stored one is rejected with watermark_out_of_order
	// and leaves the store unchanged. Concurrent advances for the same
	// identity serialize inside the store.
	Advance(ctx context.Context, id Identity, lastTS, lastAsOf *time.Time) (*Watermark, error)

	// Reset rewrites the watermark without the monotonicity check. The
	// only sanctioned way to move a watermark backwards.
	Reset(ctx context.Context, id Identity, lastTS, lastAsOf *time.Time) (*Watermark, error)
}
