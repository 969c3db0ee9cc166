package ingest

import (
	"context"
	"time"

	v1 "github.com/mewroo/market-history-service/internal/domain/ingest/v1"
	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/ingeststate"
)

// Usecase is the interface for the ingestion coordinator.
//
//go:generate mockgen -source=interface.go -destination=mock/usecase_mock.go -package=mock
type Usecase interface {
	// IngestBatch filters already-seen rows, writes the increment, and
	// advances the watermark past the confirmed writes. Replaying the
	// same batch is a no-op.
	IngestBatch(ctx context.Context, batch v1.Batch) (*v1.Result, error)

	// GetWatermark returns the current watermark for a feed identity.
	GetWatermark(ctx context.Context, id ingeststate.Identity) (*ingeststate.Watermark, error)

	// ResetWatermark rewrites a watermark, bypassing the monotonicity
	// check. The only way to make a feed re-deliver absorbed data.
	ResetWatermark(ctx context.Context, id ingeststate.Identity, lastTS, lastAsOf *time.Time) (*ingeststate.Watermark, error)
}
