package v1

import (
	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/ingeststate"
	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/price"
)

// Batch is one external ingestion unit: the rows plus the feed identity
// whose watermark guards them.
type Batch struct {
	Source string
	Target string
	Key    string
	Rows   []*price.PriceTick

	// Force skips the watermark filter. Safe because the store is
	// replay-idempotent; the watermark still only moves forward.
	Force bool
}

// Result reports the per-row outcome of an ingestion batch.
type Result struct {
	Written   int
	Skipped   int
	Rejected  []price.Rejection
	Watermark *ingeststate.Watermark
}
