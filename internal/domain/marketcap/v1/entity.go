package v1

import (
	"time"

	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/marketcap"
)

// Batch is one market cap capture for an as-of date, covering one or more
// tickers.
type Batch struct {
	AsOf      time.Time
	Source    string
	Snapshots []*marketcap.Snapshot

	// Force re-ingests tickers whose as-of date was already absorbed.
	Force bool
}

// Result summarizes one market cap ingestion.
type Result struct {
	Written int
	Skipped int
}
