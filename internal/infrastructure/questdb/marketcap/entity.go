package marketcap

import (
	"time"
)

// Snapshot is one ticker's market capitalization observation for an as-of
// date. Re-ingesting appends rows that the latest-wins read resolves by
// IngestedAt, same as the price and membership tables.
type Snapshot struct {
	AsOfDate   time.Time
	Ticker     string
	MarketCap  float64
	Currency   string
	Source     string
	IngestedAt time.Time
}
