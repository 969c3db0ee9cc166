package membership

import (
	"time"
)

// Member represents one ticker's membership in a sector/industry snapshot.
// Snapshots are keyed by as-of date; re-ingesting a snapshot appends rows
// that the latest-wins read resolves by IngestedAt.
type Member struct {
	AsOfDate    time.Time
	SectorKey   string
	IndustryKey string
	Ticker      string
	TickerName  string
	Source      string
	IngestedAt  time.Time
}
