package ingeststate

import (
	"time"
)

// Identity names the feed a watermark guards: an ingestion source, a target
// table, and a key disambiguating sub-feeds (a ticker, "ticker|interval",
// or "ALL").
type Identity struct {
	Source string
	Target string
	Key    string
}

// Watermark records how far an ingestion feed has been absorbed. Either
// bound may be unset: timestamped feeds use LastTimestamp, snapshot feeds
// use LastAsOf.
type Watermark struct {
	Identity      Identity
	LastTimestamp *time.Time
	LastAsOf      *time.Time
	UpdatedAt     time.Time
}

// Behind reports whether advancing to the proposed bounds would regress the
// stored watermark. A nil proposed bound leaves the stored one untouched
// and never counts as a regression.
func (w *Watermark) Behind(lastTS, lastAsOf *time.Time) bool {
	if lastTS != nil && w.LastTimestamp != nil && lastTS.Before(*w.LastTimestamp) {
		return true
	}
	if lastAsOf != nil && w.LastAsOf != nil && lastAsOf.Before(*w.LastAsOf) {
		return true
	}
	return false
}
