package v1

import (
	"time"
)

// Query describes one history request. Either the explicit Start/End pair
// or a relative Preset must be supplied; Granularity is a day/week/month
// token.
type Query struct {
	Ticker      string
	Interval    string
	Start       *time.Time
	End         *time.Time
	Preset      string
	Granularity string
}

// Point is one bucketed close observation.
type Point struct {
	Timestamp time.Time
	Close     float64
}

// Series is an ordered, deduplicated close series. Provisional marks a
// relative window that was anchored to processing time because the ticker
// has no metadata yet; callers should re-query once data lands.
type Series struct {
	Points      []Point
	Provisional bool
}
