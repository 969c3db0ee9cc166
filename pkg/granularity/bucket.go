package granularity

import (
	"time"
)

// BucketStart calculates the start of the calendar bucket containing timestamp.
// Weeks anchor on Sunday, months on the first of the month. All arithmetic is
// calendar-aware, so month-length and DST boundaries are handled natively.
func (g Granularity) BucketStart(timestamp time.Time) time.Time {
	switch g.Name {
	case "day":
		return time.Date(timestamp.Year(), timestamp.Month(), timestamp.Day(), 0, 0, 0, 0, timestamp.Location())
	case "week":
		// Back to the most recent Sunday midnight.
		day := time.Date(timestamp.Year(), timestamp.Month(), timestamp.Day(), 0, 0, 0, 0, timestamp.Location())
		return day.AddDate(0, 0, -int(day.Weekday()))
	case "month":
		return time.Date(timestamp.Year(), timestamp.Month(), 1, 0, 0, 0, 0, timestamp.Location())
	default:
		return timestamp
	}
}

// BucketEnd returns the exclusive end of the bucket containing timestamp.
func (g Granularity) BucketEnd(timestamp time.Time) time.Time {
	start := g.BucketStart(timestamp)
	switch g.Name {
	case "day":
		return start.AddDate(0, 0, 1)
	case "week":
		return start.AddDate(0, 0, 7)
	case "month":
		return start.AddDate(0, 1, 0)
	default:
		return start
	}
}

// SameBucket checks if two timestamps fall within the same bucket.
func (g Granularity) SameBucket(a, b time.Time) bool {
	return g.BucketStart(a).Equal(g.BucketStart(b))
}
