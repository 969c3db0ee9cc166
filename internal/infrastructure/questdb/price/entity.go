package price

import (
	"math"
	"time"

	"github.com/mewroo/market-history-service/pkg/errors"
)

// PriceTick represents a single OHLCV data point. Its identity is
// (ticker, interval, timestamp); rows sharing an identity are resolved at
// read time by keeping the greatest IngestedAt.
type PriceTick struct {
	Timestamp  time.Time
	Ticker     string
	Interval   string
	Open       float64
	High       float64
	Low        float64
	Close      float64
	AdjClose   float64
	Volume     int64
	Source     string
	IngestedAt time.Time
}

// Rejection pairs a rejected row with the validation error that rejected it.
type Rejection struct {
	Row    *PriceTick
	Reason error
}

// Meta holds the visible timestamp bounds for a ticker. Both fields are nil
// when the ticker has no visible rows.
type Meta struct {
	MinTimestamp *time.Time
	MaxTimestamp *time.Time
}

// RangeFilter selects ticks for one ticker and interval within [Start, End).
type RangeFilter struct {
	Ticker   string
	Interval string
	Start    time.Time
	End      time.Time
}

// Validate checks the row for malformed values. The returned error carries
// the price_validation_error code and the offending field.
func (p *PriceTick) Validate() error {
	if p.Ticker == "" {
		return errors.NewErrorDetailsWithObject(
			"price row has empty ticker", string(errors.PriceValidationError), "ticker", p)
	}
	if p.Timestamp.IsZero() {
		return errors.NewErrorDetailsWithObject(
			"price row has zero timestamp", string(errors.PriceValidationError), "timestamp", p)
	}
	if p.Volume < 0 {
		return errors.NewErrorDetailsWithObject(
			"price row has negative volume", string(errors.PriceValidationError), "volume", p)
	}
	for field, v := range map[string]float64{
		"open":      p.Open,
		"high":      p.High,
		"low":       p.Low,
		"close":     p.Close,
		"adj_close": p.AdjClose,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.NewErrorDetailsWithObject(
				"price row has non-finite "+field, string(errors.PriceValidationError), field, p)
		}
	}
	return nil
}
