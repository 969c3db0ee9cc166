package collector

import (
	"context"
	"time"

	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/price"
)

// Fetcher pulls OHLCV bars from an external chart feed.
//
//go:generate mockgen -source=fetcher.go -destination=mock/fetcher_mock.go -package=mock
type Fetcher interface {
	// FetchBars returns bars for one ticker in [start, end), ascending by
	// timestamp. An empty slice means the feed had nothing in the window.
	FetchBars(ctx context.Context, ticker, interval string, start, end time.Time) ([]*price.PriceTick, error)
	Name() string
}
