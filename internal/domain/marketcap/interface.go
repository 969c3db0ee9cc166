package marketcap

import (
	"context"

	v1 "github.com/mewroo/market-history-service/internal/domain/marketcap/v1"
	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/marketcap"
)

// Usecase is the interface for the market cap snapshot usecase.
//
//go:generate mockgen -source=interface.go -destination=mock/usecase_mock.go -package=mock
type Usecase interface {
	// IngestBatch writes a market cap batch, skipping tickers whose as-of
	// date was already absorbed.
	IngestBatch(ctx context.Context, batch v1.Batch) (*v1.Result, error)

	// ListLatest returns the snapshots of the newest as-of date.
	ListLatest(ctx context.Context) ([]*marketcap.Snapshot, error)
}
