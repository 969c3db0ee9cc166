package marketcap

import (
	"context"
)

// MarketCapRepository is the interface for the market capitalization store.
//
//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock
type MarketCapRepository interface {
	// StoreBatch appends market cap snapshots.
	StoreBatch(ctx context.Context, snapshots []*Snapshot) error

	// ListLatest returns the snapshots of the newest as-of date.
	ListLatest(ctx context.Context) ([]*Snapshot, error)
}
