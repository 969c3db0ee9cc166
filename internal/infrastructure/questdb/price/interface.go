package price

import (
	"context"
)

// PriceRepository is the interface for the price fact store.
//
//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock
type PriceRepository interface {
	// Upsert writes a batch of price ticks. Malformed rows are rejected
	// per-row and never abort the batch; the accepted rows are returned
	// alongside the rejections.
	Upsert(ctx context.Context, rows []*PriceTick) (accepted []*PriceTick, rejected []Rejection, err error)

	// QueryRange returns the visible ticks for the filter window, ascending
	// by timestamp and deduplicated by identity (latest IngestedAt wins).
	QueryRange(ctx context.Context, filter RangeFilter) ([]*PriceTick, error)

	// Meta returns the visible timestamp bounds for a ticker.
	Meta(ctx context.Context, ticker string) (*Meta, error)

	// ListTickers returns the ticker universe in ascending order.
	ListTickers(ctx context.Context, limit int) ([]string, error)
}
