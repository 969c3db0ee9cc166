package history

import (
	"context"

	v1 "github.com/mewroo/market-history-service/internal/domain/history/v1"
	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/price"
)

// Usecase is the interface for the history query engine.
//
//go:generate mockgen -source=interface.go -destination=mock/usecase_mock.go -package=mock
type Usecase interface {
	// GetHistory resolves the query window and returns the bucketed close
	// series, strictly ascending with one point per non-empty bucket.
	GetHistory(ctx context.Context, query v1.Query) (*v1.Series, error)

	// GetMeta returns the visible date bounds for a ticker; both nil when
	// the ticker has no data.
	GetMeta(ctx context.Context, ticker string) (*price.Meta, error)

	// ListSymbols returns the ticker universe in ascending order.
	ListSymbols(ctx context.Context, limit int) ([]string, error)
}
