package price

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mewroo/market-history-service/pkg/errors"
	"github.com/mewroo/market-history-service/pkg/questdb"
)

// Repository represents the repository for price data.
type Repository struct {
	client questdb.QuestDBClient
}

// NewRepository creates a new price repository.
func NewRepository(client questdb.QuestDBClient) *Repository {
	return &Repository{
		client: client,
	}
}

// Upsert stores a batch of price ticks. Each row is validated first;
// invalid rows are collected as rejections and only the valid remainder
// is written, so a bad row never fails the batch.
func (r *Repository) Upsert(ctx context.Context, rows []*PriceTick) ([]*PriceTick, []Rejection, error) {
	accepted := make([]*PriceTick, 0, len(rows))
	var rejected []Rejection

	for _, row := range rows {
		if err := row.Validate(); err != nil {
			rejected = append(rejected, Rejection{Row: row, Reason: err})
			continue
		}
		accepted = append(accepted, row)
	}

	if len(accepted) == 0 {
		return accepted, rejected, nil
	}

	// Use CopyFrom for better performance with large batches
	_, err := r.client.CopyFrom(
		ctx,
		pgx.Identifier{"stock_prices"},
		[]string{"ts", "ticker", "interval", "open", "high", "low", "close", "adj_close", "volume", "source", "ingested_at"},
		pgx.CopyFromSlice(len(accepted), func(i int) ([]any, error) {
			row := accepted[i]
			return []any{
				row.Timestamp,
				row.Ticker,
				row.Interval,
				row.Open,
				row.High,
				row.Low,
				row.Close,
				row.AdjClose,
				row.Volume,
				row.Source,
				row.IngestedAt,
			}, nil
		}),
	)

	if err != nil {
		return nil, rejected, errors.NewTransientStoreError("failed to copy price ticks", err)
	}

	return accepted, rejected, nil
}

// QueryRange retrieves the visible ticks for a window, ascending by
// timestamp. Physical duplicates are resolved here rather than relying on
// storage compaction: rows arrive ordered by (ts, ingested_at) and the last
// row per timestamp wins.
func (r *Repository) QueryRange(ctx context.Context, filter RangeFilter) ([]*PriceTick, error) {
	query := `SELECT ts, ticker, interval, open, high, low, close, adj_close, volume, source, ingested_at
			  FROM stock_prices
			  WHERE ticker = $1 AND interval = $2 AND ts >= $3 AND ts < $4
			  ORDER BY ts ASC, ingested_at ASC`

	rows, err := r.client.Query(ctx, query, filter.Ticker, filter.Interval, filter.Start, filter.End)
	if err != nil {
		return nil, errors.NewTransientStoreError("failed to query price ticks", err)
	}
	defer rows.Close()

	var ticks []*PriceTick
	for rows.Next() {
		tick := &PriceTick{}
		err := rows.Scan(
			&tick.Timestamp, &tick.Ticker, &tick.Interval,
			&tick.Open, &tick.High, &tick.Low, &tick.Close, &tick.AdjClose,
			&tick.Volume, &tick.Source, &tick.IngestedAt)
		if err != nil {
			return nil, errors.NewTransientStoreError("failed to scan price tick", err)
		}

		// Same identity as the previous row: the newer ingestion replaces it.
		if n := len(ticks); n > 0 && ticks[n-1].Timestamp.Equal(tick.Timestamp) {
			ticks[n-1] = tick
			continue
		}
		ticks = append(ticks, tick)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewTransientStoreError("error iterating rows", err)
	}

	return ticks, nil
}

// Meta retrieves the visible timestamp bounds for a ticker. Duplicate
// identities share a timestamp, so min/max over physical rows equals
// min/max over visible rows.
func (r *Repository) Meta(ctx context.Context, ticker string) (*Meta, error) {
	query := `SELECT min(ts), max(ts) FROM stock_prices WHERE ticker = $1`

	var minTS, maxTS *time.Time
	err := r.client.QueryRow(ctx, query, ticker).Scan(&minTS, &maxTS)
	if err != nil {
		if err == pgx.ErrNoRows {
			return &Meta{}, nil
		}
		return nil, errors.NewTransientStoreError("failed to get price meta", err)
	}

	return &Meta{MinTimestamp: minTS, MaxTimestamp: maxTS}, nil
}

// ListTickers retrieves the distinct ticker universe in ascending order.
func (r *Repository) ListTickers(ctx context.Context, limit int) ([]string, error) {
	query := `SELECT DISTINCT ticker FROM stock_prices ORDER BY ticker LIMIT $1`

	rows, err := r.client.Query(ctx, query, limit)
	if err != nil {
		return nil, errors.NewTransientStoreError("failed to list tickers", err)
	}
	defer rows.Close()

	var tickers []string
	for rows.Next() {
		var ticker string
		if err := rows.Scan(&ticker); err != nil {
			return nil, errors.NewTransientStoreError("failed to scan ticker", err)
		}
		tickers = append(tickers, ticker)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewTransientStoreError("error iterating rows", err)
	}

	return tickers, nil
}
