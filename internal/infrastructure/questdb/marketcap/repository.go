package marketcap

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/mewroo/market-history-service/pkg/errors"
	"github.com/mewroo/market-history-service/pkg/questdb"
)

// Repository represents the repository for market capitalization snapshots.
type Repository struct {
	client questdb.QuestDBClient
}

// NewRepository creates a new market cap repository.
func NewRepository(client questdb.QuestDBClient) *Repository {
	return &Repository{
		client: client,
	}
}

// StoreBatch appends market cap snapshots.
func (r *Repository) StoreBatch(ctx context.Context, snapshots []*Snapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	_, err := r.client.CopyFrom(
		ctx,
		pgx.Identifier{"market_cap"},
		[]string{"asof_date", "ticker", "market_cap", "currency", "source", "ingested_at"},
		pgx.CopyFromSlice(len(snapshots), func(i int) ([]any, error) {
			s := snapshots[i]
			return []any{
				s.AsOfDate,
				s.Ticker,
				s.MarketCap,
				s.Currency,
				s.Source,
				s.IngestedAt,
			}, nil
		}),
	)

	if err != nil {
		return errors.NewTransientStoreError("failed to copy market cap batch", err)
	}

	return nil
}

// ListLatest retrieves the snapshots of the newest as-of date, deduplicated
// by ticker keeping the row with the greatest ingestion timestamp.
func (r *Repository) ListLatest(ctx context.Context) ([]*Snapshot, error) {
	query := `SELECT asof_date, ticker, market_cap, currency, source, ingested_at
			  FROM market_cap
			  WHERE asof_date = (SELECT max(asof_date) FROM market_cap)
			  ORDER BY ticker, ingested_at ASC`

	rows, err := r.client.Query(ctx, query)
	if err != nil {
		return nil, errors.NewTransientStoreError("failed to query market caps", err)
	}
	defer rows.Close()

	var snapshots []*Snapshot
	for rows.Next() {
		s := &Snapshot{}
		err := rows.Scan(&s.AsOfDate, &s.Ticker, &s.MarketCap, &s.Currency, &s.Source, &s.IngestedAt)
		if err != nil {
			return nil, errors.NewTransientStoreError("failed to scan market cap", err)
		}

		if n := len(snapshots); n > 0 && snapshots[n-1].Ticker == s.Ticker {
			snapshots[n-1] = s
			continue
		}
		snapshots = append(snapshots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewTransientStoreError("error iterating rows", err)
	}

	return snapshots, nil
}
