package membership

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mewroo/market-history-service/pkg/errors"
	"github.com/mewroo/market-history-service/pkg/questdb"
)

// Repository represents the repository for industry membership snapshots.
type Repository struct {
	client questdb.QuestDBClient
}

// NewRepository creates a new membership repository.
func NewRepository(client questdb.QuestDBClient) *Repository {
	return &Repository{
		client: client,
	}
}

// StoreBatch appends a snapshot's members.
func (r *Repository) StoreBatch(ctx context.Context, members []*Member) error {
	if len(members) == 0 {
		return nil
	}

	_, err := r.client.CopyFrom(
		ctx,
		pgx.Identifier{"industry_membership"},
		[]string{"asof_date", "sector_key", "industry_key", "ticker", "ticker_name", "source", "ingested_at"},
		pgx.CopyFromSlice(len(members), func(i int) ([]any, error) {
			m := members[i]
			return []any{
				m.AsOfDate,
				m.SectorKey,
				m.IndustryKey,
				m.Ticker,
				m.TickerName,
				m.Source,
				m.IngestedAt,
			}, nil
		}),
	)

	if err != nil {
		return errors.NewTransientStoreError("failed to copy membership batch", err)
	}

	return nil
}

// LatestAsOf retrieves the as-of date of the newest stored snapshot.
func (r *Repository) LatestAsOf(ctx context.Context) (*time.Time, error) {
	query := `SELECT max(asof_date) FROM industry_membership`

	var asOf *time.Time
	err := r.client.QueryRow(ctx, query).Scan(&asOf)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, errors.NewTransientStoreError("failed to get latest asof date", err)
	}

	return asOf, nil
}

// ListLatest retrieves the members of the newest snapshot, deduplicated by
// (sector, industry, ticker) keeping the row with the greatest ingestion
// timestamp.
func (r *Repository) ListLatest(ctx context.Context) ([]*Member, error) {
	query := `SELECT asof_date, sector_key, industry_key, ticker, ticker_name, source, ingested_at
			  FROM industry_membership
			  WHERE asof_date = (SELECT max(asof_date) FROM industry_membership)
			  ORDER BY sector_key, industry_key, ticker, ingested_at ASC`

	rows, err := r.client.Query(ctx, query)
	if err != nil {
		return nil, errors.NewTransientStoreError("failed to query membership", err)
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		m := &Member{}
		err := rows.Scan(&m.AsOfDate, &m.SectorKey, &m.IndustryKey, &m.Ticker, &m.TickerName, &m.Source, &m.IngestedAt)
		if err != nil {
			return nil, errors.NewTransientStoreError("failed to scan member", err)
		}

		if n := len(members); n > 0 && sameMember(members[n-1], m) {
			members[n-1] = m
			continue
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewTransientStoreError("error iterating rows", err)
	}

	return members, nil
}

// ListSectors retrieves the distinct sector keys of the newest snapshot in
// ascending order.
func (r *Repository) ListSectors(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT sector_key FROM industry_membership
			  WHERE asof_date = (SELECT max(asof_date) FROM industry_membership)
			  ORDER BY sector_key ASC`

	rows, err := r.client.Query(ctx, query)
	if err != nil {
		return nil, errors.NewTransientStoreError("failed to query sectors", err)
	}
	defer rows.Close()

	var sectors []string
	for rows.Next() {
		var sector string
		if err := rows.Scan(&sector); err != nil {
			return nil, errors.NewTransientStoreError("failed to scan sector", err)
		}
		sectors = append(sectors, sector)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewTransientStoreError("error iterating rows", err)
	}

	return sectors, nil
}

func sameMember(a, b *Member) bool {
	return a.SectorKey == b.SectorKey && a.IndustryKey == b.IndustryKey && a.Ticker == b.Ticker
}
