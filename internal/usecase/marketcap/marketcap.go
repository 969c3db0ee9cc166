package marketcap

import (
	"context"
	"time"

	v1 "github.com/mewroo/market-history-service/internal/domain/marketcap/v1"
	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/ingeststate"
	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/marketcap"
	"github.com/mewroo/market-history-service/pkg/errors"
	"github.com/mewroo/market-history-service/pkg/logger"
)

const stateTarget = "market_cap"

// Usecase ingests market capitalization snapshots. Unlike membership, the
// as-of watermark is kept per ticker: one batch can carry tickers at
// different absorption states and only the fresh ones are written.
type Usecase struct {
	marketCapRepository marketcap.MarketCapRepository
	stateRepository     ingeststate.StateRepository
	logger              logger.Interface
	now                 func() time.Time
}

// NewUsecase creates a new market cap usecase.
func NewUsecase(
	marketCapRepository marketcap.MarketCapRepository,
	stateRepository ingeststate.StateRepository,
	logger logger.Interface,
) *Usecase {
	return &Usecase{
		marketCapRepository: marketCapRepository,
		stateRepository:     stateRepository,
		logger:              logger,
		now:                 time.Now,
	}
}

// IngestBatch writes one market cap batch. A ticker whose per-ticker as-of
// watermark already covers the batch's as-of date is skipped unless forced.
func (u *Usecase) IngestBatch(ctx context.Context, batch v1.Batch) (*v1.Result, error) {
	fresh := make([]*marketcap.Snapshot, 0, len(batch.Snapshots))
	skipped := 0

	for _, s := range batch.Snapshots {
		if !batch.Force {
			absorbed, err := u.alreadyAbsorbed(ctx, batch, s.Ticker)
			if err != nil {
				return nil, err
			}
			if absorbed {
				skipped++
				continue
			}
		}
		fresh = append(fresh, s)
	}

	result := &v1.Result{Skipped: skipped}
	if len(fresh) == 0 {
		return result, nil
	}

	ingestedAt := u.now().UTC()
	for _, s := range fresh {
		s.AsOfDate = batch.AsOf
		s.IngestedAt = ingestedAt
		if s.Source == "" {
			s.Source = batch.Source
		}
	}

	if err := u.marketCapRepository.StoreBatch(ctx, fresh); err != nil {
		return nil, errors.TracerFromError(err)
	}

	asOf := batch.AsOf
	for _, s := range fresh {
		id := u.identity(batch.Source, s.Ticker)
		if _, err := u.stateRepository.Advance(ctx, id, nil, &asOf); err != nil {
			return nil, errors.TracerFromError(err)
		}
	}

	result.Written = len(fresh)

	u.logger.InfoContext(ctx, "ingested market cap batch",
		logger.Field{Key: "asof_date", Value: batch.AsOf},
		logger.Field{Key: "written", Value: result.Written},
		logger.Field{Key: "skipped", Value: result.Skipped},
	)

	return result, nil
}

// ListLatest returns the snapshots of the newest as-of date.
func (u *Usecase) ListLatest(ctx context.Context) ([]*marketcap.Snapshot, error) {
	snapshots, err := u.marketCapRepository.ListLatest(ctx)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return snapshots, nil
}

func (u *Usecase) identity(source, ticker string) ingeststate.Identity {
	return ingeststate.Identity{Source: source, Target: stateTarget, Key: ticker}
}

func (u *Usecase) alreadyAbsorbed(ctx context.Context, batch v1.Batch, ticker string) (bool, error) {
	watermark, err := u.stateRepository.Get(ctx, u.identity(batch.Source, ticker))
	if err != nil {
		return false, errors.TracerFromError(err)
	}
	return watermark != nil && watermark.LastAsOf != nil && !watermark.LastAsOf.Before(batch.AsOf), nil
}
