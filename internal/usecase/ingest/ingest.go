package ingest

import (
	"context"
	"time"

	v1 "github.com/mewroo/market-history-service/internal/domain/ingest/v1"
	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/ingeststate"
	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/price"
	"github.com/mewroo/market-history-service/pkg/errors"
	"github.com/mewroo/market-history-service/pkg/logger"
	"github.com/mewroo/market-history-service/pkg/questdb"
	"github.com/mewroo/market-history-service/pkg/util"
)

// Usecase coordinates one ingestion batch: read the watermark, filter the
// already-absorbed rows, write the increment, and advance the watermark
// past the confirmed writes. Write and advance share one transaction so an
// abort leaves prior state untouched.
type Usecase struct {
	priceRepository price.PriceRepository
	stateRepository ingeststate.StateRepository
	dbTx            questdb.TX
	logger          logger.Interface
	now             func() time.Time
}

// NewUsecase creates a new ingestion coordinator.
func NewUsecase(
	priceRepository price.PriceRepository,
	stateRepository ingeststate.StateRepository,
	dbTx questdb.TX,
	logger logger.Interface,
) *Usecase {
	return &Usecase{
		priceRepository: priceRepository,
		stateRepository: stateRepository,
		dbTx:            dbTx,
		logger:          logger,
		now:             time.Now,
	}
}

// IngestBatch ingests one external batch. Replaying a fully-absorbed batch
// writes nothing and leaves the watermark unchanged; an overlapping batch
// writes only the increment past the watermark.
func (u *Usecase) IngestBatch(ctx context.Context, batch v1.Batch) (*v1.Result, error) {
	id := ingeststate.Identity{Source: batch.Source, Target: batch.Target, Key: batch.Key}

	watermark, err := u.stateRepository.Get(ctx, id)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	fresh, skipped := u.partition(batch, watermark)
	result := &v1.Result{Skipped: skipped, Watermark: watermark}
	if len(fresh) == 0 {
		return result, nil
	}

	ingestedAt := u.now().UTC()
	for _, row := range fresh {
		row.IngestedAt = ingestedAt
		if row.Source == "" {
			row.Source = batch.Source
		}
	}

	txCtx, err := u.dbTx.Begin(ctx)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	accepted, rejected, err := u.priceRepository.Upsert(txCtx, fresh)
	if err != nil {
		_ = u.dbTx.Rollback(txCtx)
		return nil, errors.TracerFromError(err)
	}

	result.Written = len(accepted)
	result.Rejected = rejected

	// Advance only past rows that actually landed. A rejected row later
	// than every accepted one must stay ahead of the watermark so a
	// corrected replay is not filtered out.
	if maxTS := maxTimestamp(accepted); maxTS != nil {
		if watermark == nil || watermark.LastTimestamp == nil || maxTS.After(*watermark.LastTimestamp) {
			advanced, err := u.stateRepository.Advance(txCtx, id, maxTS, nil)
			if err != nil {
				_ = u.dbTx.Rollback(txCtx)
				return nil, errors.TracerFromError(err)
			}
			result.Watermark = advanced
		}
	}

	if err := u.dbTx.Commit(txCtx); err != nil {
		return nil, errors.TracerFromError(err)
	}

	u.logger.InfoContext(ctx, "ingested batch",
		logger.Field{Key: "source", Value: batch.Source},
		logger.Field{Key: "target", Value: batch.Target},
		logger.Field{Key: "key", Value: batch.Key},
		logger.Field{Key: "written", Value: result.Written},
		logger.Field{Key: "skipped", Value: result.Skipped},
		logger.Field{Key: "rejected", Value: len(result.Rejected)},
	)

	return result, nil
}

// GetWatermark returns the current watermark for a feed identity.
func (u *Usecase) GetWatermark(ctx context.Context, id ingeststate.Identity) (*ingeststate.Watermark, error) {
	watermark, err := u.stateRepository.Get(ctx, id)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return watermark, nil
}

// ResetWatermark rewrites a watermark without the monotonicity check.
func (u *Usecase) ResetWatermark(ctx context.Context, id ingeststate.Identity, lastTS, lastAsOf *time.Time) (*ingeststate.Watermark, error) {
	watermark, err := u.stateRepository.Reset(ctx, id, lastTS, lastAsOf)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	u.logger.InfoContext(ctx, "watermark reset",
		logger.Field{Key: "source", Value: id.Source},
		logger.Field{Key: "target", Value: id.Target},
		logger.Field{Key: "key", Value: id.Key},
	)

	return watermark, nil
}

// partition splits the batch into rows past the watermark and the count of
// rows it has already absorbed.
func (u *Usecase) partition(batch v1.Batch, watermark *ingeststate.Watermark) ([]*price.PriceTick, int) {
	if batch.Force || watermark == nil || watermark.LastTimestamp == nil {
		return batch.Rows, 0
	}

	fresh := make([]*price.PriceTick, 0, len(batch.Rows))
	skipped := 0
	for _, row := range batch.Rows {
		if !row.Timestamp.After(*watermark.LastTimestamp) {
			skipped++
			continue
		}
		fresh = append(fresh, row)
	}
	return fresh, skipped
}

func maxTimestamp(rows []*price.PriceTick) *time.Time {
	var max *time.Time
	for _, row := range rows {
		if max == nil || row.Timestamp.After(*max) {
			max = util.TimePointer(row.Timestamp)
		}
	}
	return max
}
