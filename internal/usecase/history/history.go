package history

import (
	"context"
	"fmt"
	"time"

	v1 "github.com/mewroo/market-history-service/internal/domain/history/v1"
	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/price"
	"github.com/mewroo/market-history-service/pkg/errors"
	"github.com/mewroo/market-history-service/pkg/granularity"
	"github.com/mewroo/market-history-service/pkg/logger"
)

const defaultInterval = "1d"

// Usecase resolves history queries into bucketed close series. Relative
// windows anchor on the ticker's own latest data point, not wall-clock now,
// so a chart over stale data still shows the requested span of data.
type Usecase struct {
	priceRepository price.PriceRepository
	logger          logger.Interface
	now             func() time.Time
}

// NewUsecase creates a new history usecase.
func NewUsecase(priceRepository price.PriceRepository, logger logger.Interface) *Usecase {
	return &Usecase{
		priceRepository: priceRepository,
		logger:          logger,
		now:             time.Now,
	}
}

// GetHistory returns the bucketed close series for a query. Unknown tickers
// yield an empty series, not an error.
func (u *Usecase) GetHistory(ctx context.Context, query v1.Query) (*v1.Series, error) {
	g, err := granularity.Parse(query.Granularity)
	if err != nil {
		return nil, err
	}

	interval := query.Interval
	if interval == "" {
		interval = defaultInterval
	}

	start, end, provisional, err := u.resolveWindow(ctx, query)
	if err != nil {
		return nil, err
	}

	if !start.Before(end) {
		return nil, errors.NewErrorDetails(
			fmt.Sprintf("invalid range: start %s is not before end %s",
				start.Format(time.RFC3339), end.Format(time.RFC3339)),
			string(errors.InvalidRange),
			"range",
		)
	}

	ticks, err := u.priceRepository.QueryRange(ctx, price.RangeFilter{
		Ticker:   query.Ticker,
		Interval: interval,
		Start:    start,
		End:      end,
	})
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	return &v1.Series{
		Points:      bucketCloses(g, ticks),
		Provisional: provisional,
	}, nil
}

// GetMeta returns the visible date bounds for a ticker.
func (u *Usecase) GetMeta(ctx context.Context, ticker string) (*price.Meta, error) {
	meta, err := u.priceRepository.Meta(ctx, ticker)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return meta, nil
}

// ListSymbols returns the ticker universe.
func (u *Usecase) ListSymbols(ctx context.Context, limit int) ([]string, error) {
	symbols, err := u.priceRepository.ListTickers(ctx, limit)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return symbols, nil
}

// resolveWindow turns the query into an explicit [start, end) pair. A
// relative preset anchors on the ticker's max visible timestamp; when the
// ticker has no data yet the window anchors on processing time and the
// series is flagged provisional.
func (u *Usecase) resolveWindow(ctx context.Context, query v1.Query) (start, end time.Time, provisional bool, err error) {
	if query.Start != nil && query.End != nil {
		return *query.Start, *query.End, false, nil
	}

	preset, err := granularity.ParsePreset(query.Preset)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}

	meta, err := u.priceRepository.Meta(ctx, query.Ticker)
	if err != nil {
		return time.Time{}, time.Time{}, false, errors.TracerFromError(err)
	}

	anchor := u.now().UTC()
	if meta != nil && meta.MaxTimestamp != nil {
		anchor = *meta.MaxTimestamp
	} else {
		provisional = true
	}

	var minAvailable *time.Time
	if meta != nil {
		minAvailable = meta.MinTimestamp
	}

	start, end = preset.Resolve(anchor, minAvailable)
	return start, end, provisional, nil
}

// bucketCloses folds an ascending, deduplicated tick sequence into one
// close per calendar bucket. Ticks arrive ascending, so the last tick seen
// for a bucket is the chronologically last one and its close wins. Empty
// buckets are omitted.
func bucketCloses(g granularity.Granularity, ticks []*price.PriceTick) []v1.Point {
	points := make([]v1.Point, 0, len(ticks))
	for _, tick := range ticks {
		bucket := g.BucketStart(tick.Timestamp)
		if n := len(points); n > 0 && points[n-1].Timestamp.Equal(bucket) {
			points[n-1].Close = tick.Close
			continue
		}
		points = append(points, v1.Point{Timestamp: bucket, Close: tick.Close})
	}
	return points
}
