package collector

import (
	"context"
	"time"

	ingestDomain "github.com/mewroo/market-history-service/internal/domain/ingest"
	v1 "github.com/mewroo/market-history-service/internal/domain/ingest/v1"
	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/ingeststate"
	"github.com/mewroo/market-history-service/pkg/config"
	"github.com/mewroo/market-history-service/pkg/logger"
	"github.com/mewroo/market-history-service/pkg/util"
)

const stateTarget = "stock_prices"

// Collector pulls incremental bars from a chart feed and hands them to the
// ingestion coordinator. Each ticker is its own feed identity, so a failed
// ticker never holds back the others.
type Collector struct {
	fetcher       Fetcher
	ingestUsecase ingestDomain.Usecase
	config        config.CollectorConfig
	logger        logger.Interface

	now func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, ingestUsecase ingestDomain.Usecase, config config.CollectorConfig, logger logger.Interface) *Collector {
	return &Collector{
		fetcher:       fetcher,
		ingestUsecase: ingestUsecase,
		config:        config,
		logger:        logger,
		now:           time.Now,
	}
}

// RunOnce collects every configured ticker once.
func (c *Collector) RunOnce(ctx context.Context) {
	for _, ticker := range c.config.Tickers {
		if err := c.collectTicker(ctx, ticker, false); err != nil {
			c.logger.ErrorContext(ctx, err,
				logger.Field{Key: "action", Value: "collect_ticker"},
				logger.Field{Key: "ticker", Value: ticker},
			)
		}
	}
}

// Backfill re-collects one ticker over the full lookback window, bypassing
// the watermark filter.
func (c *Collector) Backfill(ctx context.Context, ticker string) error {
	return c.collectTicker(ctx, ticker, true)
}

func (c *Collector) collectTicker(ctx context.Context, ticker string, force bool) error {
	id := ingeststate.Identity{
		Source: c.config.Source,
		Target: stateTarget,
		Key:    ticker,
	}

	end := c.now().UTC()
	start, err := c.fetchStart(ctx, id, end, force)
	if err != nil {
		return err
	}

	bars, err := c.fetcher.FetchBars(ctx, ticker, c.config.Interval, start, end)
	if err != nil {
		return err
	}
	if len(bars) == 0 {
		c.logger.DebugContext(ctx, "feed returned no bars",
			logger.Field{Key: "ticker", Value: ticker},
			logger.Field{Key: "start", Value: start},
		)
		return nil
	}

	result, err := c.ingestUsecase.IngestBatch(ctx, v1.Batch{
		Source: id.Source,
		Target: id.Target,
		Key:    id.Key,
		Rows:   bars,
		Force:  force,
	})
	if err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "ticker collected",
		logger.Field{Key: "action", Value: "collect_ticker"},
		logger.Field{Key: "ticker", Value: ticker},
		logger.Field{Key: "fetched", Value: len(bars)},
		logger.Field{Key: "written", Value: result.Written},
		logger.Field{Key: "skipped", Value: result.Skipped},
		logger.Field{Key: "rejected", Value: len(result.Rejected)},
	)
	return nil
}

// fetchStart picks the feed window start. A known watermark is rewound by
// the overlap so bars revised near the boundary are re-absorbed; the store
// dedupes the overlap on read and the watermark filter drops what it can.
func (c *Collector) fetchStart(ctx context.Context, id ingeststate.Identity, end time.Time, force bool) (time.Time, error) {
	coldStart := util.StartOfDay(end.AddDate(0, 0, -c.config.LookbackDays))
	if force {
		return coldStart, nil
	}

	wm, err := c.ingestUsecase.GetWatermark(ctx, id)
	if err != nil {
		return time.Time{}, err
	}
	if wm == nil || wm.LastTimestamp == nil {
		return coldStart, nil
	}
	return wm.LastTimestamp.AddDate(0, 0, -c.config.OverlapDays), nil
}
