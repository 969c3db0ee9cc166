package collector

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	collectorMock "github.com/mewroo/market-history-service/internal/collector/mock"
	ingestMock "github.com/mewroo/market-history-service/internal/domain/ingest/mock"
	v1 "github.com/mewroo/market-history-service/internal/domain/ingest/v1"
	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/ingeststate"
	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/price"
	"github.com/mewroo/market-history-service/pkg/config"
	loggerMock "github.com/mewroo/market-history-service/pkg/logger/mock"
	"github.com/mewroo/market-history-service/pkg/util"
)

var testConfig = config.CollectorConfig{
	Tickers:      []string{"AAPL"},
	Interval:     "1d",
	OverlapDays:  5,
	LookbackDays: 370,
	Source:       "yahoo",
}

var frozenNow = time.Date(2024, 6, 14, 22, 0, 0, 0, time.UTC)

var priceIdentity = ingeststate.Identity{Source: "yahoo", Target: "stock_prices", Key: "AAPL"}

func timePtr(t time.Time) *time.Time { return &t }

func bar(ts time.Time) *price.PriceTick {
	return &price.PriceTick{
		Timestamp: ts,
		Ticker:    "AAPL",
		Interval:  "1d",
		Open:      100,
		High:      101,
		Low:       99,
		Close:     100.5,
		AdjClose:  100.5,
		Volume:    1000,
	}
}

type mocks struct {
	fetcher *collectorMock.MockFetcher
	ingest  *ingestMock.MockUsecase
	logger  *loggerMock.MockInterface
}

func newCollector(m mocks) *Collector {
	c := NewCollector(m.fetcher, m.ingest, testConfig, m.logger)
	c.now = func() time.Time { return frozenNow }
	return c
}

func TestCollector_RunOnce(t *testing.T) {
	testCases := []struct {
		name   string
		mockFn func(m mocks)
	}{
		{
			name: "cold start fetches the full lookback window",
			mockFn: func(m mocks) {
				m.ingest.EXPECT().GetWatermark(gomock.Any(), priceIdentity).Return(nil, nil)
				m.fetcher.EXPECT().FetchBars(gomock.Any(), "AAPL", "1d",
					util.StartOfDay(frozenNow.AddDate(0, 0, -370)), frozenNow,
				).Return([]*price.PriceTick{bar(frozenNow.AddDate(0, 0, -1))}, nil)
				m.ingest.EXPECT().IngestBatch(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, batch v1.Batch) (*v1.Result, error) {
						assert.Equal(t, "yahoo", batch.Source)
						assert.Equal(t, "AAPL", batch.Key)
						assert.False(t, batch.Force)
						return &v1.Result{Written: 1}, nil
					})
				m.logger.EXPECT().InfoContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
			},
		},
		{
			name: "known watermark rewinds the window by the overlap",
			mockFn: func(m mocks) {
				last := frozenNow.AddDate(0, 0, -2)
				m.ingest.EXPECT().GetWatermark(gomock.Any(), priceIdentity).Return(&ingeststate.Watermark{
					Identity:      priceIdentity,
					LastTimestamp: timePtr(last),
				}, nil)
				m.fetcher.EXPECT().FetchBars(gomock.Any(), "AAPL", "1d",
					last.AddDate(0, 0, -5), frozenNow,
				).Return([]*price.PriceTick{bar(frozenNow.AddDate(0, 0, -1))}, nil)
				m.ingest.EXPECT().IngestBatch(gomock.Any(), gomock.Any()).Return(&v1.Result{Written: 1, Skipped: 3}, nil)
				m.logger.EXPECT().InfoContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
			},
		},
		{
			name: "empty feed response skips ingestion",
			mockFn: func(m mocks) {
				m.ingest.EXPECT().GetWatermark(gomock.Any(), priceIdentity).Return(nil, nil)
				m.fetcher.EXPECT().FetchBars(gomock.Any(), "AAPL", "1d", gomock.Any(), gomock.Any()).Return(nil, nil)
				m.logger.EXPECT().DebugContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
			},
		},
		{
			name: "fetch failure is logged and does not abort the run",
			mockFn: func(m mocks) {
				m.ingest.EXPECT().GetWatermark(gomock.Any(), priceIdentity).Return(nil, nil)
				m.fetcher.EXPECT().FetchBars(gomock.Any(), "AAPL", "1d", gomock.Any(), gomock.Any()).Return(nil, errors.New("feed down"))
				m.logger.EXPECT().ErrorContext(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := mocks{
				fetcher: collectorMock.NewMockFetcher(ctrl),
				ingest:  ingestMock.NewMockUsecase(ctrl),
				logger:  loggerMock.NewMockInterface(ctrl),
			}
			tc.mockFn(m)

			newCollector(m).RunOnce(context.Background())
		})
	}
}

func TestCollector_Backfill(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks{
		fetcher: collectorMock.NewMockFetcher(ctrl),
		ingest:  ingestMock.NewMockUsecase(ctrl),
		logger:  loggerMock.NewMockInterface(ctrl),
	}

	// Backfill skips the watermark lookup and forces the full window.
	m.fetcher.EXPECT().FetchBars(gomock.Any(), "AAPL", "1d",
		util.StartOfDay(frozenNow.AddDate(0, 0, -370)), frozenNow,
	).Return([]*price.PriceTick{bar(frozenNow.AddDate(0, 0, -1))}, nil)
	m.ingest.EXPECT().IngestBatch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, batch v1.Batch) (*v1.Result, error) {
			assert.True(t, batch.Force)
			return &v1.Result{Written: 1}, nil
		})
	m.logger.EXPECT().InfoContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	err := newCollector(m).Backfill(context.Background(), "AAPL")
	assert.NoError(t, err)
}
