package consumer

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	ingestMock "github.com/mewroo/market-history-service/internal/domain/ingest/mock"
	v1 "github.com/mewroo/market-history-service/internal/domain/ingest/v1"
	loggerMock "github.com/mewroo/market-history-service/pkg/logger/mock"
)

func floatPtr(v float64) *float64 { return &v }

func TestPriceConsumer_HandleBatch(t *testing.T) {
	ts := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		raw      *RawPriceBatch
		mockFn   func(uc *ingestMock.MockUsecase, log *loggerMock.MockInterface)
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "batch is mapped and absorbed",
			raw: &RawPriceBatch{
				Source: "vendor_feed",
				Target: "stock_prices",
				Key:    "AAPL",
				Rows: []RawPriceRow{
					{Timestamp: ts, Ticker: "AAPL", Interval: "1d", Open: 100, High: 110, Low: 95, Close: 105, AdjClose: floatPtr(104.2), Volume: 1000},
					{Timestamp: ts.AddDate(0, 0, 1), Ticker: "AAPL", Interval: "1d", Open: 105, High: 112, Low: 104, Close: 111, Volume: 900},
				},
			},
			mockFn: func(uc *ingestMock.MockUsecase, log *loggerMock.MockInterface) {
				uc.EXPECT().IngestBatch(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, batch v1.Batch) (*v1.Result, error) {
						assert.Equal(t, "vendor_feed", batch.Source)
						assert.Len(t, batch.Rows, 2)
						assert.Equal(t, 104.2, batch.Rows[0].AdjClose)
						// missing adj_close falls back to close
						assert.Equal(t, 111.0, batch.Rows[1].AdjClose)
						return &v1.Result{Written: 2}, nil
					})
				log.EXPECT().InfoContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "ingestion failure propagates",
			raw:  &RawPriceBatch{Source: "vendor_feed", Target: "stock_prices", Key: "AAPL"},
			mockFn: func(uc *ingestMock.MockUsecase, log *loggerMock.MockInterface) {
				uc.EXPECT().IngestBatch(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			assertFn: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "db down")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			uc := ingestMock.NewMockUsecase(ctrl)
			log := loggerMock.NewMockInterface(ctrl)
			tc.mockFn(uc, log)

			c := &PriceConsumer{
				logger:        log,
				ingestUsecase: uc,
			}
			tc.assertFn(t, c.handleBatch(context.Background(), tc.raw))
		})
	}
}
