package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	v1 "github.com/mewroo/market-history-service/internal/domain/ingest/v1"
	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/ingeststate"
	stateMock "github.com/mewroo/market-history-service/internal/infrastructure/questdb/ingeststate/mock"
	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/price"
	priceMock "github.com/mewroo/market-history-service/internal/infrastructure/questdb/price/mock"
	pkgErrors "github.com/mewroo/market-history-service/pkg/errors"
	loggerMock "github.com/mewroo/market-history-service/pkg/logger/mock"
	questdbMock "github.com/mewroo/market-history-service/pkg/questdb/mock"
)

var testIdentity = ingeststate.Identity{Source: "yahoo", Target: "stock_prices", Key: "AAPL"}

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time { return &t }

func tick(ts time.Time) *price.PriceTick {
	return &price.PriceTick{
		Timestamp: ts,
		Ticker:    "AAPL",
		Interval:  "1d",
		Open:      100,
		High:      110,
		Low:       95,
		Close:     105,
		AdjClose:  105,
		Volume:    1000,
	}
}

func batch(rows ...*price.PriceTick) v1.Batch {
	return v1.Batch{
		Source: testIdentity.Source,
		Target: testIdentity.Target,
		Key:    testIdentity.Key,
		Rows:   rows,
	}
}

type mocks struct {
	price  *priceMock.MockPriceRepository
	state  *stateMock.MockStateRepository
	tx     *questdbMock.MockTX
	logger *loggerMock.MockInterface
}

func TestIngestUsecase_IngestBatch(t *testing.T) {
	testCases := []struct {
		name     string
		batch    func() v1.Batch
		mockFn   func(m mocks)
		assertFn func(t *testing.T, result *v1.Result, err error)
	}{
		{
			name:  "first batch for an identity writes everything",
			batch: func() v1.Batch { return batch(tick(day(10)), tick(day(11))) },
			mockFn: func(m mocks) {
				m.state.EXPECT().Get(gomock.Any(), testIdentity).Return(nil, nil)
				m.tx.EXPECT().Begin(gomock.Any()).Return(context.Background(), nil)
				m.price.EXPECT().Upsert(gomock.Any(), gomock.Len(2)).DoAndReturn(
					func(ctx context.Context, rows []*price.PriceTick) ([]*price.PriceTick, []price.Rejection, error) {
						return rows, nil, nil
					})
				m.state.EXPECT().Advance(gomock.Any(), testIdentity, timePtr(day(11)), nil).Return(&ingeststate.Watermark{
					Identity:      testIdentity,
					LastTimestamp: timePtr(day(11)),
				}, nil)
				m.tx.EXPECT().Commit(gomock.Any()).Return(nil)
				m.logger.EXPECT().InfoContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
			},
			assertFn: func(t *testing.T, result *v1.Result, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 2, result.Written)
				assert.Equal(t, 0, result.Skipped)
				assert.Equal(t, day(11), *result.Watermark.LastTimestamp)
			},
		},
		{
			name:  "replaying an absorbed batch writes nothing",
			batch: func() v1.Batch { return batch(tick(day(10)), tick(day(11))) },
			mockFn: func(m mocks) {
				m.state.EXPECT().Get(gomock.Any(), testIdentity).Return(&ingeststate.Watermark{
					Identity:      testIdentity,
					LastTimestamp: timePtr(day(11)),
				}, nil)
			},
			assertFn: func(t *testing.T, result *v1.Result, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 0, result.Written)
				assert.Equal(t, 2, result.Skipped)
			},
		},
		{
			name:  "overlapping batch writes only the increment",
			batch: func() v1.Batch { return batch(tick(day(10)), tick(day(11)), tick(day(12))) },
			mockFn: func(m mocks) {
				m.state.EXPECT().Get(gomock.Any(), testIdentity).Return(&ingeststate.Watermark{
					Identity:      testIdentity,
					LastTimestamp: timePtr(day(11)),
				}, nil)
				m.tx.EXPECT().Begin(gomock.Any()).Return(context.Background(), nil)
				m.price.EXPECT().Upsert(gomock.Any(), gomock.Len(1)).DoAndReturn(
					func(ctx context.Context, rows []*price.PriceTick) ([]*price.PriceTick, []price.Rejection, error) {
						assert.Equal(t, day(12), rows[0].Timestamp)
						return rows, nil, nil
					})
				m.state.EXPECT().Advance(gomock.Any(), testIdentity, timePtr(day(12)), nil).Return(&ingeststate.Watermark{
					Identity:      testIdentity,
					LastTimestamp: timePtr(day(12)),
				}, nil)
				m.tx.EXPECT().Commit(gomock.Any()).Return(nil)
				m.logger.EXPECT().InfoContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
			},
			assertFn: func(t *testing.T, result *v1.Result, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 1, result.Written)
				assert.Equal(t, 2, result.Skipped)
			},
		},
		{
			name: "force bypasses the watermark filter",
			batch: func() v1.Batch {
				b := batch(tick(day(10)))
				b.Force = true
				return b
			},
			mockFn: func(m mocks) {
				m.state.EXPECT().Get(gomock.Any(), testIdentity).Return(&ingeststate.Watermark{
					Identity:      testIdentity,
					LastTimestamp: timePtr(day(11)),
				}, nil)
				m.tx.EXPECT().Begin(gomock.Any()).Return(context.Background(), nil)
				m.price.EXPECT().Upsert(gomock.Any(), gomock.Len(1)).DoAndReturn(
					func(ctx context.Context, rows []*price.PriceTick) ([]*price.PriceTick, []price.Rejection, error) {
						return rows, nil, nil
					})
				// Re-ingested old rows never move the watermark backwards.
				m.tx.EXPECT().Commit(gomock.Any()).Return(nil)
				m.logger.EXPECT().InfoContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
			},
			assertFn: func(t *testing.T, result *v1.Result, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 1, result.Written)
				assert.Equal(t, day(11), *result.Watermark.LastTimestamp)
			},
		},
		{
			name:  "watermark stops at the last accepted row",
			batch: func() v1.Batch { return batch(tick(day(10)), tick(day(11))) },
			mockFn: func(m mocks) {
				m.state.EXPECT().Get(gomock.Any(), testIdentity).Return(nil, nil)
				m.tx.EXPECT().Begin(gomock.Any()).Return(context.Background(), nil)
				m.price.EXPECT().Upsert(gomock.Any(), gomock.Len(2)).DoAndReturn(
					func(ctx context.Context, rows []*price.PriceTick) ([]*price.PriceTick, []price.Rejection, error) {
						// The later row fails validation; only day 10 lands.
						return rows[:1], []price.Rejection{{Row: rows[1], Reason: errors.New("bad row")}}, nil
					})
				m.state.EXPECT().Advance(gomock.Any(), testIdentity, timePtr(day(10)), nil).Return(&ingeststate.Watermark{
					Identity:      testIdentity,
					LastTimestamp: timePtr(day(10)),
				}, nil)
				m.tx.EXPECT().Commit(gomock.Any()).Return(nil)
				m.logger.EXPECT().InfoContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
			},
			assertFn: func(t *testing.T, result *v1.Result, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 1, result.Written)
				assert.Len(t, result.Rejected, 1)
				assert.Equal(t, day(10), *result.Watermark.LastTimestamp)
			},
		},
		{
			name:  "store failure rolls back and keeps its error code",
			batch: func() v1.Batch { return batch(tick(day(10))) },
			mockFn: func(m mocks) {
				m.state.EXPECT().Get(gomock.Any(), testIdentity).Return(nil, nil)
				m.tx.EXPECT().Begin(gomock.Any()).Return(context.Background(), nil)
				m.price.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil, nil,
					pkgErrors.NewTransientStoreError("failed to copy price ticks", errors.New("connection reset")))
				m.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
			},
			assertFn: func(t *testing.T, result *v1.Result, err error) {
				assert.Error(t, err)
				assert.True(t, pkgErrors.ErrorCodeEquals(err, pkgErrors.TransientStoreError))
				assert.Nil(t, result)
			},
		},
		{
			name:  "advance failure rolls back the write",
			batch: func() v1.Batch { return batch(tick(day(10))) },
			mockFn: func(m mocks) {
				m.state.EXPECT().Get(gomock.Any(), testIdentity).Return(nil, nil)
				m.tx.EXPECT().Begin(gomock.Any()).Return(context.Background(), nil)
				m.price.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, rows []*price.PriceTick) ([]*price.PriceTick, []price.Rejection, error) {
						return rows, nil, nil
					})
				m.state.EXPECT().Advance(gomock.Any(), testIdentity, timePtr(day(10)), nil).Return(nil, errors.New("advance failed"))
				m.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
			},
			assertFn: func(t *testing.T, result *v1.Result, err error) {
				assert.Error(t, err)
				assert.Nil(t, result)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := mocks{
				price:  priceMock.NewMockPriceRepository(ctrl),
				state:  stateMock.NewMockStateRepository(ctrl),
				tx:     questdbMock.NewMockTX(ctrl),
				logger: loggerMock.NewMockInterface(ctrl),
			}
			tc.mockFn(m)

			uc := NewUsecase(m.price, m.state, m.tx, m.logger)
			result, err := uc.IngestBatch(context.Background(), tc.batch())
			tc.assertFn(t, result, err)
		})
	}
}

func TestIngestUsecase_IngestBatch_StampsRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks{
		price:  priceMock.NewMockPriceRepository(ctrl),
		state:  stateMock.NewMockStateRepository(ctrl),
		tx:     questdbMock.NewMockTX(ctrl),
		logger: loggerMock.NewMockInterface(ctrl),
	}

	frozen := time.Date(2024, 6, 14, 22, 30, 0, 0, time.UTC)

	m.state.EXPECT().Get(gomock.Any(), testIdentity).Return(nil, nil)
	m.tx.EXPECT().Begin(gomock.Any()).Return(context.Background(), nil)
	m.price.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, rows []*price.PriceTick) ([]*price.PriceTick, []price.Rejection, error) {
			assert.Equal(t, frozen, rows[0].IngestedAt)
			assert.Equal(t, "yahoo", rows[0].Source)
			return rows, nil, nil
		})
	m.state.EXPECT().Advance(gomock.Any(), testIdentity, gomock.Any(), nil).Return(&ingeststate.Watermark{Identity: testIdentity}, nil)
	m.tx.EXPECT().Commit(gomock.Any()).Return(nil)
	m.logger.EXPECT().InfoContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	uc := NewUsecase(m.price, m.state, m.tx, m.logger)
	uc.now = func() time.Time { return frozen }

	_, err := uc.IngestBatch(context.Background(), batch(tick(day(10))))
	assert.NoError(t, err)
}

func TestIngestUsecase_ResetWatermark(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks{
		price:  priceMock.NewMockPriceRepository(ctrl),
		state:  stateMock.NewMockStateRepository(ctrl),
		tx:     questdbMock.NewMockTX(ctrl),
		logger: loggerMock.NewMockInterface(ctrl),
	}

	earlier := timePtr(day(1))
	m.state.EXPECT().Reset(gomock.Any(), testIdentity, earlier, nil).Return(&ingeststate.Watermark{
		Identity:      testIdentity,
		LastTimestamp: earlier,
	}, nil)
	m.logger.EXPECT().InfoContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	uc := NewUsecase(m.price, m.state, m.tx, m.logger)
	wm, err := uc.ResetWatermark(context.Background(), testIdentity, earlier, nil)
	assert.NoError(t, err)
	assert.Equal(t, earlier, wm.LastTimestamp)
}
