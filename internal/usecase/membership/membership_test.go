package membership

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	v1 "github.com/mewroo/market-history-service/internal/domain/membership/v1"
	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/ingeststate"
	stateMock "github.com/mewroo/market-history-service/internal/infrastructure/questdb/ingeststate/mock"
	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/membership"
	membershipMock "github.com/mewroo/market-history-service/internal/infrastructure/questdb/membership/mock"
	loggerMock "github.com/mewroo/market-history-service/pkg/logger/mock"
)

var snapshotIdentity = ingeststate.Identity{Source: "reference_feed", Target: "industry_membership", Key: "ALL"}

func asOf(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time { return &t }

func snapshot(day int, force bool) v1.Snapshot {
	return v1.Snapshot{
		AsOf:   asOf(day),
		Source: "reference_feed",
		Force:  force,
		Members: []*membership.Member{
			{Ticker: "NVDA", TickerName: "NVIDIA Corp", SectorKey: "technology", IndustryKey: "semiconductors"},
			{Ticker: "JPM", TickerName: "JPMorgan Chase", SectorKey: "financials", IndustryKey: "banks"},
		},
	}
}

type mocks struct {
	membership *membershipMock.MockMembershipRepository
	state      *stateMock.MockStateRepository
	logger     *loggerMock.MockInterface
}

func TestMembershipUsecase_IngestSnapshot(t *testing.T) {
	testCases := []struct {
		name     string
		snapshot v1.Snapshot
		mockFn   func(m mocks)
		assertFn func(t *testing.T, written int, err error)
	}{
		{
			name:     "fresh as-of date writes and advances",
			snapshot: snapshot(14, false),
			mockFn: func(m mocks) {
				m.state.EXPECT().Get(gomock.Any(), snapshotIdentity).Return(&ingeststate.Watermark{
					Identity: snapshotIdentity,
					LastAsOf: timePtr(asOf(13)),
				}, nil)
				m.membership.EXPECT().StoreBatch(gomock.Any(), gomock.Len(2)).DoAndReturn(
					func(ctx context.Context, members []*membership.Member) error {
						assert.Equal(t, asOf(14), members[0].AsOfDate)
						assert.Equal(t, "reference_feed", members[0].Source)
						assert.False(t, members[0].IngestedAt.IsZero())
						return nil
					})
				m.state.EXPECT().Advance(gomock.Any(), snapshotIdentity, nil, timePtr(asOf(14))).Return(&ingeststate.Watermark{
					Identity: snapshotIdentity,
					LastAsOf: timePtr(asOf(14)),
				}, nil)
				m.logger.EXPECT().InfoContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
			},
			assertFn: func(t *testing.T, written int, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 2, written)
			},
		},
		{
			name:     "already-absorbed as-of date is skipped",
			snapshot: snapshot(14, false),
			mockFn: func(m mocks) {
				m.state.EXPECT().Get(gomock.Any(), snapshotIdentity).Return(&ingeststate.Watermark{
					Identity: snapshotIdentity,
					LastAsOf: timePtr(asOf(14)),
				}, nil)
			},
			assertFn: func(t *testing.T, written int, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 0, written)
			},
		},
		{
			name:     "force re-ingests an absorbed date",
			snapshot: snapshot(14, true),
			mockFn: func(m mocks) {
				m.membership.EXPECT().StoreBatch(gomock.Any(), gomock.Len(2)).Return(nil)
				m.state.EXPECT().Advance(gomock.Any(), snapshotIdentity, nil, timePtr(asOf(14))).Return(&ingeststate.Watermark{
					Identity: snapshotIdentity,
					LastAsOf: timePtr(asOf(14)),
				}, nil)
				m.logger.EXPECT().InfoContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
			},
			assertFn: func(t *testing.T, written int, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 2, written)
			},
		},
		{
			name:     "missing watermark falls back to the snapshot table",
			snapshot: snapshot(14, false),
			mockFn: func(m mocks) {
				m.state.EXPECT().Get(gomock.Any(), snapshotIdentity).Return(nil, nil)
				m.membership.EXPECT().LatestAsOf(gomock.Any()).Return(timePtr(asOf(14)), nil)
			},
			assertFn: func(t *testing.T, written int, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 0, written)
			},
		},
		{
			name:     "store failure surfaces before the watermark moves",
			snapshot: snapshot(14, false),
			mockFn: func(m mocks) {
				m.state.EXPECT().Get(gomock.Any(), snapshotIdentity).Return(nil, nil)
				m.membership.EXPECT().LatestAsOf(gomock.Any()).Return(nil, nil)
				m.membership.EXPECT().StoreBatch(gomock.Any(), gomock.Any()).Return(errors.New("copy failed"))
			},
			assertFn: func(t *testing.T, written int, err error) {
				assert.Error(t, err)
				assert.Equal(t, 0, written)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := mocks{
				membership: membershipMock.NewMockMembershipRepository(ctrl),
				state:      stateMock.NewMockStateRepository(ctrl),
				logger:     loggerMock.NewMockInterface(ctrl),
			}
			tc.mockFn(m)

			uc := NewUsecase(m.membership, m.state, m.logger)
			written, err := uc.IngestSnapshot(context.Background(), tc.snapshot)
			tc.assertFn(t, written, err)
		})
	}
}

func TestMembershipUsecase_ListLatest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks{
		membership: membershipMock.NewMockMembershipRepository(ctrl),
		state:      stateMock.NewMockStateRepository(ctrl),
		logger:     loggerMock.NewMockInterface(ctrl),
	}

	m.membership.EXPECT().ListLatest(gomock.Any()).Return([]*membership.Member{
		{Ticker: "NVDA", SectorKey: "technology", IndustryKey: "semiconductors"},
	}, nil)

	uc := NewUsecase(m.membership, m.state, m.logger)
	members, err := uc.ListLatest(context.Background())
	assert.NoError(t, err)
	assert.Len(t, members, 1)
	assert.Equal(t, "NVDA", members[0].Ticker)
}

func TestMembershipUsecase_ListSectors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks{
		membership: membershipMock.NewMockMembershipRepository(ctrl),
		state:      stateMock.NewMockStateRepository(ctrl),
		logger:     loggerMock.NewMockInterface(ctrl),
	}

	m.membership.EXPECT().ListSectors(gomock.Any()).Return([]string{"technology"}, nil)

	uc := NewUsecase(m.membership, m.state, m.logger)
	sectors, err := uc.ListSectors(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"technology"}, sectors)
}
