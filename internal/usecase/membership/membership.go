package membership

import (
	"context"
	"time"

	v1 "github.com/mewroo/market-history-service/internal/domain/membership/v1"
	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/ingeststate"
	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/membership"
	"github.com/mewroo/market-history-service/pkg/errors"
	"github.com/mewroo/market-history-service/pkg/logger"
)

const stateTarget = "industry_membership"

// Usecase ingests sector/industry membership snapshots, guarded by the
// as-of-date leg of the ingest watermark: a snapshot whose as-of date was
// already absorbed is skipped unless forced.
type Usecase struct {
	membershipRepository membership.MembershipRepository
	stateRepository      ingeststate.StateRepository
	logger               logger.Interface
	now                  func() time.Time
}

// NewUsecase creates a new membership usecase.
func NewUsecase(
	membershipRepository membership.MembershipRepository,
	stateRepository ingeststate.StateRepository,
	logger logger.Interface,
) *Usecase {
	return &Usecase{
		membershipRepository: membershipRepository,
		stateRepository:      stateRepository,
		logger:               logger,
		now:                  time.Now,
	}
}

// IngestSnapshot writes one membership snapshot. Returns 0 when the
// snapshot's as-of date has already been absorbed.
func (u *Usecase) IngestSnapshot(ctx context.Context, snapshot v1.Snapshot) (int, error) {
	id := ingeststate.Identity{Source: snapshot.Source, Target: stateTarget, Key: "ALL"}

	if !snapshot.Force {
		lastAsOf, err := u.lastAbsorbedAsOf(ctx, id)
		if err != nil {
			return 0, err
		}
		if lastAsOf != nil && !lastAsOf.Before(snapshot.AsOf) {
			return 0, nil
		}
	}

	ingestedAt := u.now().UTC()
	for _, m := range snapshot.Members {
		m.AsOfDate = snapshot.AsOf
		m.IngestedAt = ingestedAt
		if m.Source == "" {
			m.Source = snapshot.Source
		}
	}

	if err := u.membershipRepository.StoreBatch(ctx, snapshot.Members); err != nil {
		return 0, errors.TracerFromError(err)
	}

	asOf := snapshot.AsOf
	if _, err := u.stateRepository.Advance(ctx, id, nil, &asOf); err != nil {
		return 0, errors.TracerFromError(err)
	}

	u.logger.InfoContext(ctx, "ingested membership snapshot",
		logger.Field{Key: "asof_date", Value: snapshot.AsOf},
		logger.Field{Key: "members", Value: len(snapshot.Members)},
	)

	return len(snapshot.Members), nil
}

// lastAbsorbedAsOf returns the newest absorbed as-of date. The watermark is
// authoritative; when its row is missing (state wiped or never written) the
// snapshot table itself is consulted so replays still skip.
func (u *Usecase) lastAbsorbedAsOf(ctx context.Context, id ingeststate.Identity) (*time.Time, error) {
	watermark, err := u.stateRepository.Get(ctx, id)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	if watermark != nil {
		return watermark.LastAsOf, nil
	}

	asOf, err := u.membershipRepository.LatestAsOf(ctx)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return asOf, nil
}

// ListLatest returns the members of the newest snapshot.
func (u *Usecase) ListLatest(ctx context.Context) ([]*membership.Member, error) {
	members, err := u.membershipRepository.ListLatest(ctx)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return members, nil
}

// ListSectors returns the distinct sector keys of the newest snapshot.
func (u *Usecase) ListSectors(ctx context.Context) ([]string, error) {
	sectors, err := u.membershipRepository.ListSectors(ctx)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return sectors, nil
}
