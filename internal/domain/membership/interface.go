package membership

import (
	"context"

	v1 "github.com/mewroo/market-history-service/internal/domain/membership/v1"
	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/membership"
)

// Usecase is the interface for the membership snapshot usecase.
//
//go:generate mockgen -source=interface.go -destination=mock/usecase_mock.go -package=mock
type Usecase interface {
	// IngestSnapshot writes a membership snapshot unless its as-of date
	// was already absorbed. Returns the number of rows written (0 when
	// skipped).
	IngestSnapshot(ctx context.Context, snapshot v1.Snapshot) (int, error)

	// ListLatest returns the members of the newest snapshot.
	ListLatest(ctx context.Context) ([]*membership.Member, error)

	// ListSectors returns the distinct sector keys of the newest snapshot.
	ListSectors(ctx context.Context) ([]string, error)
}
