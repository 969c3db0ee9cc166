package membership

import (
	"context"
	"time"
)

// MembershipRepository is the interface for the industry membership store.
//
//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock
type MembershipRepository interface {
	// StoreBatch appends a snapshot's members.
	StoreBatch(ctx context.Context, members []*Member) error

	// LatestAsOf returns the as-of date of the newest stored snapshot,
	// or nil when no snapshot exists.
	LatestAsOf(ctx context.Context) (*time.Time, error)

	// ListLatest returns the members of the newest snapshot.
	ListLatest(ctx context.Context) ([]*Member, error)

	// ListSectors returns the distinct sector keys of the newest snapshot.
	ListSectors(ctx context.Context) ([]string, error)
}
