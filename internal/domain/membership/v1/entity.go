package v1

import (
	"time"

	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/membership"
)

// Snapshot is one sector/industry membership capture for an as-of date.
type Snapshot struct {
	AsOf    time.Time
	Source  string
	Members []*membership.Member

	// Force re-ingests even when the as-of date was already absorbed.
	Force bool
}
