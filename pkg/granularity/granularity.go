package granularity

import (
	"fmt"

	"github.com/mewroo/market-history-service/pkg/errors"
)

// Granularity represents a calendar bucket size for history queries.
type Granularity struct {
	Name string
}

// Supported granularities.
var (
	Day   = Granularity{Name: "day"}
	Week  = Granularity{Name: "week"}
	Month = Granularity{Name: "month"}
)

// All supported granularities.
var All = []Granularity{Day, Week, Month}

// Registry for lookup by token.
var registry = make(map[string]Granularity)

func init() {
	for _, g := range All {
		registry[g.Name] = g
	}
}

// Parse returns the granularity for a token, or an InvalidGranularity error.
func Parse(token string) (Granularity, error) {
	g, exists := registry[token]
	if !exists {
		return Granularity{}, errors.NewErrorDetails(
			fmt.Sprintf("unsupported granularity: %s", token),
			string(errors.InvalidGranularity),
			"granularity",
		)
	}
	return g, nil
}

// IsValid checks if a granularity token is supported.
func IsValid(token string) bool {
	_, exists := registry[token]
	return exists
}

// Names returns all supported granularity tokens.
func Names() []string {
	names := make([]string, 0, len(All))
	for _, g := range All {
		names = append(names, g.Name)
	}
	return names
}
