package granularity

import (
	"fmt"
	"strings"
	"time"

	"github.com/mewroo/market-history-service/pkg/errors"
)

// Preset is a relative query window expressed as a calendar offset from an
// anchor date. Max marks the open-ended "everything we have" window.
type Preset struct {
	Name   string
	Days   int
	Months int
	Years  int
	Max    bool
}

// Supported presets, mirroring the chart range controls.
var (
	Preset1W  = Preset{Name: "1W", Days: 7}
	Preset1M  = Preset{Name: "1M", Months: 1}
	Preset3M  = Preset{Name: "3M", Months: 3}
	Preset6M  = Preset{Name: "6M", Months: 6}
	Preset1Y  = Preset{Name: "1Y", Years: 1}
	Preset2Y  = Preset{Name: "2Y", Years: 2}
	PresetMax = Preset{Name: "MAX", Max: true}
)

var presetRegistry = make(map[string]Preset)

func init() {
	for _, p := range []Preset{Preset1W, Preset1M, Preset3M, Preset6M, Preset1Y, Preset2Y, PresetMax} {
		presetRegistry[p.Name] = p
	}
}

// ParsePreset returns the preset for a token, case-insensitively.
func ParsePreset(token string) (Preset, error) {
	p, exists := presetRegistry[strings.ToUpper(token)]
	if !exists {
		return Preset{}, errors.NewErrorDetails(
			fmt.Sprintf("unsupported range preset: %s", token),
			string(errors.InvalidRange),
			"preset",
		)
	}
	return p, nil
}

// Resolve computes the [start, end) window for the preset relative to anchor.
// The offset is subtracted with AddDate, which normalizes overflowing dates
// forward (one month back from March 31 is February 31, which becomes early
// March), and end is anchor plus one day so the exclusive bound still
// includes the anchor day itself.
func (p Preset) Resolve(anchor time.Time, minAvailable *time.Time) (start, end time.Time) {
	end = anchor.AddDate(0, 0, 1)
	if p.Max {
		if minAvailable != nil {
			start = *minAvailable
		} else {
			start = anchor.AddDate(-100, 0, 0)
		}
		return start, end
	}
	start = anchor.AddDate(-p.Years, -p.Months, -p.Days)
	return start, end
}
