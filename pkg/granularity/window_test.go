package granularity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset("1m")
	assert.NoError(t, err)
	assert.Equal(t, Preset1M, p)

	p, err = ParsePreset("MAX")
	assert.NoError(t, err)
	assert.True(t, p.Max)

	_, err = ParsePreset("5D")
	assert.Error(t, err)
}

func TestPresetResolve(t *testing.T) {
	anchor := date(2024, 6, 15)
	minAvailable := date(2019, 3, 2)

	testCases := []struct {
		name          string
		preset        Preset
		anchor        time.Time
		minAvailable  *time.Time
		expectedStart time.Time
		expectedEnd   time.Time
	}{
		{
			name:          "one month back keeps the day of month",
			preset:        Preset1M,
			anchor:        anchor,
			expectedStart: date(2024, 5, 15),
			expectedEnd:   date(2024, 6, 16),
		},
		{
			name:          "one week back",
			preset:        Preset1W,
			anchor:        anchor,
			expectedStart: date(2024, 6, 8),
			expectedEnd:   date(2024, 6, 16),
		},
		{
			name:          "one year back across the leap day",
			preset:        Preset1Y,
			anchor:        date(2024, 2, 29),
			expectedStart: date(2023, 3, 1),
			expectedEnd:   date(2024, 3, 1),
		},
		{
			name:          "month arithmetic from month end normalizes",
			preset:        Preset1M,
			anchor:        date(2024, 3, 31),
			expectedStart: date(2024, 3, 2), // AddDate normalizes Feb 31
			expectedEnd:   date(2024, 4, 1),
		},
		{
			name:          "max uses the earliest available point",
			preset:        PresetMax,
			anchor:        anchor,
			minAvailable:  &minAvailable,
			expectedStart: minAvailable,
			expectedEnd:   date(2024, 6, 16),
		},
		{
			name:          "max without data falls back far into the past",
			preset:        PresetMax,
			anchor:        anchor,
			expectedStart: date(1924, 6, 15),
			expectedEnd:   date(2024, 6, 16),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := tc.preset.Resolve(tc.anchor, tc.minAvailable)
			assert.Equal(t, tc.expectedStart, start)
			assert.Equal(t, tc.expectedEnd, end)
		})
	}
}

func TestPresetResolveAnchorDayIncluded(t *testing.T) {
	anchor := date(2024, 6, 15)
	for _, p := range []Preset{Preset1W, Preset1M, Preset3M, Preset6M, Preset1Y, Preset2Y} {
		start, end := p.Resolve(anchor, nil)
		assert.True(t, start.Before(anchor), p.Name)
		assert.Equal(t, anchor.AddDate(0, 0, 1), end, p.Name)
	}
}
