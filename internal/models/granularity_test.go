package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGranularityFromString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected Granularity
		wantErr  bool
	}{
		{name: "hour", input: "hour", expected: GranularityHour},
		{name: "day", input: "day", expected: GranularityDay},
		{name: "empty defaults to hour", input: "", expected: GranularityHour},
		{name: "invalid", input: "week", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NewGranularityFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGranularity_BucketStart(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 3, 14, 18, 43, 21, 0, time.UTC)

	assert.Equal(t,
		time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC),
		GranularityHour.BucketStart(ts))
	assert.Equal(t,
		time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		GranularityDay.BucketStart(ts))
}

func TestGranularity_Duration_PanicsOnInvalid(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		Granularity("fortnight").Duration()
	})
}
