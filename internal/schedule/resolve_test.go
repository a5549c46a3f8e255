package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSpanMatchesDuration(t *testing.T) {
	cases := []struct {
		name    string
		date    string
		clock   string
		minutes int
	}{
		{"one hour evening", "2024-03-01", "20:00", 60},
		{"crosses midnight", "2024-03-01", "23:30", 90},
		{"crosses month boundary", "2024-01-31", "23:00", 120},
		{"crosses year boundary", "2023-12-31", "23:59", 2},
		{"single minute", "2024-06-15", "08:00", 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end, err := Resolve(tc.date, tc.clock, tc.minutes, time.UTC)
			require.NoError(t, err)
			assert.Equal(t, time.Duration(tc.minutes)*time.Minute, end.Sub(start))
		})
	}
}

func TestResolveCombinesDateAndClock(t *testing.T) {
	start, end, err := Resolve("2024-03-01", "20:00", 60, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 1, 21, 0, 0, 0, time.UTC), end)
}

func TestResolveHonorsLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	start, _, err := Resolve("2024-03-01", "20:00", 60, loc)
	require.NoError(t, err)
	assert.Equal(t, loc, start.Location())
	assert.Equal(t, 20, start.Hour())
}

func TestResolveRejectsBadInput(t *testing.T) {
	_, _, err := Resolve("2024-13-01", "20:00", 60, time.UTC)
	assert.Error(t, err)

	_, _, err = Resolve("2024-03-01", "25:00", 60, time.UTC)
	assert.Error(t, err)

	_, _, err = Resolve("2024-03-01", "20:00", 0, time.UTC)
	assert.Error(t, err)
}

func TestDurationBetweenRoundTrip(t *testing.T) {
	start, end, err := Resolve("2024-03-01", "20:00", 90, time.UTC)
	require.NoError(t, err)

	minutes := DurationBetween(start, end)
	require.Equal(t, 90, minutes)

	// Feeding the derived duration back reproduces the original end.
	_, end2, err := Resolve("2024-03-01", "20:00", minutes, time.UTC)
	require.NoError(t, err)
	assert.True(t, end2.Equal(end))
}

func TestDurationBetweenPrefillsEditForm(t *testing.T) {
	// Existing event 20:00..21:30 must pre-fill duration 90.
	start := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 21, 30, 0, 0, time.UTC)
	assert.Equal(t, 90, DurationBetween(start, end))
}

func TestDurationBetweenRoundsToNearestMinute(t *testing.T) {
	start := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, 60, DurationBetween(start, start.Add(59*time.Minute+45*time.Second)))
	assert.Equal(t, 59, DurationBetween(start, start.Add(59*time.Minute+15*time.Second)))
}

func TestDurationBetweenNeverNegative(t *testing.T) {
	start := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DurationBetween(start, start))
	assert.Equal(t, 0, DurationBetween(start, start.Add(-time.Hour)))
}
