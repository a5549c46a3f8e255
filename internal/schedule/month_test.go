package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpadjest/bingeplan-web/internal/models"
)

func TestMonthGridShape(t *testing.T) {
	// March 2024 starts on a Friday and ends on a Sunday: 6 rows.
	weeks := MonthGrid(2024, time.March, nil, time.UTC, time.Now())
	require.Len(t, weeks, 6)

	assert.Equal(t, time.Date(2024, 2, 25, 0, 0, 0, 0, time.UTC), weeks[0][0].Date)
	assert.False(t, weeks[0][0].InMonth)
	assert.True(t, weeks[0][5].InMonth) // March 1st
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), weeks[5][6].Date)
}

func TestMonthGridAttachesEvents(t *testing.T) {
	events := []models.Event{
		{
			ID:    1,
			Title: "Show X",
			Start: time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 3, 1, 21, 0, 0, 0, time.UTC),
		},
		{
			ID:    2,
			Title: "Marathon",
			Start: time.Date(2024, 3, 1, 22, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 3, 2, 2, 0, 0, 0, time.UTC),
		},
	}

	weeks := MonthGrid(2024, time.March, events, time.UTC, time.Now())
	require.Len(t, weeks, 6)

	march1 := weeks[0][5]
	require.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), march1.Date)
	require.Len(t, march1.Events, 2)
	// Sorted by start time.
	assert.Equal(t, "Show X", march1.Events[0].Title)
	assert.Equal(t, "Marathon", march1.Events[1].Title)

	// The marathon spans midnight and shows on the 2nd as well.
	march2 := weeks[0][6]
	require.Len(t, march2.Events, 1)
	assert.Equal(t, "Marathon", march2.Events[0].Title)
}

func TestMonthGridMarksToday(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	weeks := MonthGrid(2024, time.March, nil, time.UTC, now)

	var found bool
	for _, week := range weeks {
		for _, day := range week {
			if day.Today {
				assert.Equal(t, 15, day.Date.Day())
				found = true
			}
		}
	}
	assert.True(t, found)
}
