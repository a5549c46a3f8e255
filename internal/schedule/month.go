package schedule

import (
	"sort"
	"time"

	"github.com/mpadjest/bingeplan-web/internal/models"
)

// Day is one cell of the rendered month grid.
type Day struct {
	Date    time.Time
	InMonth bool
	Today   bool
	Events  []models.Event
}

// Week is one row of the grid, always seven days, Sunday first.
type Week [7]Day

// MonthGrid lays out a month as full weeks padded with the surrounding
// days, attaching each event to every day its span touches. Events are
// interpreted in loc for day bucketing.
func MonthGrid(year int, month time.Month, events []models.Event, loc *time.Location, now time.Time) []Week {
	if loc == nil {
		loc = time.Local
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	gridStart := first.AddDate(0, 0, -int(first.Weekday()))
	last := first.AddDate(0, 1, -1)
	gridEnd := last.AddDate(0, 0, 6-int(last.Weekday()))

	byDay := bucketByDay(events, gridStart, gridEnd, loc)
	today := now.In(loc)

	var weeks []Week
	for cursor := gridStart; !cursor.After(gridEnd); {
		var week Week
		for i := 0; i < 7; i++ {
			week[i] = Day{
				Date:    cursor,
				InMonth: cursor.Month() == month,
				Today:   sameDay(cursor, today),
				Events:  byDay[dayKey(cursor)],
			}
			cursor = cursor.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}

	return weeks
}

func bucketByDay(events []models.Event, gridStart, gridEnd time.Time, loc *time.Location) map[string][]models.Event {
	byDay := make(map[string][]models.Event)
	for _, ev := range events {
		start := ev.Start.In(loc)
		end := ev.End.In(loc)
		if end.Before(start) {
			end = start
		}
		for day := startOfDay(start); !day.After(end) && !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
			if day.Before(startOfDay(gridStart)) {
				continue
			}
			key := dayKey(day)
			byDay[key] = append(byDay[key], ev)
		}
	}
	for key := range byDay {
		evs := byDay[key]
		sort.SliceStable(evs, func(i, j int) bool { return evs[i].Start.Before(evs[j].Start) })
		byDay[key] = evs
	}
	return byDay
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func dayKey(t time.Time) string {
	return t.Format(DateLayout)
}
