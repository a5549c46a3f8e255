// Package export renders a fetched event schedule into downloadable
// documents. All renderers are pure: events in, bytes out.
package export

import (
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/mpadjest/bingeplan-web/internal/models"
)

const icsProdID = "-//BingePlan//Watch Schedule//EN"

// ICS renders the schedule as an iCalendar document importable by any
// calendar client.
func ICS(events []models.Event, now time.Time) []byte {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProdID)

	sorted := sortedByStart(events)
	for _, ev := range sorted {
		uid := fmt.Sprintf("bingeplan-%d@bingeplan", ev.ID)
		vevent := cal.AddEvent(uid)
		vevent.SetDtStampTime(now.UTC())
		vevent.SetStartAt(ev.Start.UTC())
		vevent.SetEndAt(ev.End.UTC())
		vevent.SetSummary(ev.Title)
		if ev.Description != "" {
			vevent.SetDescription(ev.Description)
		}
	}

	return []byte(cal.Serialize())
}

func sortedByStart(events []models.Event) []models.Event {
	sorted := make([]models.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })
	return sorted
}
