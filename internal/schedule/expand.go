package schedule

import (
	"fmt"
	"time"

	"github.com/mpadjest/bingeplan-web/internal/models"
)

// Expand replicates a base event weekly. For i in 0..n-1 both start and
// end shift by i whole weeks via AddDate, preserving wall-clock time and
// duration across DST transitions. When n > 1 each title gets a 1-indexed
// " (Ep i)" suffix; a single episode keeps the title untouched. The
// output is chronological and the function has no side effects.
func Expand(title, description string, start, end time.Time, n int) []models.EventPayload {
	if n < 1 {
		n = 1
	}

	payloads := make([]models.EventPayload, 0, n)
	for i := 0; i < n; i++ {
		episodeTitle := title
		if n > 1 {
			episodeTitle = fmt.Sprintf("%s (Ep %d)", title, i+1)
		}
		payloads = append(payloads, models.EventPayload{
			Title:       episodeTitle,
			Description: description,
			Start:       start.AddDate(0, 0, 7*i),
			End:         end.AddDate(0, 0, 7*i),
		})
	}

	return payloads
}
