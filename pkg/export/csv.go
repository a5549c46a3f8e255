package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/mpadjest/bingeplan-web/internal/models"
)

// CSV renders the schedule as comma-separated rows, chronological.
func CSV(events []models.Event, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.Local
	}

	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	if err := writer.Write([]string{"id", "title", "description", "start", "end"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, ev := range sortedByStart(events) {
		record := []string{
			strconv.FormatInt(ev.ID, 10),
			ev.Title,
			ev.Description,
			ev.Start.In(loc).Format(time.RFC3339),
			ev.End.In(loc).Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
