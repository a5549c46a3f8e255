package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/mpadjest/bingeplan-web/internal/models"
)

// PDF renders the schedule as a printable table, one row per event,
// chronological.
func PDF(events []models.Event, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.Local
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "WATCH SCHEDULE", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	headers := []string{"Date", "Start", "End", "Title"}
	widths := []float64{35, 25, 25, 105}

	pdf.SetFont("Arial", "B", 10)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, ev := range sortedByStart(events) {
		start := ev.Start.In(loc)
		end := ev.End.In(loc)
		cells := []string{
			start.Format("2006-01-02"),
			start.Format("15:04"),
			end.Format("15:04"),
			ev.Title,
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
