package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mpadjest/bingeplan-web/internal/models"
	"github.com/mpadjest/bingeplan-web/pkg/export"
	appErrors "github.com/mpadjest/bingeplan-web/pkg/errors"
)

type eventLister interface {
	ListEvents(ctx context.Context, token string) ([]models.Event, error)
}

// Export is a rendered schedule download.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders the fetched schedule into downloadable formats.
type ExportService struct {
	api     eventLister
	metrics *MetricsService
	logger  *zap.Logger
	loc     *time.Location
}

// NewExportService constructs the service.
func NewExportService(api eventLister, metrics *MetricsService, logger *zap.Logger, loc *time.Location) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &ExportService{api: api, metrics: metrics, logger: logger, loc: loc}
}

// Render fetches the current schedule and renders it in the requested
// format: "ics", "pdf" or "csv".
func (s *ExportService) Render(ctx context.Context, sess *models.Session, format string) (*Export, error) {
	start := time.Now()
	events, err := s.api.ListEvents(ctx, sess.Token)
	s.metrics.ObserveUpstreamCall("list_events", err, time.Since(start))
	if err != nil {
		return nil, err
	}

	switch format {
	case "ics":
		return &Export{
			Filename:    "bingeplan.ics",
			ContentType: "text/calendar; charset=utf-8",
			Data:        export.ICS(events, time.Now()),
		}, nil
	case "pdf":
		data, err := export.PDF(events, s.loc)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf export")
		}
		return &Export{Filename: "bingeplan.pdf", ContentType: "application/pdf", Data: data}, nil
	case "csv":
		data, err := export.CSV(events, s.loc)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv export")
		}
		return &Export{Filename: "bingeplan.csv", ContentType: "text/csv; charset=utf-8", Data: data}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown export format")
	}
}
