package service

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mpadjest/bingeplan-web/internal/models"
	"github.com/mpadjest/bingeplan-web/internal/schedule"
	"github.com/mpadjest/bingeplan-web/internal/session"
	appErrors "github.com/mpadjest/bingeplan-web/pkg/errors"
)

type eventsAPI interface {
	ListEvents(ctx context.Context, token string) ([]models.Event, error)
	CreateEvents(ctx context.Context, token string, payloads []models.EventPayload) error
	UpdateEvent(ctx context.Context, token string, id int64, payload models.EventPayload) error
	DeleteEvent(ctx context.Context, token string, id int64) error
}

// PlannerService bridges the event form and the upstream API: it
// validates drafts, resolves absolute instants, expands weekly episodes
// and hands the result upstream. It never mutates local state
// optimistically; callers re-fetch after every successful mutation.
type PlannerService struct {
	api       eventsAPI
	sessions  *session.Store
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	loc       *time.Location

	// inFlight guards against duplicate submissions per session.
	inFlight sync.Map
}

// NewPlannerService constructs the service.
func NewPlannerService(api eventsAPI, sessions *session.Store, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger, loc *time.Location) *PlannerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &PlannerService{
		api:       api,
		sessions:  sessions,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		loc:       loc,
	}
}

// Location returns the zone drafts are interpreted in.
func (s *PlannerService) Location() *time.Location {
	return s.loc
}

// List fetches the authoritative event list. When the upstream is
// unreachable the last-good snapshot is served instead (stale=true); the
// caller renders it with a warning rather than an empty calendar.
func (s *PlannerService) List(ctx context.Context, sess *models.Session) (events []models.Event, stale bool, err error) {
	start := time.Now()
	events, err = s.api.ListEvents(ctx, sess.Token)
	s.metrics.ObserveUpstreamCall("list_events", err, time.Since(start))
	if err != nil {
		if appErrors.Is(err, appErrors.ErrSessionExpired) {
			return nil, false, err
		}
		if snapshot := s.sessions.LastEvents(ctx, sess.ID); snapshot != nil {
			s.logger.Warn("serving stale event list", zap.Error(err))
			return snapshot, true, nil
		}
		return nil, false, err
	}

	s.sessions.RememberEvents(ctx, sess.ID, events)
	return events, false, nil
}

// Create validates the draft, resolves its instants, expands the weekly
// episodes and submits the whole sequence as one batch. A non-nil field
// error list means the form must be re-rendered; err covers upstream
// failures.
func (s *PlannerService) Create(ctx context.Context, sess *models.Session, draft models.EventDraft) (models.FieldErrors, error) {
	draft.Normalize()
	if verr := s.validator.Struct(draft); verr != nil {
		return fieldErrors(verr), nil
	}

	start, end, err := schedule.Resolve(draft.Date, draft.Clock, draft.Duration, s.loc)
	if err != nil {
		return models.FieldErrors{{Field: "date", Message: "invalid date or time"}}, nil
	}

	if !s.begin(sess.ID) {
		return nil, appErrors.ErrSubmitInFlight
	}
	defer s.end(sess.ID)

	payloads := schedule.Expand(draft.Title, draft.Description, start, end, draft.Episodes)

	callStart := time.Now()
	err = s.api.CreateEvents(ctx, sess.Token, payloads)
	s.metrics.ObserveUpstreamCall("create_events", err, time.Since(callStart))
	if err != nil {
		return nil, err
	}
	return nil, nil
}

// Update validates the draft and replaces the identified event. The edit
// path never expands recurrence.
func (s *PlannerService) Update(ctx context.Context, sess *models.Session, draft models.EventDraft) (models.FieldErrors, error) {
	if draft.ID == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "missing event id")
	}
	draft.Episodes = 1
	if verr := s.validator.Struct(draft); verr != nil {
		return fieldErrors(verr), nil
	}

	start, end, err := schedule.Resolve(draft.Date, draft.Clock, draft.Duration, s.loc)
	if err != nil {
		return models.FieldErrors{{Field: "date", Message: "invalid date or time"}}, nil
	}

	if !s.begin(sess.ID) {
		return nil, appErrors.ErrSubmitInFlight
	}
	defer s.end(sess.ID)

	payload := models.EventPayload{
		Title:       draft.Title,
		Description: draft.Description,
		Start:       start,
		End:         end,
	}

	callStart := time.Now()
	err = s.api.UpdateEvent(ctx, sess.Token, draft.ID, payload)
	s.metrics.ObserveUpstreamCall("update_event", err, time.Since(callStart))
	if err != nil {
		return nil, err
	}
	return nil, nil
}

// Delete removes the identified event. Confirmation happens at the
// handler layer; by the time we are called the user has said yes.
func (s *PlannerService) Delete(ctx context.Context, sess *models.Session, id int64) error {
	if id == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "missing event id")
	}

	start := time.Now()
	err := s.api.DeleteEvent(ctx, sess.Token, id)
	s.metrics.ObserveUpstreamCall("delete_event", err, time.Since(start))
	return err
}

// EditDraft pre-fills the form for an existing event, deriving the
// duration from the stored span. A malformed span falls back to the
// supplied default instead of failing.
func (s *PlannerService) EditDraft(ev models.Event, defaultDuration int) models.EventDraft {
	start := ev.Start.In(s.loc)
	duration := schedule.DurationBetween(ev.Start, ev.End)
	if duration < 1 {
		duration = defaultDuration
	}
	return models.EventDraft{
		ID:          ev.ID,
		Title:       ev.Title,
		Description: ev.Description,
		Date:        start.Format(schedule.DateLayout),
		Clock:       start.Format(schedule.ClockLayout),
		Duration:    duration,
		Episodes:    1,
	}
}

func (s *PlannerService) begin(sessionID string) bool {
	_, loaded := s.inFlight.LoadOrStore(sessionID, struct{}{})
	return !loaded
}

func (s *PlannerService) end(sessionID string) {
	s.inFlight.Delete(sessionID)
}
