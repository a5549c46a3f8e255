package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mpadjest/bingeplan-web/internal/models"
	"github.com/mpadjest/bingeplan-web/internal/schedule"
	"github.com/mpadjest/bingeplan-web/internal/session"
)

type plannerService interface {
	List(ctx context.Context, sess *models.Session) ([]models.Event, bool, error)
	Create(ctx context.Context, sess *models.Session, draft models.EventDraft) (models.FieldErrors, error)
	Update(ctx context.Context, sess *models.Session, draft models.EventDraft) (models.FieldErrors, error)
	Delete(ctx context.Context, sess *models.Session, id int64) error
	EditDraft(ev models.Event, defaultDuration int) models.EventDraft
	Location() *time.Location
}

// CalendarHandler renders the month view and serves the JSON event feed.
type CalendarHandler struct {
	planner  plannerService
	sessions *session.Store
}

// NewCalendarHandler creates a new handler.
func NewCalendarHandler(planner plannerService, sessions *session.Store) *CalendarHandler {
	return &CalendarHandler{planner: planner, sessions: sessions}
}

// MonthView renders the calendar for the requested (or current) month.
// When the upstream is unreachable the last-good list is rendered with a
// staleness warning instead of an empty page.
func (h *CalendarHandler) MonthView(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	loc := h.planner.Location()
	now := time.Now().In(loc)
	year, month := monthParams(c, now)

	events, stale, err := h.planner.List(c.Request.Context(), sess)
	if err != nil {
		failPage(c, h.sessions, err, "/login")
		return
	}
	if stale {
		h.sessions.AddFlash(c.Request.Context(), sess.ID, "warning", "Could not refresh events, showing the last loaded schedule")
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	renderPage(c, h.sessions, "calendar.html", gin.H{
		"Weeks":     schedule.MonthGrid(year, month, events, loc, now),
		"Month":     first.Format("January 2006"),
		"PrevMonth": first.AddDate(0, -1, 0).Format("2006-01"),
		"NextMonth": first.AddDate(0, 1, 0).Format("2006-01"),
		"Stale":     stale,
	})
}

// EventsFeed returns the raw event list for client-side calendar
// enhancements.
func (h *CalendarHandler) EventsFeed(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	events, stale, err := h.planner.List(c.Request.Context(), sess)
	if err != nil {
		c.JSON(status(err), gin.H{"error": gin.H{"message": "failed to load events"}})
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "stale": stale})
}

// monthParams parses the ?month=YYYY-MM selector, defaulting to now.
func monthParams(c *gin.Context, now time.Time) (int, time.Month) {
	raw := c.Query("month")
	if raw != "" {
		if t, err := time.Parse("2006-01", raw); err == nil {
			return t.Year(), t.Month()
		}
	}
	if y, err := strconv.Atoi(c.Query("year")); err == nil {
		if m, err := strconv.Atoi(c.Query("m")); err == nil && m >= 1 && m <= 12 {
			return y, time.Month(m)
		}
	}
	return now.Year(), now.Month()
}
