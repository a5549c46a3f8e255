package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mpadjest/bingeplan-web/internal/models"
	"github.com/mpadjest/bingeplan-web/internal/session"
	appErrors "github.com/mpadjest/bingeplan-web/pkg/errors"
)

// EventHandler serves the event form (create, edit, delete) and its
// submissions. Deletion is gated behind an explicit confirmation page.
type EventHandler struct {
	planner         plannerService
	sessions        *session.Store
	defaultDuration int
}

// NewEventHandler creates a new handler.
func NewEventHandler(planner plannerService, sessions *session.Store, defaultDuration int) *EventHandler {
	if defaultDuration < 1 {
		defaultDuration = 60
	}
	return &EventHandler{planner: planner, sessions: sessions, defaultDuration: defaultDuration}
}

// NewForm renders an empty create form, optionally pre-filled with a
// clicked day.
func (h *EventHandler) NewForm(c *gin.Context) {
	if _, ok := currentSession(c); !ok {
		return
	}

	draft := models.EventDraft{
		Duration: h.defaultDuration,
		Episodes: 1,
	}
	if day := c.Query("date"); day != "" {
		draft.Date = day
	}
	renderPage(c, h.sessions, "event_form.html", gin.H{"Draft": draft, "Mode": "create"})
}

// Create handles the create form post: validate, resolve, expand, submit
// as one batch. Validation failures re-render the form with inline
// errors; upstream failures keep the form open with a notification.
func (h *EventHandler) Create(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	var draft models.EventDraft
	if err := c.ShouldBind(&draft); err != nil {
		c.HTML(http.StatusBadRequest, "event_form.html", gin.H{"Draft": draft, "Mode": "create", "Error": "invalid form"})
		return
	}

	fieldErrs, err := h.planner.Create(c.Request.Context(), sess, draft)
	if len(fieldErrs) > 0 {
		c.HTML(http.StatusBadRequest, "event_form.html", gin.H{"Draft": draft, "Mode": "create", "FieldErrors": fieldErrs})
		return
	}
	if err != nil {
		if appErrors.Is(err, appErrors.ErrSessionExpired) {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		c.HTML(status(err), "event_form.html", gin.H{"Draft": draft, "Mode": "create", "Error": appErrors.FromError(err).Message})
		return
	}

	message := "Event created"
	if draft.Episodes > 1 {
		message = strconv.Itoa(draft.Episodes) + " episodes scheduled"
	}
	flashAndRedirect(c, h.sessions, "success", message, "/")
}

// EditForm renders the edit form pre-filled from the stored event,
// deriving the duration from its span.
func (h *EventHandler) EditForm(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	ev, found := h.findEvent(c, sess)
	if !found {
		return
	}

	draft := h.planner.EditDraft(ev, h.defaultDuration)
	renderPage(c, h.sessions, "event_form.html", gin.H{"Draft": draft, "Mode": "edit"})
}

// Update handles the edit form post as a single update keyed by id. The
// edit path never expands recurrence.
func (h *EventHandler) Update(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	id, err := eventID(c)
	if err != nil {
		failPage(c, h.sessions, appErrors.ErrNotFound, "/")
		return
	}

	var draft models.EventDraft
	if err := c.ShouldBind(&draft); err != nil {
		c.HTML(http.StatusBadRequest, "event_form.html", gin.H{"Draft": draft, "Mode": "edit", "Error": "invalid form"})
		return
	}
	draft.ID = id

	fieldErrs, err := h.planner.Update(c.Request.Context(), sess, draft)
	if len(fieldErrs) > 0 {
		c.HTML(http.StatusBadRequest, "event_form.html", gin.H{"Draft": draft, "Mode": "edit", "FieldErrors": fieldErrs})
		return
	}
	if err != nil {
		if appErrors.Is(err, appErrors.ErrSessionExpired) {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		c.HTML(status(err), "event_form.html", gin.H{"Draft": draft, "Mode": "edit", "Error": appErrors.FromError(err).Message})
		return
	}

	flashAndRedirect(c, h.sessions, "success", "Event updated", "/")
}

// ConfirmDelete renders the yes/no gate before a delete is issued.
func (h *EventHandler) ConfirmDelete(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	ev, found := h.findEvent(c, sess)
	if !found {
		return
	}
	renderPage(c, h.sessions, "confirm_delete.html", gin.H{"Event": ev})
}

// Delete issues the delete after confirmation. A failure leaves the
// event in place and notifies.
func (h *EventHandler) Delete(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	id, err := eventID(c)
	if err != nil {
		failPage(c, h.sessions, appErrors.ErrNotFound, "/")
		return
	}

	if err := h.planner.Delete(c.Request.Context(), sess, id); err != nil {
		failPage(c, h.sessions, err, "/")
		return
	}

	flashAndRedirect(c, h.sessions, "info", "Event deleted", "/")
}

// findEvent locates one event in the authoritative list; the upstream
// API has no single-event read.
func (h *EventHandler) findEvent(c *gin.Context, sess *models.Session) (models.Event, bool) {
	id, err := eventID(c)
	if err != nil {
		failPage(c, h.sessions, appErrors.ErrNotFound, "/")
		return models.Event{}, false
	}

	events, _, err := h.planner.List(c.Request.Context(), sess)
	if err != nil {
		failPage(c, h.sessions, err, "/")
		return models.Event{}, false
	}
	for _, ev := range events {
		if ev.ID == id {
			return ev, true
		}
	}

	failPage(c, h.sessions, appErrors.ErrNotFound, "/")
	return models.Event{}, false
}

func eventID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
