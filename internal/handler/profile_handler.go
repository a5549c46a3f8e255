package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mpadjest/bingeplan-web/internal/models"
	"github.com/mpadjest/bingeplan-web/internal/session"
	appErrors "github.com/mpadjest/bingeplan-web/pkg/errors"
)

type profileService interface {
	CurrentUser(ctx context.Context, sess *models.Session) (*models.User, error)
	UpdateProfile(ctx context.Context, sess *models.Session, req models.ProfileUpdateRequest) (models.FieldErrors, error)
	GoogleAuthURL(ctx context.Context, sess *models.Session) (string, error)
	FinishGoogleConnect(ctx context.Context, sess *models.Session, code string) error
	GoogleDisconnect(ctx context.Context, sess *models.Session) error
	SyncGoogle(ctx context.Context, sess *models.Session) (string, error)
}

// ProfileHandler serves the profile page, profile edits and the Google
// Calendar connection flows.
type ProfileHandler struct {
	accounts profileService
	sessions *session.Store
}

// NewProfileHandler creates a new handler.
func NewProfileHandler(accounts profileService, sessions *session.Store) *ProfileHandler {
	return &ProfileHandler{accounts: accounts, sessions: sessions}
}

// Page renders the profile settings view.
func (h *ProfileHandler) Page(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	user, err := h.accounts.CurrentUser(c.Request.Context(), sess)
	if err != nil {
		failPage(c, h.sessions, err, "/login")
		return
	}
	renderPage(c, h.sessions, "profile.html", gin.H{"User": user})
}

// Update saves the editable profile fields.
func (h *ProfileHandler) Update(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	var req models.ProfileUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		failPage(c, h.sessions, appErrors.Clone(appErrors.ErrValidation, "invalid profile form"), "/profile")
		return
	}

	fieldErrs, err := h.accounts.UpdateProfile(c.Request.Context(), sess, req)
	if len(fieldErrs) > 0 {
		user, uerr := h.accounts.CurrentUser(c.Request.Context(), sess)
		if uerr != nil {
			failPage(c, h.sessions, uerr, "/login")
			return
		}
		c.HTML(http.StatusBadRequest, "profile.html", gin.H{"User": user, "FieldErrors": fieldErrs, "Form": req})
		return
	}
	if err != nil {
		failPage(c, h.sessions, err, "/profile")
		return
	}

	flashAndRedirect(c, h.sessions, "success", "Profile updated successfully", "/profile")
}

// ConnectGoogle starts the OAuth round-trip: fetch the authorization URL
// and redirect the browser to it (phase 1).
func (h *ProfileHandler) ConnectGoogle(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	url, err := h.accounts.GoogleAuthURL(c.Request.Context(), sess)
	if err != nil {
		failPage(c, h.sessions, appErrors.Clone(appErrors.FromError(err), "Could not initiate Google Auth"), "/profile")
		return
	}
	c.Redirect(http.StatusSeeOther, url)
}

// GoogleCallback receives the one-time code and exchanges it (phase 2).
// The user lands back on the profile view whatever the outcome.
func (h *ProfileHandler) GoogleCallback(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	code := c.Query("code")
	if code == "" {
		flashAndRedirect(c, h.sessions, "error", "Google connection was cancelled", "/profile")
		return
	}

	if err := h.accounts.FinishGoogleConnect(c.Request.Context(), sess, code); err != nil {
		flashAndRedirect(c, h.sessions, "error", "Failed to connect Google Calendar", "/profile")
		return
	}
	flashAndRedirect(c, h.sessions, "success", "Google Calendar connected", "/profile")
}

// ConfirmDisconnect renders the yes/no gate before detaching Google.
func (h *ProfileHandler) ConfirmDisconnect(c *gin.Context) {
	if _, ok := currentSession(c); !ok {
		return
	}
	renderPage(c, h.sessions, "confirm_disconnect.html", gin.H{})
}

// DisconnectGoogle detaches the linked account after confirmation.
func (h *ProfileHandler) DisconnectGoogle(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	if err := h.accounts.GoogleDisconnect(c.Request.Context(), sess); err != nil {
		failPage(c, h.sessions, appErrors.Clone(appErrors.FromError(err), "Failed to disconnect"), "/profile")
		return
	}
	flashAndRedirect(c, h.sessions, "success", "Google Calendar disconnected", "/profile")
}

// SyncGoogle pushes the schedule to the connected calendar.
func (h *ProfileHandler) SyncGoogle(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	msg, err := h.accounts.SyncGoogle(c.Request.Context(), sess)
	if err != nil {
		failPage(c, h.sessions, appErrors.Clone(appErrors.FromError(err), "Sync failed. Connect account first?"), "/profile")
		return
	}
	if msg == "" {
		msg = "Events synced to Google Calendar"
	}
	flashAndRedirect(c, h.sessions, "success", msg, "/profile")
}
