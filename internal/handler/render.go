package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mpadjest/bingeplan-web/internal/middleware"
	"github.com/mpadjest/bingeplan-web/internal/models"
	"github.com/mpadjest/bingeplan-web/internal/session"
	appErrors "github.com/mpadjest/bingeplan-web/pkg/errors"
)

// renderPage renders an HTML template with the one-shot flashes drained
// into the view data.
func renderPage(c *gin.Context, flashes *session.Store, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if sess := middleware.SessionFrom(c); sess != nil && flashes != nil {
		data["Flashes"] = flashes.PopFlashes(c.Request.Context(), sess.ID)
	}
	c.HTML(http.StatusOK, name, data)
}

// failPage converts a service error into a user-visible outcome: expired
// sessions route to the login flow, everything else becomes a flash on
// the fallback route. Nothing is fatal.
func failPage(c *gin.Context, flashes *session.Store, err error, fallback string) {
	if appErrors.Is(err, appErrors.ErrSessionExpired) || appErrors.Is(err, appErrors.ErrUnauthorized) {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	if sess := middleware.SessionFrom(c); sess != nil && flashes != nil {
		flashes.AddFlash(c.Request.Context(), sess.ID, "error", appErrors.FromError(err).Message)
	}
	c.Redirect(http.StatusSeeOther, fallback)
}

// flashAndRedirect queues a notification and navigates.
func flashAndRedirect(c *gin.Context, flashes *session.Store, level, message, target string) {
	if sess := middleware.SessionFrom(c); sess != nil && flashes != nil {
		flashes.AddFlash(c.Request.Context(), sess.ID, level, message)
	}
	c.Redirect(http.StatusSeeOther, target)
}

// currentSession returns the attached session or rejects the request.
func currentSession(c *gin.Context) (*models.Session, bool) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		c.Redirect(http.StatusSeeOther, "/login")
		c.Abort()
		return nil, false
	}
	return sess, true
}
