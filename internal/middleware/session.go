package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mpadjest/bingeplan-web/internal/models"
	"github.com/mpadjest/bingeplan-web/internal/session"
	appErrors "github.com/mpadjest/bingeplan-web/pkg/errors"
)

// ContextSessionKey is the gin context key storing the current session.
const ContextSessionKey = "currentSession"

// RequireSession protects routes behind a live session. Browser page
// requests are redirected to the login flow; feed routes under /api get
// a 401 body instead.
func RequireSession(store *session.Store, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cookieName)
		if err != nil || id == "" {
			reject(c)
			return
		}

		sess, err := store.Get(c.Request.Context(), id)
		if err != nil {
			reject(c)
			return
		}

		c.Set(ContextSessionKey, sess)
		c.Next()
	}
}

// SessionFrom returns the session attached by RequireSession.
func SessionFrom(c *gin.Context) *models.Session {
	if v, ok := c.Get(ContextSessionKey); ok {
		if sess, ok := v.(*models.Session); ok {
			return sess
		}
	}
	return nil
}

func reject(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": appErrors.ErrSessionExpired})
		return
	}
	c.Redirect(http.StatusSeeOther, "/login")
	c.Abort()
}
