package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mpadjest/bingeplan-web/internal/models"
	"github.com/mpadjest/bingeplan-web/internal/session"
	"github.com/mpadjest/bingeplan-web/pkg/config"
	appErrors "github.com/mpadjest/bingeplan-web/pkg/errors"
)

type accountService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.Session, models.FieldErrors, error)
	Register(ctx context.Context, req models.RegisterRequest) (models.FieldErrors, error)
	Logout(ctx context.Context, sessionID string)
}

// AuthHandler serves the login and registration pages and their form
// posts. These routes are the only unauthenticated surface.
type AuthHandler struct {
	accounts accountService
	sessions *session.Store
	cookie   config.SessionConfig
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(accounts accountService, sessions *session.Store, cookie config.SessionConfig) *AuthHandler {
	return &AuthHandler{accounts: accounts, sessions: sessions, cookie: cookie}
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Login handles the credential form post. On success it sets the session
// cookie and lands on the calendar.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{"Error": "invalid login form", "Email": req.Email})
		return
	}

	sess, fieldErrs, err := h.accounts.Login(c.Request.Context(), req)
	if len(fieldErrs) > 0 {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{"FieldErrors": fieldErrs, "Email": req.Email})
		return
	}
	if err != nil {
		c.HTML(status(err), "login.html", gin.H{"Error": appErrors.FromError(err).Message, "Email": req.Email})
		return
	}

	h.setCookie(c, sess.ID, int(h.cookie.TTL.Seconds()))
	c.Redirect(http.StatusSeeOther, "/")
}

// RegisterPage renders the sign-up form.
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

// Register handles the sign-up form post and routes to the login page on
// success.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{"Error": "invalid registration form"})
		return
	}

	fieldErrs, err := h.accounts.Register(c.Request.Context(), req)
	if len(fieldErrs) > 0 {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{"FieldErrors": fieldErrs, "Form": req})
		return
	}
	if err != nil {
		c.HTML(status(err), "register.html", gin.H{"Error": appErrors.FromError(err).Message, "Form": req})
		return
	}

	c.HTML(http.StatusOK, "login.html", gin.H{"Notice": "Account created, you can log in now"})
}

// Logout tears the session down and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if id, err := c.Cookie(h.cookie.CookieName); err == nil && id != "" {
		h.accounts.Logout(c.Request.Context(), id)
	}
	h.setCookie(c, "", -1)
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.CookieName, value, maxAge, "/", "", h.cookie.CookieSecure, true)
}

func status(err error) int {
	s := appErrors.FromError(err).Status
	if s == 0 {
		return http.StatusInternalServerError
	}
	return s
}
