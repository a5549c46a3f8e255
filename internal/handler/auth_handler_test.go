package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mpadjest/bingeplan-web/internal/models"
	appErrors "github.com/mpadjest/bingeplan-web/pkg/errors"
)

func TestLoginSuccessSetsCookieAndRedirects(t *testing.T) {
	app := newTestApp(t)
	app.accounts.session = &models.Session{ID: "sess-1", Token: "tok", CreatedAt: time.Now()}

	form := url.Values{"email": {"dana@example.com"}, "password": {"hunter22"}}
	req, _ := http.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp := app.do(req)
	require.Equal(t, http.StatusSeeOther, resp.Code)
	require.Equal(t, "/", resp.Header().Get("Location"))

	cookies := resp.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, testCookieName, cookies[0].Name)
	require.Equal(t, "sess-1", cookies[0].Value)
	require.True(t, cookies[0].HttpOnly)
}

func TestLoginInvalidCredentialsRerendersForm(t *testing.T) {
	app := newTestApp(t)
	app.accounts.loginErr = appErrors.ErrInvalidCredentials

	form := url.Values{"email": {"dana@example.com"}, "password": {"wrong"}}
	req, _ := http.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp := app.do(req)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.Contains(t, resp.Body.String(), "invalid email or password")
	require.Contains(t, resp.Body.String(), "dana@example.com")
}

func TestLoginFieldErrorsShownInline(t *testing.T) {
	app := newTestApp(t)
	app.accounts.fieldErrs = models.FieldErrors{{Field: "email", Message: "must be a valid email address"}}

	form := url.Values{"email": {"not-an-email"}, "password": {"hunter22"}}
	req, _ := http.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp := app.do(req)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Contains(t, resp.Body.String(), "must be a valid email address")
}

func TestRegisterSuccessLandsOnLogin(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{"name": {"Dana"}, "email": {"dana@example.com"}, "password": {"hunter22"}}
	req, _ := http.NewRequest(http.MethodPost, "/register", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp := app.do(req)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "Account created")
}

func TestLogoutClearsSessionAndCookie(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signIn(t)

	req, _ := http.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(cookie)

	resp := app.do(req)
	require.Equal(t, http.StatusSeeOther, resp.Code)
	require.Equal(t, "/login", resp.Header().Get("Location"))
	require.Equal(t, []string{cookie.Value}, app.accounts.loggedOutIDs)
}

func TestProtectedPageWithoutSessionRedirectsToLogin(t *testing.T) {
	app := newTestApp(t)

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	resp := app.do(req)
	require.Equal(t, http.StatusSeeOther, resp.Code)
	require.Equal(t, "/login", resp.Header().Get("Location"))
}

func TestExpiredSessionCookieRedirectsToLogin(t *testing.T) {
	app := newTestApp(t)
	sess, err := app.sessions.Create(context.Background(), "tok")
	require.NoError(t, err)
	require.NoError(t, app.sessions.Destroy(context.Background(), sess.ID))

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: sess.ID})

	resp := app.do(req)
	require.Equal(t, http.StatusSeeOther, resp.Code)
	require.Equal(t, "/login", resp.Header().Get("Location"))
}
