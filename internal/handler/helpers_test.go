package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mpadjest/bingeplan-web/internal/middleware"
	"github.com/mpadjest/bingeplan-web/internal/models"
	"github.com/mpadjest/bingeplan-web/internal/service"
	"github.com/mpadjest/bingeplan-web/internal/session"
	"github.com/mpadjest/bingeplan-web/internal/view"
	"github.com/mpadjest/bingeplan-web/pkg/config"
)

const testCookieName = "bingeplan_session"

type plannerMock struct {
	events     []models.Event
	stale      bool
	listErr    error
	fieldErrs  models.FieldErrors
	createErr  error
	updateErr  error
	deleteErr  error
	created    []models.EventDraft
	updated    []models.EventDraft
	deletedIDs []int64
}

func (m *plannerMock) List(ctx context.Context, sess *models.Session) ([]models.Event, bool, error) {
	return m.events, m.stale, m.listErr
}

func (m *plannerMock) Create(ctx context.Context, sess *models.Session, draft models.EventDraft) (models.FieldErrors, error) {
	m.created = append(m.created, draft)
	return m.fieldErrs, m.createErr
}

func (m *plannerMock) Update(ctx context.Context, sess *models.Session, draft models.EventDraft) (models.FieldErrors, error) {
	m.updated = append(m.updated, draft)
	return m.fieldErrs, m.updateErr
}

func (m *plannerMock) Delete(ctx context.Context, sess *models.Session, id int64) error {
	m.deletedIDs = append(m.deletedIDs, id)
	return m.deleteErr
}

func (m *plannerMock) EditDraft(ev models.Event, defaultDuration int) models.EventDraft {
	return models.EventDraft{
		ID:       ev.ID,
		Title:    ev.Title,
		Date:     ev.Start.Format("2006-01-02"),
		Clock:    ev.Start.Format("15:04"),
		Duration: int(ev.End.Sub(ev.Start).Minutes()),
		Episodes: 1,
	}
}

func (m *plannerMock) Location() *time.Location { return time.UTC }

type accountsMock struct {
	session      *models.Session
	loginErr     error
	registerErr  error
	fieldErrs    models.FieldErrors
	loggedOutIDs []string
}

func (m *accountsMock) Login(ctx context.Context, req models.LoginRequest) (*models.Session, models.FieldErrors, error) {
	return m.session, m.fieldErrs, m.loginErr
}

func (m *accountsMock) Register(ctx context.Context, req models.RegisterRequest) (models.FieldErrors, error) {
	return m.fieldErrs, m.registerErr
}

func (m *accountsMock) Logout(ctx context.Context, sessionID string) {
	m.loggedOutIDs = append(m.loggedOutIDs, sessionID)
}

type profileMock struct {
	user          *models.User
	userErr       error
	fieldErrs     models.FieldErrors
	updateErr     error
	authURL       string
	authURLErr    error
	connectErr    error
	disconnectErr error
	syncMsg       string
	syncErr       error
	connectCodes  []string
}

func (m *profileMock) CurrentUser(ctx context.Context, sess *models.Session) (*models.User, error) {
	return m.user, m.userErr
}

func (m *profileMock) UpdateProfile(ctx context.Context, sess *models.Session, req models.ProfileUpdateRequest) (models.FieldErrors, error) {
	return m.fieldErrs, m.updateErr
}

func (m *profileMock) GoogleAuthURL(ctx context.Context, sess *models.Session) (string, error) {
	return m.authURL, m.authURLErr
}

func (m *profileMock) FinishGoogleConnect(ctx context.Context, sess *models.Session, code string) error {
	m.connectCodes = append(m.connectCodes, code)
	return m.connectErr
}

func (m *profileMock) GoogleDisconnect(ctx context.Context, sess *models.Session) error {
	return m.disconnectErr
}

func (m *profileMock) SyncGoogle(ctx context.Context, sess *models.Session) (string, error) {
	return m.syncMsg, m.syncErr
}

type exportMock struct {
	export *service.Export
	err    error
}

func (m *exportMock) Render(ctx context.Context, sess *models.Session, format string) (*service.Export, error) {
	return m.export, m.err
}

type testApp struct {
	router   *gin.Engine
	sessions *session.Store
	planner  *plannerMock
	accounts *accountsMock
	profile  *profileMock
	export   *exportMock
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := session.NewStore(session.NewMemoryBackend(), time.Hour, nil)
	app := &testApp{
		sessions: sessions,
		planner:  &plannerMock{},
		accounts: &accountsMock{},
		profile:  &profileMock{user: &models.User{ID: 1, Name: "Dana", Email: "dana@example.com"}},
		export:   &exportMock{},
	}

	cookieCfg := config.SessionConfig{CookieName: testCookieName, TTL: time.Hour}
	authHandler := NewAuthHandler(app.accounts, sessions, cookieCfg)
	calendarHandler := NewCalendarHandler(app.planner, sessions)
	eventHandler := NewEventHandler(app.planner, sessions, 60)
	profileHandler := NewProfileHandler(app.profile, sessions)
	exportHandler := NewExportHandler(app.export, sessions)

	tmpl, err := view.Templates()
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)
	r.GET("/register", authHandler.RegisterPage)
	r.POST("/register", authHandler.Register)
	r.POST("/logout", authHandler.Logout)

	authed := r.Group("/")
	authed.Use(middleware.RequireSession(sessions, testCookieName))
	{
		authed.GET("/", calendarHandler.MonthView)
		authed.GET("/events/new", eventHandler.NewForm)
		authed.POST("/events", eventHandler.Create)
		authed.GET("/events/export", exportHandler.Download)
		authed.GET("/events/:id/edit", eventHandler.EditForm)
		authed.POST("/events/:id", eventHandler.Update)
		authed.GET("/events/:id/delete", eventHandler.ConfirmDelete)
		authed.POST("/events/:id/delete", eventHandler.Delete)
		authed.GET("/profile", profileHandler.Page)
		authed.POST("/profile", profileHandler.Update)
		authed.POST("/profile/google/connect", profileHandler.ConnectGoogle)
		authed.GET("/google-callback", profileHandler.GoogleCallback)
		authed.GET("/profile/google/disconnect", profileHandler.ConfirmDisconnect)
		authed.POST("/profile/google/disconnect", profileHandler.DisconnectGoogle)
		authed.POST("/profile/google/sync", profileHandler.SyncGoogle)
		authed.GET("/api/events", calendarHandler.EventsFeed)
	}

	app.router = r
	return app
}

// signIn seeds a live session in the store and returns its cookie.
func (a *testApp) signIn(t *testing.T) *http.Cookie {
	t.Helper()
	sess, err := a.sessions.Create(context.Background(), "token-123")
	require.NoError(t, err)
	return &http.Cookie{Name: testCookieName, Value: sess.ID}
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	a.router.ServeHTTP(resp, req)
	return resp
}
