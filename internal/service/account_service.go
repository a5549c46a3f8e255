package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mpadjest/bingeplan-web/internal/models"
	"github.com/mpadjest/bingeplan-web/internal/session"
)

type accountAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (string, error)
	Register(ctx context.Context, req models.RegisterRequest) error
	Me(ctx context.Context, token string) (*models.User, error)
	UpdateProfile(ctx context.Context, token string, req models.ProfileUpdateRequest) error
	GoogleAuthURL(ctx context.Context, token string) (string, error)
	GoogleCallback(ctx context.Context, token, code string) error
	GoogleDisconnect(ctx context.Context, token string) error
	SyncGoogle(ctx context.Context, token string) (string, error)
}

// AccountService owns the session lifecycle and every account-facing
// upstream flow: login, registration, profile and the Google Calendar
// connection.
type AccountService struct {
	api       accountAPI
	sessions  *session.Store
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewAccountService constructs the service.
func NewAccountService(api accountAPI, sessions *session.Store, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *AccountService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{api: api, sessions: sessions, validator: validate, metrics: metrics, logger: logger}
}

// Login exchanges credentials upstream and starts a session holding the
// returned bearer token.
func (s *AccountService) Login(ctx context.Context, req models.LoginRequest) (*models.Session, models.FieldErrors, error) {
	if verr := s.validator.Struct(req); verr != nil {
		return nil, fieldErrors(verr), nil
	}

	start := time.Now()
	token, err := s.api.Login(ctx, req)
	s.metrics.ObserveUpstreamCall("login", err, time.Since(start))
	if err != nil {
		return nil, nil, err
	}

	sess, err := s.sessions.Create(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	return sess, nil, nil
}

// Register forwards the sign-up form upstream. The account role defaults
// to "viewer" when the form leaves it blank.
func (s *AccountService) Register(ctx context.Context, req models.RegisterRequest) (models.FieldErrors, error) {
	if req.Role == "" {
		req.Role = "viewer"
	}
	if verr := s.validator.Struct(req); verr != nil {
		return fieldErrors(verr), nil
	}

	start := time.Now()
	err := s.api.Register(ctx, req)
	s.metrics.ObserveUpstreamCall("register", err, time.Since(start))
	return nil, err
}

// Logout destroys the session. The upstream token simply stops being
// used; the upstream owns its expiry.
func (s *AccountService) Logout(ctx context.Context, sessionID string) {
	if err := s.sessions.Destroy(ctx, sessionID); err != nil {
		s.logger.Warn("session teardown failed", zap.Error(err))
	}
}

// CurrentUser fetches the authenticated profile.
func (s *AccountService) CurrentUser(ctx context.Context, sess *models.Session) (*models.User, error) {
	start := time.Now()
	user, err := s.api.Me(ctx, sess.Token)
	s.metrics.ObserveUpstreamCall("me", err, time.Since(start))
	return user, err
}

// UpdateProfile saves the editable profile fields.
func (s *AccountService) UpdateProfile(ctx context.Context, sess *models.Session, req models.ProfileUpdateRequest) (models.FieldErrors, error) {
	if verr := s.validator.Struct(req); verr != nil {
		return fieldErrors(verr), nil
	}

	start := time.Now()
	err := s.api.UpdateProfile(ctx, sess.Token, req)
	s.metrics.ObserveUpstreamCall("update_profile", err, time.Since(start))
	return nil, err
}

// GoogleAuthURL returns the external authorization URL to redirect the
// browser to (phase 1 of the connect protocol).
func (s *AccountService) GoogleAuthURL(ctx context.Context, sess *models.Session) (string, error) {
	start := time.Now()
	url, err := s.api.GoogleAuthURL(ctx, sess.Token)
	s.metrics.ObserveUpstreamCall("google_auth_url", err, time.Since(start))
	return url, err
}

// FinishGoogleConnect exchanges the one-time code (phase 2). The caller
// navigates back to the profile view regardless of the outcome.
func (s *AccountService) FinishGoogleConnect(ctx context.Context, sess *models.Session, code string) error {
	start := time.Now()
	err := s.api.GoogleCallback(ctx, sess.Token, code)
	s.metrics.ObserveUpstreamCall("google_callback", err, time.Since(start))
	return err
}

// GoogleDisconnect detaches the linked Google account.
func (s *AccountService) GoogleDisconnect(ctx context.Context, sess *models.Session) error {
	start := time.Now()
	err := s.api.GoogleDisconnect(ctx, sess.Token)
	s.metrics.ObserveUpstreamCall("google_disconnect", err, time.Since(start))
	return err
}

// SyncGoogle pushes the schedule to the connected calendar and returns
// the upstream status message.
func (s *AccountService) SyncGoogle(ctx context.Context, sess *models.Session) (string, error) {
	start := time.Now()
	msg, err := s.api.SyncGoogle(ctx, sess.Token)
	s.metrics.ObserveUpstreamCall("sync_google", err, time.Since(start))
	return msg, err
}
