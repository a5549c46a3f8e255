// Package session keeps all browser state server-side: the upstream
// bearer token, one-shot flash notifications and the last successfully
// fetched event list. The browser only ever holds an opaque session id.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mpadjest/bingeplan-web/internal/models"
	appErrors "github.com/mpadjest/bingeplan-web/pkg/errors"
)

const keyPrefix = "session:"

// Backend abstracts the persistence for session payloads.
type Backend interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Store manages session lifecycle on top of a Backend.
type Store struct {
	backend Backend
	ttl     time.Duration
	logger  *zap.Logger
}

// NewStore constructs a session store.
func NewStore(backend Backend, ttl time.Duration, logger *zap.Logger) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{backend: backend, ttl: ttl, logger: logger}
}

// Create starts a session holding the upstream bearer token.
func (s *Store) Create(ctx context.Context, token string) (*models.Session, error) {
	sess := &models.Session{
		ID:        uuid.NewString(),
		Token:     token,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.backend.Set(ctx, keyPrefix+sess.ID, sess, s.ttl); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "create session")
	}
	return sess, nil
}

// Get loads a session by id. A missing or expired session maps to
// ErrSessionExpired so callers can route to the login flow.
func (s *Store) Get(ctx context.Context, id string) (*models.Session, error) {
	if id == "" {
		return nil, appErrors.ErrSessionExpired
	}
	var sess models.Session
	if err := s.backend.Get(ctx, keyPrefix+id, &sess); err != nil {
		if appErrors.Is(err, appErrors.ErrCacheMiss) {
			return nil, appErrors.ErrSessionExpired
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load session")
	}
	return &sess, nil
}

// Save persists session mutations, refreshing the TTL.
func (s *Store) Save(ctx context.Context, sess *models.Session) error {
	if err := s.backend.Set(ctx, keyPrefix+sess.ID, sess, s.ttl); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "save session")
	}
	return nil
}

// Destroy tears the session down at logout.
func (s *Store) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.backend.Delete(ctx, keyPrefix+id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "destroy session")
	}
	return nil
}

// AddFlash queues a one-shot notification for the next page render.
// Flash failures are logged, never surfaced: a lost toast must not break
// the flow it decorates.
func (s *Store) AddFlash(ctx context.Context, id, level, message string) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		s.logger.Warn("flash on missing session", zap.Error(err))
		return
	}
	sess.Flashes = append(sess.Flashes, models.Flash{Level: level, Message: message})
	if err := s.Save(ctx, sess); err != nil {
		s.logger.Warn("flash save failed", zap.Error(err))
	}
}

// PopFlashes drains and returns queued notifications.
func (s *Store) PopFlashes(ctx context.Context, id string) []models.Flash {
	sess, err := s.Get(ctx, id)
	if err != nil || len(sess.Flashes) == 0 {
		return nil
	}
	flashes := sess.Flashes
	sess.Flashes = nil
	if err := s.Save(ctx, sess); err != nil {
		s.logger.Warn("flash drain failed", zap.Error(err))
	}
	return flashes
}

// RememberEvents stores the last-good event list for the stale-but-visible
// fallback.
func (s *Store) RememberEvents(ctx context.Context, id string, events []models.Event) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return
	}
	sess.LastEvents = events
	if err := s.Save(ctx, sess); err != nil {
		s.logger.Warn("event snapshot save failed", zap.Error(err))
	}
}

// LastEvents returns the stored snapshot, possibly nil.
func (s *Store) LastEvents(ctx context.Context, id string) []models.Event {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil
	}
	return sess.LastEvents
}
