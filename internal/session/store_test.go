package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpadjest/bingeplan-web/internal/models"
	appErrors "github.com/mpadjest/bingeplan-web/pkg/errors"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return map[string]Backend{
		"memory": NewMemoryBackend(),
		"redis":  NewRedisBackend(client),
	}
}

func TestSessionLifecycle(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := NewStore(backend, time.Hour, nil)

			sess, err := store.Create(ctx, "token-123")
			require.NoError(t, err)
			require.NotEmpty(t, sess.ID)

			loaded, err := store.Get(ctx, sess.ID)
			require.NoError(t, err)
			assert.Equal(t, "token-123", loaded.Token)

			require.NoError(t, store.Destroy(ctx, sess.ID))
			_, err = store.Get(ctx, sess.ID)
			assert.True(t, appErrors.Is(err, appErrors.ErrSessionExpired))
		})
	}
}

func TestMissingSessionMapsToExpired(t *testing.T) {
	store := NewStore(NewMemoryBackend(), time.Hour, nil)

	_, err := store.Get(context.Background(), "nope")
	assert.True(t, appErrors.Is(err, appErrors.ErrSessionExpired))

	_, err = store.Get(context.Background(), "")
	assert.True(t, appErrors.Is(err, appErrors.ErrSessionExpired))
}

func TestFlashesAreOneShot(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := NewStore(backend, time.Hour, nil)

			sess, err := store.Create(ctx, "t")
			require.NoError(t, err)

			store.AddFlash(ctx, sess.ID, "success", "Event created")
			store.AddFlash(ctx, sess.ID, "error", "Sync failed")

			flashes := store.PopFlashes(ctx, sess.ID)
			require.Len(t, flashes, 2)
			assert.Equal(t, models.Flash{Level: "success", Message: "Event created"}, flashes[0])

			assert.Empty(t, store.PopFlashes(ctx, sess.ID))
		})
	}
}

func TestEventSnapshotSurvivesUpstreamOutage(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryBackend(), time.Hour, nil)

	sess, err := store.Create(ctx, "t")
	require.NoError(t, err)

	events := []models.Event{{
		ID:    1,
		Title: "Show X",
		Start: time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 1, 21, 0, 0, 0, time.UTC),
	}}
	store.RememberEvents(ctx, sess.ID, events)

	got := store.LastEvents(ctx, sess.ID)
	require.Len(t, got, 1)
	assert.Equal(t, "Show X", got[0].Title)
	assert.True(t, got[0].Start.Equal(events[0].Start))
}

func TestMemoryBackendExpiry(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()

	require.NoError(t, backend.Set(ctx, "k", "v", -time.Second))

	var out string
	err := backend.Get(ctx, "k", &out)
	assert.True(t, appErrors.Is(err, appErrors.ErrCacheMiss))
}

func TestRedisBackendTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewStore(NewRedisBackend(client), time.Minute, nil)
	ctx := context.Background()

	sess, err := store.Create(ctx, "t")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = store.Get(ctx, sess.ID)
	assert.True(t, appErrors.Is(err, appErrors.ErrSessionExpired))
}
