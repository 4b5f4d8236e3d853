package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newSessionFixture(t *testing.T) *SessionManager {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionManager(client, "test_session", "super-secret", time.Hour, false)
}

func commitCookie(t *testing.T, sm *SessionManager, sess *Session) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(context.Background(), rec, sess))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestSessionRoundTrip(t *testing.T) {
	sm := newSessionFixture(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	require.NoError(t, err)
	require.Empty(t, sess.User())

	sess.SetUser("admin")
	cookie := commitCookie(t, sm, sess)
	require.Contains(t, cookie.Value, ".", "cookie value carries id and signature")

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	loaded, err := sm.Load(ctx, req)
	require.NoError(t, err)
	require.Equal(t, "admin", loaded.User())
}

func TestSessionRejectsTamperedCookie(t *testing.T) {
	sm := newSessionFixture(t)
	ctx := context.Background()

	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	sess.SetUser("admin")
	cookie := commitCookie(t, sm, sess)

	// Swapping the session id while keeping the old signature must not
	// authenticate.
	_, sig, found := strings.Cut(cookie.Value, ".")
	require.True(t, found)
	forged := &http.Cookie{Name: cookie.Name, Value: "another-id." + sig}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(forged)
	loaded, err := sm.Load(ctx, req)
	require.NoError(t, err)
	require.Empty(t, loaded.User(), "tampered cookie degrades to a guest session")

	// An unsigned bare id is rejected the same way.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: sess.ID})
	loaded, err = sm.Load(ctx, req)
	require.NoError(t, err)
	require.Empty(t, loaded.User())
}

func TestSessionDestroy(t *testing.T) {
	sm := newSessionFixture(t)
	ctx := context.Background()

	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	sess.SetUser("admin")
	cookie := commitCookie(t, sm, sess)

	sm.Destroy(sess)
	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec, sess))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	loaded, err := sm.Load(ctx, req)
	require.NoError(t, err)
	require.Empty(t, loaded.User(), "destroyed session no longer resolves a user")
}
