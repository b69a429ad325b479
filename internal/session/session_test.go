package session

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"storefront/internal/logging"
	"storefront/internal/models"
)

// fakeSessionStore is an in-memory Store.
type fakeSessionStore struct {
	user      *models.User
	expiresAt time.Time
	saveErr   error
}

func (f *fakeSessionStore) SaveSession(ctx context.Context, user models.User, expiresAt time.Time) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	u := user
	f.user = &u
	f.expiresAt = expiresAt
	return nil
}

func (f *fakeSessionStore) LoadSession(ctx context.Context) (models.User, bool) {
	if f.user == nil {
		return models.User{}, false
	}
	return *f.user, true
}

func (f *fakeSessionStore) ClearSession(ctx context.Context) error {
	f.user = nil
	return nil
}

func newManager(t *testing.T) (*Manager, *fakeSessionStore) {
	t.Helper()
	fs := &fakeSessionStore{}
	return NewManager(fs, logging.NewSlogLogger(slog.New(slog.DiscardHandler))), fs
}

// signedToken builds a real JWT with the given expiry.
func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestSetCredentials_ReplacesSessionAndPersists(t *testing.T) {
	m, fs := newManager(t)
	ctx := context.Background()

	first := models.User{ID: "u1", Name: "Jane", Token: "t1"}
	require.NoError(t, m.SetCredentials(ctx, first))

	second := models.User{ID: "u2", Name: "Joe", Token: "t2"}
	require.NoError(t, m.SetCredentials(ctx, second))

	got, ok := m.Current()
	require.True(t, ok)
	require.Equal(t, second, got)
	require.Equal(t, "u2", fs.user.ID, "latest session must be persisted")
}

func TestLogout_ClearsEverything(t *testing.T) {
	m, fs := newManager(t)
	ctx := context.Background()

	require.NoError(t, m.SetCredentials(ctx, models.User{ID: "u1", Token: "t1"}))
	m.SetRedirect("shipping")

	require.NoError(t, m.Logout(ctx))

	require.False(t, m.IsAuthenticated())
	require.Empty(t, m.Token())
	require.Empty(t, m.TakeRedirect())
	require.Nil(t, fs.user, "persisted record must be removed")
}

func TestEpoch_BumpsOnEveryTransition(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	e0 := m.Epoch()
	require.NoError(t, m.SetCredentials(ctx, models.User{ID: "u1"}))
	e1 := m.Epoch()
	require.NoError(t, m.Logout(ctx))
	e2 := m.Epoch()

	require.Greater(t, e1, e0)
	require.Greater(t, e2, e1)
}

func TestSetCredentials_PersistFailureKeepsSession(t *testing.T) {
	m, fs := newManager(t)
	ctx := context.Background()
	fs.saveErr = context.DeadlineExceeded

	err := m.SetCredentials(ctx, models.User{ID: "u1", Token: "t1"})
	require.Error(t, err)
	require.True(t, m.IsAuthenticated(), "in-memory session is the source of truth")
}

func TestRestore_LoadsPersistedSession(t *testing.T) {
	m, fs := newManager(t)
	ctx := context.Background()

	fs.user = &models.User{ID: "u1", Name: "Jane", Token: signedToken(t, time.Now().Add(time.Hour))}
	m.Restore(ctx)

	got, ok := m.Current()
	require.True(t, ok)
	require.Equal(t, "u1", got.ID)
}

func TestRestore_ExpiredTokenIsDiscarded(t *testing.T) {
	m, fs := newManager(t)
	ctx := context.Background()

	fs.user = &models.User{ID: "u1", Token: signedToken(t, time.Now().Add(-time.Hour))}
	m.Restore(ctx)

	require.False(t, m.IsAuthenticated())
	require.Nil(t, fs.user, "expired session record must be cleared")
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(42 * time.Minute).Truncate(time.Second)
	got, found := TokenExpiry(signedToken(t, exp))
	require.True(t, found)
	require.WithinDuration(t, exp, got, time.Second)

	_, found = TokenExpiry("")
	require.False(t, found)

	_, found = TokenExpiry("not-a-jwt")
	require.False(t, found)
}

func TestTokenExpired(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	require.False(t, m.TokenExpired(), "unauthenticated session is not expired")

	require.NoError(t, m.SetCredentials(ctx, models.User{ID: "u1", Token: signedToken(t, time.Now().Add(-time.Minute))}))
	require.True(t, m.TokenExpired())

	require.NoError(t, m.SetCredentials(ctx, models.User{ID: "u1", Token: signedToken(t, time.Now().Add(time.Hour))}))
	require.False(t, m.TokenExpired())
}

func TestRedirectTarget(t *testing.T) {
	m, _ := newManager(t)

	m.SetRedirect("payment")
	require.Equal(t, "payment", m.TakeRedirect())
	require.Empty(t, m.TakeRedirect(), "redirect target is consumed on read")
}
