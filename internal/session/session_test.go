package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rentalconnect/internal/domain"
	"rentalconnect/internal/pkg/jwt"
	"rentalconnect/internal/repository"
	"rentalconnect/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDBManager(t *testing.T) *Manager {
	t.Helper()
	db := testutil.NewDB(t)
	return NewManager(repository.NewSessionRepository(db), jwt.New("test-secret", time.Hour), time.Hour, CookieConfig{})
}

func newRedisManager(t *testing.T) (*Manager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewManager(repository.NewRedisSessionStore(rdb), jwt.New("test-secret", time.Hour), time.Hour, CookieConfig{}), mr
}

func requestWithCookies(cookies []*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func managers(t *testing.T) map[string]*Manager {
	redisMgr, _ := newRedisManager(t)
	return map[string]*Manager{
		"db":    newDBManager(t),
		"redis": redisMgr,
	}
}

func TestStartResolveDestroy(t *testing.T) {
	for name, m := range managers(t) {
		t.Run(name, func(t *testing.T) {
			user := &domain.User{ID: 7, Role: domain.RoleLandlord}

			w := httptest.NewRecorder()
			s, err := m.Start(t.Context(), w, user)
			require.NoError(t, err)

			cookies := w.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, DefaultCookieName, cookies[0].Name)
			assert.True(t, cookies[0].HttpOnly)
			assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
			assert.NotEqual(t, s.ID, cookies[0].Value, "cookie carries a signed value, not the raw id")

			got, err := m.Resolve(requestWithCookies(cookies))
			require.NoError(t, err)
			assert.Equal(t, int64(7), got.UserID)
			assert.Equal(t, domain.RoleLandlord, got.Role)

			w2 := httptest.NewRecorder()
			require.NoError(t, m.Destroy(w2, requestWithCookies(cookies)))
			cleared := w2.Result().Cookies()
			require.Len(t, cleared, 1)
			assert.Equal(t, -1, cleared[0].MaxAge)

			_, err = m.Resolve(requestWithCookies(cookies))
			assert.ErrorIs(t, err, ErrNoSession)
		})
	}
}

func TestResolve_NoCookie(t *testing.T) {
	m := newDBManager(t)
	_, err := m.Resolve(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestResolve_ForgedCookie(t *testing.T) {
	m := newDBManager(t)
	forged, err := jwt.New("other-secret", time.Hour).GenerateToken("whatever")
	require.NoError(t, err)

	_, err = m.Resolve(requestWithCookies([]*http.Cookie{{Name: DefaultCookieName, Value: forged}}))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestResolve_UnknownSession(t *testing.T) {
	m := newDBManager(t)
	token, err := jwt.New("test-secret", time.Hour).GenerateToken("does-not-exist")
	require.NoError(t, err)

	_, err = m.Resolve(requestWithCookies([]*http.Cookie{{Name: DefaultCookieName, Value: token}}))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestResolve_ExpiredSessionIsDeleted(t *testing.T) {
	m := newDBManager(t)
	w := httptest.NewRecorder()
	s, err := m.Start(t.Context(), w, &domain.User{ID: 1, Role: domain.RoleRenter})
	require.NoError(t, err)

	m.now = func() time.Time { return s.ExpiresAt.Add(time.Second) }

	_, err = m.Resolve(requestWithCookies(w.Result().Cookies()))
	assert.ErrorIs(t, err, ErrExpired)

	_, err = m.store.Get(t.Context(), s.ID)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestRevokeUser(t *testing.T) {
	for name, m := range managers(t) {
		t.Run(name, func(t *testing.T) {
			user := &domain.User{ID: 3, Role: domain.RoleRenter}
			w1, w2 := httptest.NewRecorder(), httptest.NewRecorder()
			_, err := m.Start(t.Context(), w1, user)
			require.NoError(t, err)
			_, err = m.Start(t.Context(), w2, user)
			require.NoError(t, err)

			require.NoError(t, m.RevokeUser(t.Context(), user.ID))

			_, err = m.Resolve(requestWithCookies(w1.Result().Cookies()))
			assert.ErrorIs(t, err, ErrNoSession)
			_, err = m.Resolve(requestWithCookies(w2.Result().Cookies()))
			assert.ErrorIs(t, err, ErrNoSession)
		})
	}
}

func TestCleanup_DBStore(t *testing.T) {
	m := newDBManager(t)
	w := httptest.NewRecorder()
	s, err := m.Start(t.Context(), w, &domain.User{ID: 1, Role: domain.RoleRenter})
	require.NoError(t, err)

	n, err := m.Cleanup(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	m.now = func() time.Time { return s.ExpiresAt.Add(time.Minute) }
	n, err = m.Cleanup(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRedisStore_KeysExpireWithSession(t *testing.T) {
	m, mr := newRedisManager(t)
	w := httptest.NewRecorder()
	_, err := m.Start(t.Context(), w, &domain.User{ID: 9, Role: domain.RoleRenter})
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = m.Resolve(requestWithCookies(w.Result().Cookies()))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestParseSameSite(t *testing.T) {
	assert.Equal(t, http.SameSiteStrictMode, ParseSameSite("Strict"))
	assert.Equal(t, http.SameSiteNoneMode, ParseSameSite("none"))
	assert.Equal(t, http.SameSiteLaxMode, ParseSameSite(""))
	assert.Equal(t, http.SameSiteLaxMode, ParseSameSite("lax"))
}
