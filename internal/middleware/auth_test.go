package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rentalconnect/internal/domain"
	"rentalconnect/internal/pkg/jwt"
	"rentalconnect/internal/repository"
	"rentalconnect/internal/session"
	"rentalconnect/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(r *http.Request) (*domain.Session, error) {
	args := m.Called(r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func newGateRouter(auth *SessionAuth) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", auth.AuthRequired(), func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": id.UserID, "role": id.Role, "has_hash": id.User.PasswordHash != ""})
	})
	r.GET("/admin", auth.Admin(), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/landlord", auth.AuthRequired(), RequireRole(domain.RoleLandlord), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func serve(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestAuthRequired_NoSession(t *testing.T) {
	res := new(mockResolver)
	res.On("Resolve", mock.Anything).Return(nil, session.ErrNoSession)
	users := new(mockUsers)

	w := serve(newGateRouter(NewSessionAuth(res, users)), "/protected")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestAuthRequired_ExpiredSession(t *testing.T) {
	res := new(mockResolver)
	res.On("Resolve", mock.Anything).Return(nil, session.ErrExpired)

	w := serve(newGateRouter(NewSessionAuth(res, new(mockUsers))), "/protected")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired_UserGone(t *testing.T) {
	res := new(mockResolver)
	res.On("Resolve", mock.Anything).Return(&domain.Session{ID: "s", UserID: 5}, nil)
	users := new(mockUsers)
	users.On("GetByID", mock.Anything, int64(5)).Return(nil, gorm.ErrRecordNotFound)

	w := serve(newGateRouter(NewSessionAuth(res, users)), "/protected")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired_StoreFailureIs500(t *testing.T) {
	res := new(mockResolver)
	res.On("Resolve", mock.Anything).Return(nil, errors.New("db down"))

	w := serve(newGateRouter(NewSessionAuth(res, new(mockUsers))), "/protected")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	res2 := new(mockResolver)
	res2.On("Resolve", mock.Anything).Return(&domain.Session{ID: "s", UserID: 5}, nil)
	users := new(mockUsers)
	users.On("GetByID", mock.Anything, int64(5)).Return(nil, errors.New("db down"))

	w = serve(newGateRouter(NewSessionAuth(res2, users)), "/protected")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthRequired_AttachesIdentity(t *testing.T) {
	res := new(mockResolver)
	res.On("Resolve", mock.Anything).Return(&domain.Session{ID: "s", UserID: 42, Role: domain.RoleRenter}, nil)
	users := new(mockUsers)
	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{ID: 42, Role: domain.RoleRenter, PasswordHash: "h"}, nil)

	w := serve(newGateRouter(NewSessionAuth(res, users)), "/protected")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
	assert.Contains(t, w.Body.String(), `"role":"Renter"`)
	users.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestAdmin_RoleComesFromStoredUser(t *testing.T) {
	res := new(mockResolver)
	// The session still says Admin but the user has since been demoted.
	res.On("Resolve", mock.Anything).Return(&domain.Session{ID: "s", UserID: 1, Role: domain.RoleAdmin}, nil)
	users := new(mockUsers)
	users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Role: domain.RoleRenter}, nil)

	w := serve(newGateRouter(NewSessionAuth(res, users)), "/admin")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Admin access required")
}

func TestAdmin_NoSession(t *testing.T) {
	res := new(mockResolver)
	res.On("Resolve", mock.Anything).Return(nil, session.ErrNoSession)

	w := serve(newGateRouter(NewSessionAuth(res, new(mockUsers))), "/admin")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOnly_AfterAuthRequired(t *testing.T) {
	res := new(mockResolver)
	res.On("Resolve", mock.Anything).Return(&domain.Session{ID: "s", UserID: 1}, nil)
	users := new(mockUsers)
	users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Role: domain.RoleLandlord}, nil)
	users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2, Role: domain.RoleAdmin}, nil)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", NewSessionAuth(res, users).AuthRequired(), AdminOnly(), func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusForbidden, serve(r, "/admin").Code)

	r = gin.New()
	r.GET("/admin", AdminOnly(), func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusUnauthorized, serve(r, "/admin").Code)

	r = gin.New()
	r.GET("/admin", func(c *gin.Context) {
		SetIdentity(c, &Identity{UserID: 2, Role: domain.RoleAdmin})
	}, AdminOnly(), func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusOK, serve(r, "/admin").Code)
}

func TestAdmin_Allows(t *testing.T) {
	res := new(mockResolver)
	res.On("Resolve", mock.Anything).Return(&domain.Session{ID: "s", UserID: 1}, nil)
	users := new(mockUsers)
	users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Role: domain.RoleAdmin}, nil)

	w := serve(newGateRouter(NewSessionAuth(res, users)), "/admin")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole(t *testing.T) {
	res := new(mockResolver)
	res.On("Resolve", mock.Anything).Return(&domain.Session{ID: "s", UserID: 1}, nil)
	users := new(mockUsers)
	users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Role: domain.RoleRenter}, nil)

	w := serve(newGateRouter(NewSessionAuth(res, users)), "/landlord")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSessionGate_EndToEnd(t *testing.T) {
	db := testutil.NewDB(t)
	users := repository.NewUserRepository(db)
	mgr := session.NewManager(repository.NewSessionRepository(db), jwt.New("s3cret", time.Hour), time.Hour, session.CookieConfig{})
	u := testutil.CreateUser(t, db, domain.RoleLandlord)

	login := httptest.NewRecorder()
	_, err := mgr.Start(context.Background(), login, u)
	require.NoError(t, err)

	r := newGateRouter(NewSessionAuth(mgr, users))

	req := httptest.NewRequest(http.MethodGet, "/landlord", nil)
	for _, c := range login.Result().Cookies() {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.Delete(&domain.User{}, u.ID).Error)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
