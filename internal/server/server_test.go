package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rentalconnect/internal/config"
	"rentalconnect/internal/domain"
	"rentalconnect/internal/metrics"
	"rentalconnect/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
	Message string                 `json:"message,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type E2ETestSuite struct {
	router *gin.Engine
	db     *gorm.DB
	srv    *Server
}

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:          "test",
		CORSOrigin:      "http://localhost:3000",
		SessionSecret:   "test_secret_key_32_characters_min",
		SessionTTL:      time.Hour,
		SessionBackend:  "db",
		CookieName:      "rc_session",
		CookieSameSite:  "Lax",
		LoginRateLimit:  10,
		LoginRateWindow: time.Minute,
		MaxImageBytes:   5 * 1024 * 1024,
	}
}

func setupTestSuite(t *testing.T, cfg *config.Config, rdb *redis.Client) *E2ETestSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	srv, err := New(Deps{Config: cfg, DB: db, Redis: rdb, Metrics: metrics.New()})
	require.NoError(t, err)

	return &E2ETestSuite{router: srv.Router, db: db, srv: srv}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	t.Helper()
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return &resp
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "rc_session" && c.Value != "" {
			return c
		}
	}
	t.Fatalf("no session cookie in response (status %d)", w.Code)
	return nil
}

func (s *E2ETestSuite) register(t *testing.T, name, email, role string) (*http.Cookie, int64) {
	t.Helper()
	w := s.makeRequest(http.MethodPost, "/api/auth/register", map[string]string{
		"name": name, "email": email, "password": "secret123", "role": role,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := parseResponse(t, w)
	user := resp.Data["user"].(map[string]interface{})
	return sessionCookie(t, w), int64(user["id"].(float64))
}

func idOf(t *testing.T, resp *TestResponse, key string) int64 {
	t.Helper()
	obj, ok := resp.Data[key].(map[string]interface{})
	require.True(t, ok, "missing %q in %+v", key, resp.Data)
	return int64(obj["id"].(float64))
}

func TestBanner_Health_Metrics(t *testing.T) {
	s := setupTestSuite(t, testConfig(), nil)

	w := s.makeRequest(http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Rental Connect API")

	w = s.makeRequest(http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.makeRequest(http.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "rentalconnect_http_requests_total")
}

func TestFlow_RentalLifecycle(t *testing.T) {
	s := setupTestSuite(t, testConfig(), nil)

	landlord, landlordID := s.register(t, "Lena Landlord", "lena@example.com", "Landlord")
	renter, renterID := s.register(t, "Rui Renter", "rui@example.com", "Renter")

	var propertyID, bookingID, paymentID int64

	t.Run("anonymous requests are rejected", func(t *testing.T) {
		w := s.makeRequest(http.MethodGet, "/api/bookings/my", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("landlord lists a property", func(t *testing.T) {
		w := s.makeRequest(http.MethodPost, "/api/properties", map[string]interface{}{
			"title": "Sunny two-bed", "address": "12 Harbour Road, Lisbon", "rent": 1500, "bedrooms": 2,
		}, landlord)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		propertyID = idOf(t, parseResponse(t, w), "property")

		w = s.makeRequest(http.MethodPost, "/api/properties", map[string]interface{}{
			"title": "Not mine", "address": "x", "rent": 1,
		}, renter)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = s.makeRequest(http.MethodGet, "/api/properties?area=harbour", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Sunny two-bed")
	})

	t.Run("renter books and landlord approves", func(t *testing.T) {
		w := s.makeRequest(http.MethodPost, fmt.Sprintf("/api/properties/%d/book", propertyID), nil, renter)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		bookingID = idOf(t, parseResponse(t, w), "booking")

		w = s.makeRequest(http.MethodGet, "/api/bookings/landlord-pending", nil, landlord)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "rui@example.com")

		w = s.makeRequest(http.MethodPatch, fmt.Sprintf("/api/bookings/%d/approve", bookingID), nil, renter)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = s.makeRequest(http.MethodPatch, fmt.Sprintf("/api/bookings/%d/approve", bookingID), nil, landlord)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"Confirmed"`)
	})

	t.Run("renter pays and landlord confirms", func(t *testing.T) {
		w := s.makeRequest(http.MethodPost, "/api/payments", map[string]interface{}{"property_id": propertyID}, renter)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		paymentID = idOf(t, parseResponse(t, w), "payment")

		// a second payment for the same month is simply recorded
		w = s.makeRequest(http.MethodPost, "/api/payments", map[string]interface{}{"property_id": propertyID}, renter)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.NotEqual(t, paymentID, idOf(t, parseResponse(t, w), "payment"))

		w = s.makeRequest(http.MethodPatch, fmt.Sprintf("/api/payments/%d/confirm", paymentID), nil, landlord)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"landlord_confirmed":true`)
	})

	t.Run("analytics reflect the confirmed booking and payment", func(t *testing.T) {
		w := s.makeRequest(http.MethodGet, "/api/analytics/landlord", nil, landlord)
		require.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, 3000.0, resp.Data["income_received"])
		assert.Equal(t, 100.0, resp.Data["occupancy_rate"])
		assert.Len(t, resp.Data["monthly_income"], 6)
	})

	t.Run("messaging", func(t *testing.T) {
		w := s.makeRequest(http.MethodPost, "/api/messages", map[string]interface{}{
			"receiver_id": landlordID, "text": "Thanks for the quick approval",
		}, renter)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = s.makeRequest(http.MethodGet, fmt.Sprintf("/api/messages/%d", renterID), nil, landlord)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "quick approval")
	})

	t.Run("renter cancels and the booking is deleted", func(t *testing.T) {
		w := s.makeRequest(http.MethodDelete, fmt.Sprintf("/api/bookings/%d", bookingID), nil, renter)
		require.Equal(t, http.StatusOK, w.Code)

		w = s.makeRequest(http.MethodGet, fmt.Sprintf("/api/bookings/%d", bookingID), nil, renter)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = s.makeRequest(http.MethodPatch, fmt.Sprintf("/api/bookings/%d/approve", bookingID), nil, landlord)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("logout ends the session", func(t *testing.T) {
		w := s.makeRequest(http.MethodPost, "/api/auth/logout", nil, renter)
		require.Equal(t, http.StatusOK, w.Code)

		w = s.makeRequest(http.MethodGet, "/api/auth/profile", nil, renter)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestFlow_AdminModeration(t *testing.T) {
	s := setupTestSuite(t, testConfig(), nil)

	hash, err := bcrypt.GenerateFromPassword([]byte("adminpass"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, s.db.Create(&domain.User{
		Name: "Admin", Email: "admin@example.com", PasswordHash: string(hash), Role: domain.RoleAdmin,
	}).Error)

	w := s.makeRequest(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "admin@example.com", "password": "adminpass",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	admin := sessionCookie(t, w)

	landlord, _ := s.register(t, "Lars", "lars@example.com", "Landlord")
	renter, renterID := s.register(t, "Rita", "rita@example.com", "Renter")

	w = s.makeRequest(http.MethodPost, "/api/properties", map[string]interface{}{
		"title": "Suspicious loft", "address": "1 Nowhere St", "rent": 99,
	}, landlord)
	require.Equal(t, http.StatusCreated, w.Code)
	propertyID := idOf(t, parseResponse(t, w), "property")

	w = s.makeRequest(http.MethodPost, fmt.Sprintf("/api/properties/%d/report", propertyID), map[string]string{"reason": "too cheap"}, renter)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.makeRequest(http.MethodGet, "/api/admin/properties/reported", nil, renter)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.makeRequest(http.MethodGet, "/api/admin/properties/reported", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "too cheap")

	w = s.makeRequest(http.MethodDelete, fmt.Sprintf("/api/admin/properties/%d", propertyID), nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.makeRequest(http.MethodGet, fmt.Sprintf("/api/properties/%d", propertyID), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.makeRequest(http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", renterID), nil, admin)
	require.Equal(t, http.StatusOK, w.Code)

	// The deleted user's cookie no longer authenticates.
	w = s.makeRequest(http.MethodGet, "/api/users/profile", nil, renter)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister_AdminSignupSwitch(t *testing.T) {
	s := setupTestSuite(t, testConfig(), nil)
	admin, _ := s.register(t, "Ada", "ada@example.com", "Admin")
	w := s.makeRequest(http.MethodGet, "/api/admin/users", nil, admin)
	assert.Equal(t, http.StatusOK, w.Code)

	cfg := testConfig()
	cfg.DisableAdminSignup = true
	locked := setupTestSuite(t, cfg, nil)
	w = locked.makeRequest(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Ada", "email": "ada@example.com", "password": "secret123", "role": "Admin",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", parseResponse(t, w).Error.Code)
}

func TestLoginRateLimit_WithRedisSessions(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := testConfig()
	cfg.SessionBackend = "redis"
	cfg.LoginRateLimit = 2
	s := setupTestSuite(t, cfg, rdb)

	cookie, _ := s.register(t, "Rosa", "rosa@example.com", "Renter")
	w := s.makeRequest(http.MethodGet, "/api/auth/profile", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	login := map[string]string{"email": "rosa@example.com", "password": "wrong"}
	assert.Equal(t, http.StatusUnauthorized, s.makeRequest(http.MethodPost, "/api/auth/login", login, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.makeRequest(http.MethodPost, "/api/auth/login", login, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, s.makeRequest(http.MethodPost, "/api/auth/login", login, nil).Code)
}

func TestNew_RedisBackendNeedsClient(t *testing.T) {
	cfg := testConfig()
	cfg.SessionBackend = "redis"
	_, err := New(Deps{Config: cfg, DB: testutil.NewDB(t)})
	assert.Error(t, err)
}
