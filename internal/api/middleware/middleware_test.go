package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		role       string
		wantStatus int
		wantUser   int64
		wantAdmin  bool
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized},
		{name: "not a number", userID: "abc", wantStatus: http.StatusUnauthorized},
		{name: "non-positive", userID: "0", wantStatus: http.StatusUnauthorized},
		{name: "user", userID: "7", wantStatus: http.StatusOK, wantUser: 7},
		{name: "admin", userID: "1", role: "Admin", wantStatus: http.StatusOK, wantUser: 1, wantAdmin: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				gotUser  int64
				gotAdmin bool
			)
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = GetUserID(r.Context())
				gotAdmin = IsAdmin(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.userID != "" {
				req.Header.Set(HeaderUserID, tt.userID)
			}
			if tt.role != "" {
				req.Header.Set(HeaderUserRole, tt.role)
			}
			rec := httptest.NewRecorder()

			Auth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUser, gotUser)
			assert.Equal(t, tt.wantAdmin, gotAdmin)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	handler := Auth(RequireAdmin(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderUserID, "7")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderUserID, "1")
	req.Header.Set(HeaderUserRole, "admin")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestID(t *testing.T) {
	t.Run("generated when missing", func(t *testing.T) {
		var fromCtx string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fromCtx = RequestIDFromContext(r.Context())
		})
		rec := httptest.NewRecorder()

		RequestID(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rec.Header().Get(HeaderRequestID)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, fromCtx)
	})

	t.Run("propagated when valid", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, id)
		rec := httptest.NewRecorder()

		RequestID(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, id, rec.Header().Get(HeaderRequestID))
	})
}

func TestRateLimiter(t *testing.T) {
	t.Run("per user buckets", func(t *testing.T) {
		rl := NewRateLimiter(0.001, 2, time.Minute)
		handler := Auth(rl.Limit(okHandler()))

		call := func(userID string) int {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			req.Header.Set(HeaderUserID, userID)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			return rec.Code
		}

		assert.Equal(t, http.StatusOK, call("7"))
		assert.Equal(t, http.StatusOK, call("7"))
		assert.Equal(t, http.StatusTooManyRequests, call("7"))
		assert.Equal(t, http.StatusOK, call("8"))
	})

	t.Run("idle visitors are forgotten", func(t *testing.T) {
		rl := NewRateLimiter(1, 1, time.Minute)
		now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
		rl.now = func() time.Time { return now }

		rl.getLimiter("ip:10.0.0.1")
		now = now.Add(2 * time.Minute)
		rl.getLimiter("ip:10.0.0.2")

		rl.mu.Lock()
		defer rl.mu.Unlock()
		assert.Len(t, rl.visitors, 1)
		assert.Contains(t, rl.visitors, "ip:10.0.0.2")
	})
}

type httpMetricsStub struct {
	mu       sync.Mutex
	route    string
	status   int
	inFlight int
}

func (m *httpMetricsStub) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.route = route
	m.status = status
}

func (m *httpMetricsStub) IncInFlight() { m.inFlight++ }
func (m *httpMetricsStub) DecInFlight() { m.inFlight-- }

func TestMetricsMiddleware(t *testing.T) {
	m := &httpMetricsStub{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/42", nil))

	assert.Equal(t, "/bookings/{bookingId}", m.route)
	assert.Equal(t, http.StatusNotFound, m.status)
	assert.Equal(t, 0, m.inFlight)
}
