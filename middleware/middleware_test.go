package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dosada05/swiss-tournament/utils"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("middleware-secret")

func organizerToken(t *testing.T, tournamentID string, ttl time.Duration) string {
	t.Helper()
	token, err := utils.GenerateOrganizerToken(secret, tournamentID, ttl, time.Now())
	require.NoError(t, err)
	return token
}

func protectedRouter() http.Handler {
	r := chi.NewRouter()
	r.With(Authenticate(secret), RequireTournamentOrganizer).
		Post("/tournaments/{tournamentID}/start", func(w http.ResponseWriter, r *http.Request) {
			claims, err := ClaimsFromContext(r.Context())
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(claims.TournamentID))
		})
	return r
}

func TestAuthenticateAndRequireOrganizer(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		path       string
		wantStatus int
	}{
		{
			name:       "valid token",
			header:     "Bearer " + organizerToken(t, "t-1", time.Hour),
			path:       "/tournaments/t-1/start",
			wantStatus: http.StatusOK,
		},
		{
			name:       "lowercase scheme",
			header:     "bearer " + organizerToken(t, "t-1", time.Hour),
			path:       "/tournaments/t-1/start",
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			path:       "/tournaments/t-1/start",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic dXNlcjpwYXNz",
			path:       "/tournaments/t-1/start",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			header:     "Bearer " + organizerToken(t, "t-1", -time.Minute),
			path:       "/tournaments/t-1/start",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			header:     "Bearer not.a.jwt",
			path:       "/tournaments/t-1/start",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token for another tournament",
			header:     "Bearer " + organizerToken(t, "t-2", time.Hour),
			path:       "/tournaments/t-1/start",
			wantStatus: http.StatusForbidden,
		},
	}

	router := protectedRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "t-1", rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), `"error"`)
			}
		})
	}
}

func TestRequireTournamentOrganizer_WithoutClaims(t *testing.T) {
	r := chi.NewRouter()
	r.With(RequireTournamentOrganizer).Get("/tournaments/{tournamentID}", func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tournaments/t-1", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRateLimit(t *testing.T) {
	limiter := NewIPRateLimiter(0, 2)
	handler := RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(remote string) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, do("10.0.0.1:1000"))
	assert.Equal(t, http.StatusNoContent, do("10.0.0.1:1001"), "port is ignored")
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:1002"))
	assert.Equal(t, http.StatusNoContent, do("10.0.0.2:1000"), "other clients have their own bucket")
	assert.Equal(t, http.StatusNoContent, do("no-port"))
}

func TestIPRateLimiter_PrunesIdleEntries(t *testing.T) {
	limiter := NewIPRateLimiter(1, 1)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	for i := 0; i <= cleanupThreshold; i++ {
		limiter.GetLimiter(fmt.Sprintf("10.0.%d.%d", i/256, i%256))
	}
	require.Equal(t, cleanupThreshold+1, limiter.size())

	now = now.Add(maxIdleAge + time.Minute)
	limiter.GetLimiter("192.168.0.1")
	assert.Equal(t, 1, limiter.size())
}

func TestMetrics_PassesThrough(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/tournaments/{tournamentID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tournaments/abc", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
