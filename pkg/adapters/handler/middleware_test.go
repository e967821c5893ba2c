package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wadjakorntonsri/weblinks/pkg/config"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{
		GoogleClientID: "client",
		JWTSecret:      "testservlet",
	}
	mw := NewMiddleware(cfg, zap.NewNop())

	tests := []struct {
		name           string
		path           string
		cookieValue    string
		expectedStatus int
	}{
		{
			name:           "No Cookie - API",
			path:           "/api/v1/links",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "No Cookie - Browser",
			path:           "/links",
			expectedStatus: http.StatusTemporaryRedirect,
		},
		{
			name:           "Invalid Cookie - API",
			path:           "/api/v1/links",
			cookieValue:    "invalid",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Expired Cookie - API",
			path:           "/api/v1/links",
			cookieValue:    generateTestToken(t, cfg.JWTSecret, -time.Minute),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong Secret - Browser",
			path:           "/links",
			cookieValue:    generateTestToken(t, "other", 5*time.Minute),
			expectedStatus: http.StatusTemporaryRedirect,
		},
		{
			name:           "Valid Cookie - API",
			path:           "/api/v1/links",
			cookieValue:    generateTestToken(t, cfg.JWTSecret, 5*time.Minute),
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			if tt.cookieValue != "" {
				req.AddCookie(&http.Cookie{Name: "auth_token", Value: tt.cookieValue})
			}

			rr := httptest.NewRecorder()
			mw.AuthMiddleware(okHandler).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestAuthMiddlewareDisabled(t *testing.T) {
	mw := NewMiddleware(&config.Config{}, zap.NewNop())

	rr := httptest.NewRecorder()
	mw.AuthMiddleware(okHandler).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/links", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAuthMiddlewareSetsUserEmail(t *testing.T) {
	cfg := &config.Config{GoogleClientID: "client", JWTSecret: "s"}
	mw := NewMiddleware(cfg, zap.NewNop())

	var email string
	h := mw.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email = UserEmailFrom(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/links", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: generateTestToken(t, "s", time.Minute)})
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "test@example.com", email)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rr.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "abc", seen)
	assert.Equal(t, "abc", rr.Header().Get("X-Request-ID"))
}

func TestRecovery(t *testing.T) {
	mw := NewMiddleware(&config.Config{}, zap.NewNop())
	h := mw.Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

type requestRecord struct {
	method, route string
	code          int
}

type recordingObserver struct{ got []requestRecord }

func (o *recordingObserver) ObserveRequest(method, route string, code int) {
	o.got = append(o.got, requestRecord{method, route, code})
}

func TestAccessLogReportsMatchedRoute(t *testing.T) {
	mw := NewMiddleware(&config.Config{}, zap.NewNop())
	mux := http.NewServeMux()
	mux.HandleFunc("GET /items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	obs := &recordingObserver{}
	h := mw.AccessLog(obs, mux)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/7", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing/path", nil))

	require.Len(t, obs.got, 2)
	assert.Equal(t, requestRecord{"GET", "GET /items/{id}", http.StatusTeapot}, obs.got[0])
	assert.Equal(t, http.StatusNotFound, obs.got[1].code)
}

func generateTestToken(t *testing.T, secret string, ttl time.Duration) string {
	t.Helper()
	claims := &jwt.RegisteredClaims{
		Subject:   "test@example.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return tokenString
}
