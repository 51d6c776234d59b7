package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentora-backend/internal/controllers"
	"mentora-backend/internal/handlers"
	"mentora-backend/internal/middleware"
	"mentora-backend/internal/services"
	"mentora-backend/internal/session"
	"mentora-backend/internal/uploads"
	"mentora-backend/internal/websocket"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store := session.NewStore(time.Hour)
	auth := middleware.NewSessionAuth("router-secret", time.Hour)
	policy := uploads.DefaultPolicy(1)
	dispatcher := controllers.NewDispatcher(&controllers.Deps{
		Policy:    policy,
		TempDir:   t.TempDir(),
		Analyzers: services.DefaultAnalyzers(),
	})

	return New(
		auth,
		handlers.NewSessionHandler(store, auth),
		handlers.NewFeatureHandler(store, dispatcher, policy),
		websocket.NewHub(auth, store, dispatcher, ""),
		30,
		"http://localhost:5173",
	)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestSessionFlowThroughRouter(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/features/quiz", nil)
	req.Header.Set("Authorization", "Bearer "+created.Token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `"state":"idle"`))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)
	for _, path := range []string{"/api/v1/session/", "/api/v1/features/", "/api/v1/uploads/policy"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestSessionCreationIsRateLimited(t *testing.T) {
	r := newTestRouter(t)

	var last int
	for i := 0; i < 11; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil)
		req.RemoteAddr = "203.0.113.7:5000"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		last = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
