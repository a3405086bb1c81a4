package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/drushti-surkar/hashgait-demo/internal/config"
	"github.com/drushti-surkar/hashgait-demo/internal/history"
	"github.com/drushti-surkar/hashgait-demo/internal/repository"
	"github.com/drushti-surkar/hashgait-demo/internal/store"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Conf = &config.Config{
		Server: config.ServerConfig{Port: "3000", SessionSecret: "test-secret"},
	}
	return Setup(
		zap.NewNop(),
		repository.NewMemoryUsers(),
		store.NewMemoryStore(store.DefaultMatchThreshold),
		history.NewRing(history.DefaultCapacity),
	)
}

func TestPublicRoutesNeedNoSession(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/", "/history", "/stats"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestPatternRoutesRequireAuth(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/patterns", nil))

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authentication required")
}

func TestLoginSessionUnlocksPatternRoutes(t *testing.T) {
	r := newTestRouter(t)

	reg := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"username":"alice","password":"Str0ng!pass"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(reg, req)
	require.Equal(t, http.StatusCreated, reg.Code)

	login := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"alice","password":"Str0ng!pass"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(login, req)
	require.Equal(t, http.StatusOK, login.Code)

	w := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/patterns", nil)
	for _, c := range login.Result().Cookies() {
		req.AddCookie(c)
	}
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSecurityHeadersApplied(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}
