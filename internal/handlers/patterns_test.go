package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/drushti-surkar/hashgait-demo/internal/store"
)

// fakeAuth injects a fixed username the way the session middleware would.
func fakeAuth(username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("username", username)
		c.Next()
	}
}

func newPatternsRouter(username string) (*gin.Engine, store.PatternStore) {
	gin.SetMode(gin.TestMode)
	s := store.NewMemoryStore(store.DefaultMatchThreshold)
	h := NewPatternsHandler(zap.NewNop(), s)
	r := gin.New()
	r.Use(fakeAuth(username))
	r.POST("/patterns", h.Save)
	r.GET("/patterns", h.List)
	r.POST("/patterns/verify", h.Verify)
	r.DELETE("/patterns", h.Clear)
	r.GET("/patterns/health", h.StoreHealth)
	return r, s
}

const savePayload = `{
	"patternHash": "4f2a9c1b",
	"features": {
		"avgTouchPressure": 0.5,
		"avgTouchDuration": 120,
		"swipeVelocity": 0.1,
		"tapFrequency": 1.2,
		"deviceMotionVariance": 0.4,
		"gestureComplexity": 1.1
	},
	"deviceId": "device-1"
}`

func postJSON(r *gin.Engine, path, payload string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSavePattern(t *testing.T) {
	r, _ := newPatternsRouter("alice")

	w := postJSON(r, "/patterns", savePayload)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.ID)
	assert.Contains(t, body.Message, "Pattern saved successfully with ID: "+body.ID)
}

func TestSavePatternRequiresHash(t *testing.T) {
	r, _ := newPatternsRouter("alice")

	w := postJSON(r, "/patterns", `{"deviceId":"device-1"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListReturnsOwnPatternsOnly(t *testing.T) {
	aliceRouter, _ := newPatternsRouter("alice")

	require.Equal(t, http.StatusOK, postJSON(aliceRouter, "/patterns", savePayload).Code)
	require.Equal(t, http.StatusOK, postJSON(aliceRouter, "/patterns", savePayload).Code)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/patterns", nil)
	aliceRouter.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success  bool             `json:"success"`
		Patterns []map[string]any `json:"patterns"`
		Count    int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	for _, p := range body.Patterns {
		assert.Equal(t, "alice", p["userId"])
	}
}

func TestVerifyMatchingPattern(t *testing.T) {
	r, _ := newPatternsRouter("alice")
	require.Equal(t, http.StatusOK, postJSON(r, "/patterns", savePayload).Code)

	w := postJSON(r, "/patterns/verify", `{"patternHash":"4f2a9c1b","deviceId":"device-1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success         bool   `json:"success"`
		ConfidenceScore int    `json:"confidenceScore"`
		Message         string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 100, body.ConfidenceScore)
	assert.Contains(t, body.Message, "Authentication successful")
}

func TestVerifyBelowThreshold(t *testing.T) {
	r, _ := newPatternsRouter("alice")
	require.Equal(t, http.StatusOK, postJSON(r, "/patterns", savePayload).Code)

	// only the first character matches: 12% < 70% threshold
	w := postJSON(r, "/patterns/verify", `{"patternHash":"40000000"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success         bool   `json:"success"`
		ConfidenceScore int    `json:"confidenceScore"`
		Message         string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, 12, body.ConfidenceScore)
	assert.Contains(t, body.Message, "Authentication failed")
}

func TestVerifyNotEnrolledIs404(t *testing.T) {
	r, _ := newPatternsRouter("nobody")

	w := postJSON(r, "/patterns/verify", `{"patternHash":"4f2a9c1b"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No patterns enrolled")
}

func TestClearPatterns(t *testing.T) {
	r, _ := newPatternsRouter("alice")
	require.Equal(t, http.StatusOK, postJSON(r, "/patterns", savePayload).Code)
	require.Equal(t, http.StatusOK, postJSON(r, "/patterns", savePayload).Code)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/patterns", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Cleared int  `json:"cleared"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 2, body.Cleared)

	// verifying afterwards is the not-enrolled outcome again
	w = postJSON(r, "/patterns/verify", `{"patternHash":"4f2a9c1b"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStoreHealthReportsCount(t *testing.T) {
	r, _ := newPatternsRouter("alice")
	require.Equal(t, http.StatusOK, postJSON(r, "/patterns", savePayload).Code)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/patterns/health", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Total patterns stored: 1")
}
