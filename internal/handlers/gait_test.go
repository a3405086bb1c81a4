package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/drushti-surkar/hashgait-demo/internal/history"
)

func newGaitRouter(capacity int) (*gin.Engine, *GaitHandler) {
	gin.SetMode(gin.TestMode)
	h := NewGaitHandler(zap.NewNop(), history.NewRing(capacity))
	r := gin.New()
	r.GET("/", h.Health)
	r.POST("/hash", h.GenerateHash)
	r.GET("/history", h.History)
	r.GET("/stats", h.Stats)
	return r, h
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := newGaitRouter(5)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "HashGait Backend Running!", body["message"])
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "1.0.0", body["version"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestGenerateHashReturnsSHA256(t *testing.T) {
	r, _ := newGaitRouter(5)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/hash", strings.NewReader(`{"gaitData":"walk-pattern"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success      bool   `json:"success"`
		Hash         string `json:"hash"`
		OriginalData string `json:"originalData"`
		HistoryCount int    `json:"historyCount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	sum := sha256.Sum256([]byte("walk-pattern"))
	assert.True(t, body.Success)
	assert.Equal(t, hex.EncodeToString(sum[:]), body.Hash)
	assert.Equal(t, "walk-pattern", body.OriginalData)
	assert.Equal(t, 1, body.HistoryCount)
}

func TestGenerateHashMissingField(t *testing.T) {
	r, _ := newGaitRouter(5)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/hash", strings.NewReader(`{"other":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing gaitData")
}

func TestGenerateHashNonStringField(t *testing.T) {
	r, _ := newGaitRouter(5)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/hash", strings.NewReader(`{"gaitData":42}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "gaitData must be a string")
}

func TestHistoryCapsAtRingSize(t *testing.T) {
	r, _ := newGaitRouter(5)

	for i := 0; i < 7; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/hash", strings.NewReader(`{"gaitData":"sample"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success  bool             `json:"success"`
		History  []map[string]any `json:"history"`
		Count    int              `json:"count"`
		MaxCount int              `json:"maxCount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 5, body.Count)
	assert.Len(t, body.History, 5)
	assert.Equal(t, 5, body.MaxCount)
}

func TestStatsCountsAllHashes(t *testing.T) {
	r, _ := newGaitRouter(5)

	for i := 0; i < 7; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/hash", strings.NewReader(`{"gaitData":"sample"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Stats   struct {
			TotalHashesGenerated int64          `json:"totalHashesGenerated"`
			MaxHistorySize       int            `json:"maxHistorySize"`
			ServerUptime         float64        `json:"serverUptime"`
			MemoryUsage          map[string]any `json:"memoryUsage"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, int64(7), body.Stats.TotalHashesGenerated)
	assert.Equal(t, 5, body.Stats.MaxHistorySize)
	assert.Contains(t, body.Stats.MemoryUsage, "alloc")
	assert.Contains(t, body.Stats.MemoryUsage, "numGC")
}
