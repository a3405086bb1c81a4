package client

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalGenerateHashDeterministic(t *testing.T) {
	c := NewLocal()
	ctx := context.Background()

	first, err := c.GenerateHash(ctx, "gait-data")
	require.NoError(t, err)
	second, err := c.GenerateHash(ctx, "gait-data")
	require.NoError(t, err)

	assert.Equal(t, first.Hash, second.Hash)

	sum := sha256.Sum256([]byte("gait-data"))
	assert.Equal(t, hex.EncodeToString(sum[:]), first.Hash)
	assert.True(t, first.Success)
}

func TestLocalHistoryTracksHashes(t *testing.T) {
	c := NewLocal()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := c.GenerateHash(ctx, "payload")
		require.NoError(t, err)
	}

	hist, err := c.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, hist.Count)
	assert.Equal(t, 5, hist.MaxCount)

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), stats.Stats.TotalHashesGenerated)
}

func TestProbeFallsBackToLocal(t *testing.T) {
	// nothing listens on this address
	backend := Probe(context.Background(), "http://127.0.0.1:1", 100*time.Millisecond, zap.NewNop())

	_, ok := backend.(*Local)
	assert.True(t, ok, "expected local fallback, got %T", backend)
}

func TestProbeSelectsLiveBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(HealthStatus{Message: "ok", Status: "healthy", Version: "1.0.0"})
	}))
	defer srv.Close()

	backend := Probe(context.Background(), srv.URL, time.Second, zap.NewNop())

	_, ok := backend.(*Live)
	assert.True(t, ok, "expected live client, got %T", backend)
}

func TestLiveGenerateHash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/hash", r.URL.Path)

		var body struct {
			GaitData string `json:"gaitData"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "payload", body.GaitData)

		json.NewEncoder(w).Encode(HashResult{Success: true, Hash: "abc123", OriginalData: body.GaitData, HistoryCount: 1})
	}))
	defer srv.Close()

	c := NewLive(srv.URL, time.Second)
	result, err := c.GenerateHash(context.Background(), "payload")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "abc123", result.Hash)
}

func TestLiveSurfacesBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Missing gaitData in request body"})
	}))
	defer srv.Close()

	c := NewLive(srv.URL, time.Second)
	_, err := c.GenerateHash(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing gaitData")
}

func TestLiveTimeoutIsBounded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewLive(srv.URL, 50*time.Millisecond)
	start := time.Now()
	_, err := c.HealthCheck(context.Background())
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}
