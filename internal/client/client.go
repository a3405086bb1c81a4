// Package client talks to the gait hash backend. The Backend interface has
// two implementations: a live HTTP client with a bounded timeout and a
// local deterministic one used when the backend is unreachable. Falling
// back to local mode is ordinary behavior, not an error path; the capture
// flow keeps working offline.
package client

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds every backend call.
const DefaultTimeout = 10 * time.Second

// HealthStatus is the backend's health check response.
type HealthStatus struct {
	Message   string `json:"message"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// HashResult is the response to a hash generation request.
type HashResult struct {
	Success      bool   `json:"success"`
	Hash         string `json:"hash"`
	OriginalData string `json:"originalData"`
	Timestamp    string `json:"timestamp"`
	HistoryCount int    `json:"historyCount"`
	Message      string `json:"message"`
}

// HistoryEntry is one retained hash as reported by the backend.
type HistoryEntry struct {
	Hash      string `json:"hash"`
	GaitData  string `json:"gaitData"`
	Timestamp string `json:"timestamp"`
	ID        int64  `json:"id"`
}

// HistoryResult is the backend's capped hash history, newest first.
type HistoryResult struct {
	Success  bool           `json:"success"`
	History  []HistoryEntry `json:"history"`
	Count    int            `json:"count"`
	MaxCount int            `json:"maxCount"`
}

// MemoryUsage mirrors the runtime allocation counters the backend reports.
type MemoryUsage struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"totalAlloc"`
	Sys        uint64 `json:"sys"`
	NumGC      uint32 `json:"numGC"`
}

// Stats is the backend's operational counters.
type Stats struct {
	TotalHashesGenerated int64       `json:"totalHashesGenerated"`
	MaxHistorySize       int         `json:"maxHistorySize"`
	ServerUptime         float64     `json:"serverUptime"` // seconds
	MemoryUsage          MemoryUsage `json:"memoryUsage"`
	Timestamp            string      `json:"timestamp"`
}

// StatsResult wraps Stats in the backend's response envelope.
type StatsResult struct {
	Success bool  `json:"success"`
	Stats   Stats `json:"stats"`
}

// Backend is the capability the capture flow needs from the hash service.
type Backend interface {
	HealthCheck(ctx context.Context) (HealthStatus, error)
	GenerateHash(ctx context.Context, gaitData string) (HashResult, error)
	History(ctx context.Context) (HistoryResult, error)
	Stats(ctx context.Context) (StatsResult, error)
}

// Probe checks connectivity and picks the implementation: the live client
// when the backend answers its health check, the local one otherwise.
func Probe(ctx context.Context, baseURL string, timeout time.Duration, log *zap.Logger) Backend {
	live := NewLive(baseURL, timeout)
	if _, err := live.HealthCheck(ctx); err != nil {
		log.Warn("Backend unreachable, continuing in local mode",
			zap.String("baseURL", baseURL),
			zap.Error(err))
		return NewLocal()
	}
	log.Info("Backend reachable", zap.String("baseURL", baseURL))
	return live
}
