package client

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"runtime"
	"time"

	"github.com/drushti-surkar/hashgait-demo/internal/history"
)

// Local is the degraded-mode Backend used when the hash service is
// unreachable. Hashes are computed with the same SHA-256 digest the server
// uses, so the result is deterministic and indistinguishable for matching
// purposes; history and stats are served from process-local state.
type Local struct {
	ring    *history.Ring
	started time.Time
}

func NewLocal() *Local {
	return &Local{
		ring:    history.NewRing(history.DefaultCapacity),
		started: time.Now(),
	}
}

func (c *Local) HealthCheck(ctx context.Context) (HealthStatus, error) {
	return HealthStatus{
		Message:   "HashGait local fallback active",
		Status:    "local",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}, nil
}

func (c *Local) GenerateHash(ctx context.Context, gaitData string) (HashResult, error) {
	sum := sha256.Sum256([]byte(gaitData))
	hash := hex.EncodeToString(sum[:])
	entry := c.ring.Add(hash, gaitData)

	return HashResult{
		Success:      true,
		Hash:         hash,
		OriginalData: gaitData,
		Timestamp:    entry.Timestamp.Format(time.RFC3339),
		HistoryCount: c.ring.Len(),
		Message:      fmt.Sprintf("Hash generated locally. History contains %d entries.", c.ring.Len()),
	}, nil
}

func (c *Local) History(ctx context.Context) (HistoryResult, error) {
	entries := c.ring.Entries()
	out := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryEntry{
			Hash:      e.Hash,
			GaitData:  e.GaitData,
			Timestamp: e.Timestamp.Format(time.RFC3339),
			ID:        e.ID,
		})
	}
	return HistoryResult{
		Success:  true,
		History:  out,
		Count:    len(out),
		MaxCount: c.ring.Max(),
	}, nil
}

func (c *Local) Stats(ctx context.Context) (StatsResult, error) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return StatsResult{
		Success: true,
		Stats: Stats{
			TotalHashesGenerated: c.ring.Total(),
			MaxHistorySize:       c.ring.Max(),
			ServerUptime:         time.Since(c.started).Seconds(),
			MemoryUsage: MemoryUsage{
				Alloc:      mem.Alloc,
				TotalAlloc: mem.TotalAlloc,
				Sys:        mem.Sys,
				NumGC:      mem.NumGC,
			},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}
