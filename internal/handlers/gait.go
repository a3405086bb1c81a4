package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/drushti-surkar/hashgait-demo/internal/history"
)

// GaitHandler serves the hash backend surface: health, hash generation,
// recent history and server stats.
type GaitHandler struct {
	log     *zap.Logger
	ring    *history.Ring
	started time.Time
}

func NewGaitHandler(log *zap.Logger, ring *history.Ring) *GaitHandler {
	return &GaitHandler{
		log:     log,
		ring:    ring,
		started: time.Now(),
	}
}

// Health reports that the backend is up.
func (h *GaitHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "HashGait Backend Running!",
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   "1.0.0",
	})
}

// GenerateHash hashes the submitted gait data string and records it in the
// history ring. A missing field and a non-string field are distinct client
// errors.
func (h *GaitHandler) GenerateHash(c *gin.Context) {
	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in request body"})
		return
	}

	raw, ok := body["gaitData"]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing gaitData in request body"})
		return
	}

	var gaitData string
	if err := json.Unmarshal(raw, &gaitData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "gaitData must be a string"})
		return
	}

	sum := sha256.Sum256([]byte(gaitData))
	hash := hex.EncodeToString(sum[:])
	entry := h.ring.Add(hash, gaitData)

	h.log.Info("Gait hash generated",
		zap.String("hash", hash),
		zap.Int("history_count", h.ring.Len()),
	)

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"hash":         hash,
		"originalData": gaitData,
		"timestamp":    entry.Timestamp.Format(time.RFC3339),
		"historyCount": h.ring.Len(),
		"message":      "Gait data hashed successfully",
	})
}

// History returns the most recent hashes, newest first.
func (h *GaitHandler) History(c *gin.Context) {
	entries := h.ring.Entries()
	out := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		out = append(out, gin.H{
			"hash":      e.Hash,
			"gaitData":  e.GaitData,
			"timestamp": e.Timestamp.Format(time.RFC3339),
			"id":        e.ID,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"history":  out,
		"count":    len(out),
		"maxCount": h.ring.Max(),
	})
}

// Stats reports lifetime counters and process memory usage.
func (h *GaitHandler) Stats(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats": gin.H{
			"totalHashesGenerated": h.ring.Total(),
			"maxHistorySize":       h.ring.Max(),
			"serverUptime":         time.Since(h.started).Seconds(),
			"memoryUsage": gin.H{
				"alloc":      mem.Alloc,
				"totalAlloc": mem.TotalAlloc,
				"sys":        mem.Sys,
				"numGC":      mem.NumGC,
			},
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}
