package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/drushti-surkar/hashgait-demo/internal/models"
	"github.com/drushti-surkar/hashgait-demo/internal/store"
)

// PatternsHandler serves enrollment and verification of behavioral patterns.
// All routes operate on the authenticated user's own records.
type PatternsHandler struct {
	log   *zap.Logger
	store store.PatternStore
}

func NewPatternsHandler(log *zap.Logger, s store.PatternStore) *PatternsHandler {
	return &PatternsHandler{log: log, store: s}
}

type savePatternRequest struct {
	PatternHash string                    `json:"patternHash" binding:"required"`
	Features    models.BehavioralFeatures `json:"features"`
	DeviceID    string                    `json:"deviceId"`
}

type verifyPatternRequest struct {
	PatternHash string `json:"patternHash" binding:"required"`
	DeviceID    string `json:"deviceId"`
}

// Save enrolls a new pattern record for the current user.
func (h *PatternsHandler) Save(c *gin.Context) {
	userID := currentUsername(c)

	var req savePatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "patternHash is required"})
		return
	}

	featuresJSON, err := json.Marshal(req.Features)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid features payload"})
		return
	}

	id, err := h.store.Save(c, userID, req.PatternHash, string(featuresJSON), req.DeviceID)
	if err != nil {
		if errors.Is(err, store.ErrInvalidFeatures) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid features payload"})
			return
		}
		h.log.Error("Failed to save pattern", zap.String("user", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save pattern"})
		return
	}

	h.log.Info("Pattern enrolled",
		zap.String("user", userID),
		zap.String("pattern_id", id),
		zap.String("hash", req.PatternHash),
	)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"id":      id,
		"message": fmt.Sprintf("Pattern saved successfully with ID: %s", id),
	})
}

// List returns the current user's enrolled patterns in enrollment order.
func (h *PatternsHandler) List(c *gin.Context) {
	userID := currentUsername(c)

	records, err := h.store.ListByUser(c, userID)
	if err != nil {
		h.log.Error("Failed to list patterns", zap.String("user", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list patterns"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"patterns": records,
		"count":    len(records),
	})
}

// Verify matches a candidate fingerprint against the user's reference set.
// A user with no enrolled patterns is a distinct 404 outcome, not a 0% match.
func (h *PatternsHandler) Verify(c *gin.Context) {
	userID := currentUsername(c)

	var req verifyPatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "patternHash is required"})
		return
	}

	result, err := h.store.Verify(c, userID, req.PatternHash, req.DeviceID)
	if err != nil {
		if errors.Is(err, store.ErrNotEnrolled) {
			c.JSON(http.StatusNotFound, gin.H{
				"success":   false,
				"message":   "No patterns enrolled for user",
				"timestamp": time.Now().UnixMilli(),
			})
			return
		}
		h.log.Error("Failed to verify pattern", zap.String("user", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify pattern"})
		return
	}

	h.log.Info("Pattern verification",
		zap.String("user", userID),
		zap.Bool("success", result.Success),
		zap.Int("confidence", result.ConfidenceScore),
	)

	c.JSON(http.StatusOK, gin.H{
		"success":         result.Success,
		"confidenceScore": result.ConfidenceScore,
		"message":         result.Message,
		"timestamp":       result.Timestamp,
	})
}

// Clear removes all of the current user's enrolled patterns.
func (h *PatternsHandler) Clear(c *gin.Context) {
	userID := currentUsername(c)

	cleared, err := h.store.ClearUser(c, userID)
	if err != nil {
		h.log.Error("Failed to clear patterns", zap.String("user", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear patterns"})
		return
	}

	h.log.Info("Patterns cleared", zap.String("user", userID), zap.Int("cleared", cleared))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cleared": cleared,
		"message": fmt.Sprintf("Cleared %d pattern(s) for user", cleared),
	})
}

// StoreHealth reports the total number of stored patterns.
func (h *PatternsHandler) StoreHealth(c *gin.Context) {
	total, err := h.store.Count(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": fmt.Sprintf("HashGait backend is running. Total patterns stored: %d", total),
	})
}

// currentUsername returns the username placed in the context by the auth
// middleware. Routes using it are always behind AuthRequired.
func currentUsername(c *gin.Context) string {
	return c.GetString("username")
}
