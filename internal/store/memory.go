package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/drushti-surkar/hashgait-demo/internal/biometrics"
	"github.com/drushti-surkar/hashgait-demo/internal/models"
)

// MemoryStore keeps patterns in two maps: records by id and a per-user
// list of record ids. A single RWMutex covers both so saves, clears and
// index reads stay consistent, and two concurrent saves for one user both
// land in the index.
type MemoryStore struct {
	mu        sync.RWMutex
	records   map[string]models.PatternRecord
	byUser    map[string][]string
	threshold int
}

func NewMemoryStore(threshold int) *MemoryStore {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}
	return &MemoryStore{
		records:   make(map[string]models.PatternRecord),
		byUser:    make(map[string][]string),
		threshold: threshold,
	}
}

func (s *MemoryStore) Save(ctx context.Context, userID, patternHash, featuresJSON, deviceID string) (string, error) {
	record, err := newPatternRecord(userID, patternHash, featuresJSON, deviceID)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = record
	s.byUser[userID] = append(s.byUser[userID], record.ID)
	return record.ID, nil
}

func (s *MemoryStore) ListByUser(ctx context.Context, userID string) ([]models.PatternRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byUser[userID]
	patterns := make([]models.PatternRecord, 0, len(ids))
	for _, id := range ids {
		if record, ok := s.records[id]; ok {
			patterns = append(patterns, record)
		}
	}
	return patterns, nil
}

func (s *MemoryStore) Verify(ctx context.Context, userID, patternHash, deviceID string) (models.AuthResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byUser[userID]
	if len(ids) == 0 {
		return models.AuthResult{}, ErrNotEnrolled
	}

	best := 0
	for _, id := range ids {
		if record, ok := s.records[id]; ok {
			if similarity := biometrics.Similarity(patternHash, record.PatternHash); similarity > best {
				best = similarity
			}
		}
	}
	return matchResult(best, s.threshold), nil
}

func (s *MemoryStore) ClearUser(ctx context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.byUser[userID]
	for _, id := range ids {
		delete(s.records, id)
	}
	delete(s.byUser, userID)
	return len(ids), nil
}

func (s *MemoryStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.records)), nil
}

// newPatternRecord builds the record stored by both implementations. The
// confidence score is recomputed from the submitted features rather than
// trusted from the client.
func newPatternRecord(userID, patternHash, featuresJSON, deviceID string) (models.PatternRecord, error) {
	var features models.BehavioralFeatures
	if err := json.Unmarshal([]byte(featuresJSON), &features); err != nil {
		return models.PatternRecord{}, fmt.Errorf("%w: %v", ErrInvalidFeatures, err)
	}

	return models.PatternRecord{
		ID:              uuid.NewString(),
		UserID:          userID,
		PatternHash:     patternHash,
		ConfidenceScore: biometrics.CalculateConfidenceScore(features),
		Features:        featuresJSON,
		Timestamp:       time.Now().UnixMilli(),
		DeviceID:        deviceID,
	}, nil
}

func matchResult(best, threshold int) models.AuthResult {
	success := best >= threshold
	var message string
	if success {
		message = fmt.Sprintf("Authentication successful. Pattern matches with %d%% confidence.", best)
	} else {
		message = fmt.Sprintf("Authentication failed. Best match: %d%% (threshold: %d%%)", best, threshold)
	}
	return models.AuthResult{
		Success:         success,
		ConfidenceScore: best,
		Message:         message,
		Timestamp:       time.Now().UnixMilli(),
	}
}
