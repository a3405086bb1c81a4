package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/drushti-surkar/hashgait-demo/internal/biometrics"
	"github.com/drushti-surkar/hashgait-demo/internal/models"
)

// GormStore persists patterns in Postgres. The per-user index of the
// in-memory variant becomes an indexed user_id column; the database keeps
// it consistent with the records by construction.
type GormStore struct {
	db        *gorm.DB
	threshold int
}

func NewGormStore(db *gorm.DB, threshold int) *GormStore {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}
	return &GormStore{db: db, threshold: threshold}
}

func (s *GormStore) Save(ctx context.Context, userID, patternHash, featuresJSON, deviceID string) (string, error) {
	record, err := newPatternRecord(userID, patternHash, featuresJSON, deviceID)
	if err != nil {
		return "", err
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", fmt.Errorf("save pattern: %w", err)
	}
	return record.ID, nil
}

func (s *GormStore) ListByUser(ctx context.Context, userID string) ([]models.PatternRecord, error) {
	var patterns []models.PatternRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp ASC").
		Find(&patterns).Error
	if err != nil {
		return nil, fmt.Errorf("list patterns: %w", err)
	}
	return patterns, nil
}

func (s *GormStore) Verify(ctx context.Context, userID, patternHash, deviceID string) (models.AuthResult, error) {
	var hashes []string
	err := s.db.WithContext(ctx).
		Model(&models.PatternRecord{}).
		Where("user_id = ?", userID).
		Pluck("pattern_hash", &hashes).Error
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("load reference patterns: %w", err)
	}
	if len(hashes) == 0 {
		return models.AuthResult{}, ErrNotEnrolled
	}

	best := 0
	for _, stored := range hashes {
		if similarity := biometrics.Similarity(patternHash, stored); similarity > best {
			best = similarity
		}
	}
	return matchResult(best, s.threshold), nil
}

func (s *GormStore) ClearUser(ctx context.Context, userID string) (int, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.PatternRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("clear patterns: %w", result.Error)
	}
	return int(result.RowsAffected), nil
}

func (s *GormStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.PatternRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count patterns: %w", err)
	}
	return count, nil
}
