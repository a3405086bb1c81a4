// Package store holds enrolled behavioral patterns. Records are indexed by
// id and by user; the per-user index always stays consistent with the
// record table. Storage faults come back as plain error returns so callers
// branch on success or failure at the call site.
package store

import (
	"context"
	"errors"

	"github.com/drushti-surkar/hashgait-demo/internal/models"
)

// DefaultMatchThreshold is the minimum best-match percent that counts as a
// successful authentication.
const DefaultMatchThreshold = 70

var (
	// ErrNotEnrolled distinguishes "user has no reference patterns" from a
	// 0% match against existing ones.
	ErrNotEnrolled = errors.New("no patterns found for user")

	// ErrInvalidFeatures signals an unparseable features payload on save.
	ErrInvalidFeatures = errors.New("invalid features payload")
)

// PatternStore is the record store behind enrollment and verification.
type PatternStore interface {
	// Save appends a new pattern record and returns its id. Duplicate
	// hashes are legitimate repeated enrollments, never rejected.
	Save(ctx context.Context, userID, patternHash, featuresJSON, deviceID string) (string, error)

	// ListByUser returns the user's records in enrollment order.
	ListByUser(ctx context.Context, userID string) ([]models.PatternRecord, error)

	// Verify matches the candidate fingerprint against every stored
	// pattern for the user and reports the best match. Returns
	// ErrNotEnrolled when the user has no reference set.
	Verify(ctx context.Context, userID, patternHash, deviceID string) (models.AuthResult, error)

	// ClearUser removes all of the user's records and their index entry,
	// returning how many were removed.
	ClearUser(ctx context.Context, userID string) (int, error)

	// Count reports the total number of stored patterns.
	Count(ctx context.Context) (int64, error)
}
