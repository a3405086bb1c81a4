package models

// PatternRecord is one enrolled behavioral pattern. Records are append-only:
// created on save, never mutated, removed only by a clear-all for the user.
type PatternRecord struct {
	ID              string `gorm:"primaryKey;size:36" json:"id"`
	UserID          string `gorm:"index;size:128" json:"userId"`
	PatternHash     string `gorm:"size:64" json:"patternHash"`
	ConfidenceScore int    `json:"confidenceScore"`
	Features        string `json:"features"` // serialized BehavioralFeatures
	Timestamp       int64  `gorm:"index" json:"timestamp"` // unix milliseconds
	DeviceID        string `gorm:"size:128" json:"deviceId"`
}

// AuthResult is the outcome of matching a candidate fingerprint against a
// user's stored patterns.
type AuthResult struct {
	Success         bool   `json:"success"`
	ConfidenceScore int    `json:"confidenceScore"` // best match percent, 0..100
	Message         string `json:"message"`
	Timestamp       int64  `json:"timestamp"`
}

// CaptureResult is everything a finished capture session produces: the
// feature vector, its fingerprint and quality score, and the serialized
// payload sent to the hash backend.
type CaptureResult struct {
	Username           string             `json:"username"`
	SessionID          string             `json:"sessionId"`
	PatternHash        string             `json:"patternHash"`
	GaitData           string             `json:"gaitDataString"`
	Features           BehavioralFeatures `json:"features"`
	Confidence         int                `json:"confidence"`
	TouchSamples       int                `json:"touchEvents"`
	AccelerometerCount int                `json:"accelerometerData"`
	GyroscopeCount     int                `json:"gyroscopeData"`
	Timestamp          string             `json:"timestamp"`
}
