package models

import "math"

// Touch phases as reported by the capture surface.
const (
	TouchStart = "start"
	TouchMove  = "move"
	TouchEnd   = "end"
)

// TouchSample is a single touch event recorded during a capture window.
// Samples are immutable once recorded and arrive in chronological order;
// the pipeline never re-sorts them.
type TouchSample struct {
	Timestamp int64   `json:"timestamp"` // milliseconds
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Pressure  float64 `json:"pressure"` // 0..1
	Phase     string  `json:"type"`     // start, move, end
	Duration  int64   `json:"duration,omitempty"` // milliseconds, set on end events
}

// MotionSample is one accelerometer or gyroscope reading. The two sensor
// streams are collected independently and only meet in feature extraction,
// via their magnitudes.
type MotionSample struct {
	Timestamp int64   `json:"timestamp"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
}

// Magnitude returns the Euclidean magnitude of the reading.
func (m MotionSample) Magnitude() float64 {
	return math.Sqrt(m.X*m.X + m.Y*m.Y + m.Z*m.Z)
}
