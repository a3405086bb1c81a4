// Package capture owns the sample buffers for one bounded capture window.
// Each sensor stream has a single logical producer appending to its own
// buffer; feature extraction only ever sees a frozen snapshot taken after
// the window closes.
package capture

import (
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/xid"

	"github.com/drushti-surkar/hashgait-demo/internal/biometrics"
	"github.com/drushti-surkar/hashgait-demo/internal/models"
)

// DefaultWindow is how long a capture session accepts samples.
const DefaultWindow = 10 * time.Second

var (
	// ErrWindowClosed is returned for appends after the window closed.
	ErrWindowClosed = errors.New("capture window is closed")

	// ErrNoData means all three sample streams finished empty; the caller
	// should prompt a re-capture. Sparse-but-nonempty captures are not an
	// error, the extraction defaults absorb them.
	ErrNoData = errors.New("no data collected during capture")
)

// Session accumulates touch and motion samples for one capture window.
type Session struct {
	id       string
	username string
	window   time.Duration
	started  time.Time
	timer    *time.Timer
	closed   atomic.Bool

	touchMu sync.Mutex
	touch   []models.TouchSample

	accelMu sync.Mutex
	accel   []models.MotionSample

	gyroMu sync.Mutex
	gyro   []models.MotionSample
}

// NewSession starts a capture window for the given user. The window closes
// itself after the configured duration; Close may be called earlier.
func NewSession(username string, window time.Duration) *Session {
	if window <= 0 {
		window = DefaultWindow
	}
	s := &Session{
		id:       "session_" + xid.New().String(),
		username: username,
		window:   window,
		started:  time.Now(),
	}
	s.timer = time.AfterFunc(window, s.Close)
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) AddTouch(sample models.TouchSample) error {
	if s.closed.Load() {
		return ErrWindowClosed
	}
	s.touchMu.Lock()
	defer s.touchMu.Unlock()
	if s.closed.Load() {
		return ErrWindowClosed
	}
	s.touch = append(s.touch, sample)
	return nil
}

func (s *Session) AddAccelerometer(sample models.MotionSample) error {
	if s.closed.Load() {
		return ErrWindowClosed
	}
	s.accelMu.Lock()
	defer s.accelMu.Unlock()
	if s.closed.Load() {
		return ErrWindowClosed
	}
	s.accel = append(s.accel, sample)
	return nil
}

func (s *Session) AddGyroscope(sample models.MotionSample) error {
	if s.closed.Load() {
		return ErrWindowClosed
	}
	s.gyroMu.Lock()
	defer s.gyroMu.Unlock()
	if s.closed.Load() {
		return ErrWindowClosed
	}
	s.gyro = append(s.gyro, sample)
	return nil
}

// Close ends the window. It waits out any append already holding a buffer
// lock, so after Close returns the buffers are frozen. Idempotent.
func (s *Session) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	s.timer.Stop()
	s.touchMu.Lock()
	s.touchMu.Unlock()
	s.accelMu.Lock()
	s.accelMu.Unlock()
	s.gyroMu.Lock()
	s.gyroMu.Unlock()
}

// Snapshot returns copies of the three buffers. Callers normally use
// Result; Snapshot exists for callers that want the raw samples.
func (s *Session) Snapshot() (touch []models.TouchSample, accel, gyro []models.MotionSample) {
	s.touchMu.Lock()
	touch = append([]models.TouchSample(nil), s.touch...)
	s.touchMu.Unlock()

	s.accelMu.Lock()
	accel = append([]models.MotionSample(nil), s.accel...)
	s.accelMu.Unlock()

	s.gyroMu.Lock()
	gyro = append([]models.MotionSample(nil), s.gyro...)
	s.gyroMu.Unlock()
	return touch, accel, gyro
}

// gaitPayload is the serialized capture summary sent to the hash backend.
type gaitPayload struct {
	Username           string                    `json:"username"`
	SessionID          string                    `json:"sessionId"`
	Features           models.BehavioralFeatures `json:"features"`
	TouchEventCount    int                       `json:"touchEventCount"`
	AccelerometerCount int                       `json:"accelerometerCount"`
	GyroscopeCount     int                       `json:"gyroscopeCount"`
	Timestamp          string                    `json:"timestamp"`
}

// Result closes the window and runs the full pipeline over the frozen
// buffers: extraction, fingerprinting and confidence scoring.
func (s *Session) Result() (*models.CaptureResult, error) {
	s.Close()
	touch, accel, gyro := s.Snapshot()

	if len(touch) == 0 && len(accel) == 0 && len(gyro) == 0 {
		return nil, ErrNoData
	}

	features := biometrics.ExtractFeatures(touch, accel, gyro)
	hash := biometrics.GeneratePatternHash(features)
	confidence := biometrics.CalculateConfidenceScore(features)
	now := time.Now().UTC().Format(time.RFC3339)

	payload, err := json.Marshal(gaitPayload{
		Username:           s.username,
		SessionID:          s.id,
		Features:           features,
		TouchEventCount:    len(touch),
		AccelerometerCount: len(accel),
		GyroscopeCount:     len(gyro),
		Timestamp:          now,
	})
	if err != nil {
		return nil, err
	}

	return &models.CaptureResult{
		Username:           s.username,
		SessionID:          s.id,
		PatternHash:        hash,
		GaitData:           string(payload),
		Features:           features,
		Confidence:         confidence,
		TouchSamples:       len(touch),
		AccelerometerCount: len(accel),
		GyroscopeCount:     len(gyro),
		Timestamp:          now,
	}, nil
}
