package biometrics

import (
	"math"

	"github.com/drushti-surkar/hashgait-demo/internal/models"
)

// Defaults used when a capture is too sparse for a feature to be measured.
// They keep degenerate captures hashable instead of failing: zero pressure
// would bias scoring downward, so the neutral midpoint is used instead.
const (
	defaultPressure   = 0.5
	defaultDurationMS = 100
	defaultComplexity = 1
)

// ExtractFeatures reduces one capture window's raw samples to the
// six-dimensional feature vector. Pure and deterministic; samples are
// assumed chronological and are never re-sorted.
func ExtractFeatures(touch []models.TouchSample, accel, gyro []models.MotionSample) models.BehavioralFeatures {
	f := models.BehavioralFeatures{
		AvgTouchPressure:     avgTouchPressure(touch),
		AvgTouchDuration:     avgTouchDuration(touch),
		SwipeVelocity:        swipeVelocity(touch),
		TapFrequency:         tapFrequency(touch),
		DeviceMotionVariance: motionVariance(accel, gyro),
		GestureComplexity:    gestureComplexity(touch),
	}
	return f.Sanitized()
}

// avgTouchPressure is the mean pressure over samples that actually carry
// pressure. Devices without a pressure sensor report 0 for every sample.
func avgTouchPressure(touch []models.TouchSample) float64 {
	sum := 0.0
	count := 0
	for _, s := range touch {
		if s.Pressure > 0 {
			sum += s.Pressure
			count++
		}
	}
	if count == 0 {
		return defaultPressure
	}
	return sum / float64(count)
}

// avgTouchDuration is the mean duration over end samples that report one.
func avgTouchDuration(touch []models.TouchSample) float64 {
	sum := 0.0
	count := 0
	for _, s := range touch {
		if s.Duration > 0 {
			sum += float64(s.Duration)
			count++
		}
	}
	if count == 0 {
		return defaultDurationMS
	}
	return sum / float64(count)
}

// swipeVelocity averages pixel distance over elapsed ms for every adjacent
// pair of move samples. Pairs with zero elapsed time are skipped rather
// than dividing by zero.
func swipeVelocity(touch []models.TouchSample) float64 {
	total := 0.0
	count := 0
	for i := 0; i+1 < len(touch); i++ {
		a, b := touch[i], touch[i+1]
		if a.Phase != models.TouchMove || b.Phase != models.TouchMove {
			continue
		}
		dt := b.Timestamp - a.Timestamp
		if dt <= 0 {
			continue
		}
		total += distance(a, b) / float64(dt)
		count++
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// tapFrequency is taps per second over the capture span. The span is
// floored at one second so a very short capture cannot inflate the rate.
func tapFrequency(touch []models.TouchSample) float64 {
	taps := 0
	for _, s := range touch {
		if s.Phase == models.TouchStart {
			taps++
		}
	}
	if taps == 0 {
		return 0
	}
	span := 1.0
	if len(touch) > 0 {
		span = float64(touch[len(touch)-1].Timestamp-touch[0].Timestamp) / 1000
	}
	return float64(taps) / math.Max(span, 1)
}

// motionVariance pools the magnitudes of both sensor streams and returns
// their population variance.
func motionVariance(accel, gyro []models.MotionSample) float64 {
	magnitudes := make([]float64, 0, len(accel)+len(gyro))
	for _, s := range accel {
		magnitudes = append(magnitudes, s.Magnitude())
	}
	for _, s := range gyro {
		magnitudes = append(magnitudes, s.Magnitude())
	}
	if len(magnitudes) == 0 {
		return 0
	}

	mean := 0.0
	for _, m := range magnitudes {
		mean += m
	}
	mean /= float64(len(magnitudes))

	variance := 0.0
	for _, m := range magnitudes {
		variance += (m - mean) * (m - mean)
	}
	variance /= float64(len(magnitudes))

	if math.IsNaN(variance) {
		return 0
	}
	return variance
}

// gestureComplexity is the traveled path length over the straight-line
// distance between first and last sample. A zero direct distance (fewer
// than 2 samples, or start == end) means no extra complexity was detected.
func gestureComplexity(touch []models.TouchSample) float64 {
	if len(touch) < 2 {
		return defaultComplexity
	}
	direct := distance(touch[0], touch[len(touch)-1])
	if direct <= 0 {
		return defaultComplexity
	}
	path := 0.0
	for i := 0; i+1 < len(touch); i++ {
		path += distance(touch[i], touch[i+1])
	}
	return path / direct
}

func distance(a, b models.TouchSample) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}
