package biometrics

import (
	"math"

	"github.com/drushti-surkar/hashgait-demo/internal/models"
)

// CalculateConfidenceScore rates the signal quality of a single capture on
// a 0..100 scale. It reflects how rich the capture itself was, not a match
// against any reference: one sub-score per feature, each clamped to
// [0,100], averaged. Higher motion variance lowers the score since erratic
// motion is treated as noise.
func CalculateConfidenceScore(f models.BehavioralFeatures) int {
	f = f.Sanitized()
	scores := [6]float64{
		clampScore(f.AvgTouchPressure * 100),
		clampScore(f.AvgTouchDuration / 5),
		clampScore(f.SwipeVelocity * 10),
		clampScore(f.TapFrequency * 20),
		clampScore(100 - f.DeviceMotionVariance*10),
		clampScore(f.GestureComplexity * 20),
	}

	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return int(math.Round(sum / float64(len(scores))))
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
