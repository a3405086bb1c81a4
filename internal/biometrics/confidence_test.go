package biometrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drushti-surkar/hashgait-demo/internal/models"
)

func TestCalculateConfidenceScore(t *testing.T) {
	f := models.BehavioralFeatures{
		AvgTouchPressure:     0.5, // 50
		AvgTouchDuration:     100, // 20
		SwipeVelocity:        0.1, // 1
		TapFrequency:         1.0, // 20
		DeviceMotionVariance: 0,   // 100
		GestureComplexity:    1.0, // 20
	}

	// mean of {50, 20, 1, 20, 100, 20} = 35.17, rounded
	assert.Equal(t, 35, CalculateConfidenceScore(f))
}

func TestCalculateConfidenceScoreBounds(t *testing.T) {
	cases := []struct {
		name     string
		features models.BehavioralFeatures
	}{
		{"zero", models.BehavioralFeatures{}},
		{"adversarial large", models.BehavioralFeatures{
			AvgTouchPressure:  500,
			AvgTouchDuration:  1e9,
			SwipeVelocity:     1000,
			TapFrequency:      1e6,
			GestureComplexity: 1e6,
		}},
		{"high motion variance", models.BehavioralFeatures{DeviceMotionVariance: 1e9}},
		{"negative components", models.BehavioralFeatures{
			AvgTouchPressure:     -10,
			DeviceMotionVariance: -10,
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score := CalculateConfidenceScore(tc.features)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		})
	}
}

func TestCalculateConfidenceScoreSubScoreCaps(t *testing.T) {
	// every sub-score saturated at 100
	f := models.BehavioralFeatures{
		AvgTouchPressure:     2,
		AvgTouchDuration:     1000,
		SwipeVelocity:        50,
		TapFrequency:         10,
		DeviceMotionVariance: 0,
		GestureComplexity:    10,
	}
	assert.Equal(t, 100, CalculateConfidenceScore(f))
}
