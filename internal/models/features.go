package models

import "math"

// BehavioralFeatures is the six-dimensional summary of one capture window.
// Field names match the wire format produced by the mobile client.
type BehavioralFeatures struct {
	AvgTouchPressure     float64 `json:"avgTouchPressure"`
	AvgTouchDuration     float64 `json:"avgTouchDuration"`
	SwipeVelocity        float64 `json:"swipeVelocity"`
	TapFrequency         float64 `json:"tapFrequency"`
	DeviceMotionVariance float64 `json:"deviceMotionVariance"`
	GestureComplexity    float64 `json:"gestureComplexity"`
}

// Sanitized returns a copy with every non-finite component replaced by 0,
// so a degenerate capture still yields a hashable vector.
func (f BehavioralFeatures) Sanitized() BehavioralFeatures {
	f.AvgTouchPressure = finiteOrZero(f.AvgTouchPressure)
	f.AvgTouchDuration = finiteOrZero(f.AvgTouchDuration)
	f.SwipeVelocity = finiteOrZero(f.SwipeVelocity)
	f.TapFrequency = finiteOrZero(f.TapFrequency)
	f.DeviceMotionVariance = finiteOrZero(f.DeviceMotionVariance)
	f.GestureComplexity = finiteOrZero(f.GestureComplexity)
	return f
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
