package biometrics

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/drushti-surkar/hashgait-demo/internal/models"
)

// GeneratePatternHash digests a feature vector into its fingerprint.
//
// Components are scaled by 1000 (duration is already ms-scale and is taken
// as-is) and rounded, collapsing floating-point noise into a canonical
// discrete form: two vectors that round to the same integers hash
// identically. The rounded integers are concatenated and run through a
// 31-multiplier rolling hash with signed 32-bit wraparound, matching the
// mobile engine byte for byte.
//
// This is a fingerprint for matching and lookup, not a cryptographic hash.
func GeneratePatternHash(f models.BehavioralFeatures) string {
	f = f.Sanitized()
	normalized := [6]int64{
		int64(math.Round(f.AvgTouchPressure * 1000)),
		int64(math.Round(f.AvgTouchDuration)),
		int64(math.Round(f.SwipeVelocity * 1000)),
		int64(math.Round(f.TapFrequency * 1000)),
		int64(math.Round(f.DeviceMotionVariance * 1000)),
		int64(math.Round(f.GestureComplexity * 1000)),
	}

	var sb strings.Builder
	for _, n := range normalized {
		sb.WriteString(strconv.FormatInt(n, 10))
	}

	var h int32
	for _, c := range []byte(sb.String()) {
		h = h*31 + int32(c) // wraps at 32 bits
	}

	v := int64(h)
	if v < 0 {
		v = -v
	}
	return fmt.Sprintf("%08x", v)
}
