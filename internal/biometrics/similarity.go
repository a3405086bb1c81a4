package biometrics

// Similarity scores two fingerprints as the percentage of character
// positions at which they agree, floored to an integer. Fingerprints of
// differing length never match.
//
// This is an order-sensitive character comparison, not a proper distance
// metric: equal-length digests of unrelated captures can score high by
// coincidence. It is kept as-is for compatibility with stored fingerprints;
// a feature-space distance would be the principled replacement.
func Similarity(a, b string) int {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	matches := 0
	for i := 0; i < len(a); i++ {
		if a[i] == b[i] {
			matches++
		}
	}
	return matches * 100 / len(a)
}
