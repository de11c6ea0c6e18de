package geometry

import "math"

// NearlyZeroMagnitude is the length below which a vector is treated as zero (1 mm).
const NearlyZeroMagnitude = 0.001

func Clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Average returns the arithmetic mean of values, or 0 for none.
func Average(values ...float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func IsNearlyEqual(a, b, tolerance float64) bool {
	return math.Abs(b-a) <= tolerance
}
