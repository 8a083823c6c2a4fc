package reactor

import "math"

// clamp limits v to [lo, hi]. NaN collapses to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampPercent limits v to [0, 100].
func clampPercent(v float64) float64 {
	return clamp(v, 0, 100)
}

func addSaturatingU32(a, b uint32) uint32 {
	if a > math.MaxUint32-b {
		return math.MaxUint32
	}
	return a + b
}

func addSaturatingU8(a, b uint8) uint8 {
	if a > math.MaxUint8-b {
		return math.MaxUint8
	}
	return a + b
}

// narrowU8 converts n to uint8, saturating at 255.
func narrowU8(n int) uint8 {
	switch {
	case n <= 0:
		return 0
	case n >= math.MaxUint8:
		return math.MaxUint8
	}
	return uint8(n)
}
