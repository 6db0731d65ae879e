package systems

import "math"

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// distanceSq returns the squared distance between two points.
func distanceSq(x1, y1, x2, y2 float32) float32 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

// sqrtf is math.Sqrt for float32.
func sqrtf(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

// randRange returns a value in [lo, hi) from a unit sample u in [0, 1).
func randRange(u, lo, hi float32) float32 {
	return lo + u*(hi-lo)
}
