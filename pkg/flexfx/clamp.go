package flexfx

// Numeric input ranges. Raw values outside a range are clamped rather than
// rejected: a live performance must never abort on a bad knob value, a
// slightly wrong tone is the lesser failure.
const (
	MinPitch = 1.0
	MaxPitch = 9999.0

	MinVolume = 0.0
	MaxVolume = 100.0

	// Durations are in milliseconds.
	MinDuration = 10.0
	MaxDuration = 9999.0
)

// ClampPitch forces a frequency into [MinPitch, MaxPitch] Hz.
func ClampPitch(hz float64) float64 {
	return clamp(hz, MinPitch, MaxPitch)
}

// ClampVolume forces a volume onto the 0–100 scale.
func ClampVolume(v float64) float64 {
	return clamp(v, MinVolume, MaxVolume)
}

// ClampDuration forces a duration into [MinDuration, MaxDuration] ms.
func ClampDuration(ms float64) float64 {
	return clamp(ms, MinDuration, MaxDuration)
}

func clamp(v, lo, hi float64) float64 {
	// NaN compares false against both bounds; pin it to the floor so a
	// corrupt input still yields a renderable value.
	if !(v > lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
