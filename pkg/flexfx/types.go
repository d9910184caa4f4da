// Package flexfx implements composite sound-effect templates ("FlexFX"): a
// named sequence of timbre segments, each sliding pitch and volume from a
// start point to an end point over a duration. A stored FlexFX keeps its
// profiles unscaled, so a single template can later be performed at any
// overall pitch shift, volume ceiling and total duration without rebuilding
// the segment descriptors.
//
// The package owns the profile model and the scaling algorithm only. Queueing
// and playback live in the player subpackage; actual audio rendering is an
// external collaborator behind the player's Renderer interface.
package flexfx

// Wave selects the oscillator shape of a segment. WaveSilence is a special
// kind: the segment occupies time in the performance but produces no sound.
type Wave string

const (
	WaveSine     Wave = "sine"
	WaveSawtooth Wave = "sawtooth"
	WaveTriangle Wave = "triangle"
	WaveSquare   Wave = "square"
	WaveNoise    Wave = "noise"
	WaveSilence  Wave = "silence"
)

// IsValid reports whether w is a recognised waveform kind.
func (w Wave) IsValid() bool {
	switch w {
	case WaveSine, WaveSawtooth, WaveTriangle, WaveSquare, WaveNoise, WaveSilence:
		return true
	}
	return false
}

// Curve selects how pitch and volume travel from a segment's start point to
// its end point.
type Curve string

const (
	CurveLinear      Curve = "linear"
	CurveCurved      Curve = "curved"
	CurveLogarithmic Curve = "logarithmic"
)

// IsValid reports whether c is a recognised interpolation curve.
func (c Curve) IsValid() bool {
	switch c {
	case CurveLinear, CurveCurved, CurveLogarithmic:
		return true
	}
	return false
}

// Effect selects an optional modulation applied across a segment.
type Effect string

const (
	EffectNone    Effect = "none"
	EffectTremolo Effect = "tremolo"
	EffectVibrato Effect = "vibrato"
	EffectWarble  Effect = "warble"
)

// IsValid reports whether e is a recognised modulation effect.
func (e Effect) IsValid() bool {
	switch e {
	case EffectNone, EffectTremolo, EffectVibrato, EffectWarble:
		return true
	}
	return false
}

// Segment is one rendered span of a performance: a waveform sliding from
// (StartPitch, StartVolume) to (EndPitch, EndVolume) over Duration
// milliseconds. Segments are plain values — copying one never aliases a
// stored template.
type Segment struct {
	// Wave is the oscillator shape.
	Wave Wave

	// StartPitch and EndPitch are frequencies in Hz, within [MinPitch, MaxPitch].
	StartPitch float64
	EndPitch   float64

	// StartVolume and EndVolume are on the 0–100 scale.
	StartVolume float64
	EndVolume   float64

	// Duration is the segment length in milliseconds,
	// within [MinDuration, MaxDuration].
	Duration float64

	// Curve is the start→end interpolation shape.
	Curve Curve

	// Effect is the modulation applied across the segment.
	Effect Effect
}

// SegmentSpec describes one segment to append to a FlexFX. The segment's
// start point is inherited from the previous boundary, so a spec only carries
// the end point and the travel parameters.
type SegmentSpec struct {
	// Wave is the oscillator shape. WaveSilence yields a timed gap: the
	// rendered segment is muted, but the boundary pitch and volume are still
	// recorded so the following segment inherits the intended start point.
	Wave Wave

	// EndPitch is the boundary frequency in Hz this segment slides to.
	EndPitch float64

	// EndVolume is the boundary volume (0–100) this segment slides to.
	EndVolume float64

	// Duration is the unscaled segment length in milliseconds.
	Duration float64

	// Curve is the start→end interpolation shape.
	Curve Curve

	// Effect is the modulation applied across the segment.
	Effect Effect
}
