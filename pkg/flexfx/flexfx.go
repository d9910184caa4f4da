package flexfx

import "math"

// Semitone is the multiplicative pitch step between adjacent semitones: the
// twelfth root of two. Raising a frequency by n semitones multiplies it by
// Semitone^n, so ±12 steps is exactly one octave.
const Semitone = 1.0594630943592953 // 2^(1/12)

// FlexFX is a named, mutable sound-effect template. It keeps three unscaled
// profiles — pitch and volume boundary values shared between adjacent
// segments, and per-segment duration weights — alongside the prototype
// segment sequence they describe.
//
// A FlexFX is not safe for concurrent use on its own; the [Store] serialises
// access when templates are shared between tasks.
type FlexFX struct {
	id string

	// n+1 boundary values: pitchProfile[i] / volumeProfile[i] is the start
	// point of segment i and the end point of segment i-1.
	pitchProfile  []float64
	volumeProfile []float64

	// n per-segment duration weights, in milliseconds.
	durationProfile []float64

	// peakVolume is the loudest boundary seen so far — the denominator for
	// volume scaling. totalDuration is the sum of durationProfile — the
	// denominator for duration scaling.
	peakVolume    float64
	totalDuration float64

	prototype []Segment
}

// New creates a one-segment FlexFX: point 0 at (startPitch, startVolume) and
// a first segment described by spec. All numeric inputs are clamped.
func New(id string, startPitch, startVolume float64, spec SegmentSpec) *FlexFX {
	fx := &FlexFX{
		id:            id,
		pitchProfile:  []float64{ClampPitch(startPitch)},
		volumeProfile: []float64{ClampVolume(startVolume)},
	}
	fx.peakVolume = fx.volumeProfile[0]
	fx.Extend(spec)
	return fx
}

// ID returns the template's unique key.
func (fx *FlexFX) ID() string { return fx.id }

// PartCount returns the number of segments defined so far.
func (fx *FlexFX) PartCount() int { return len(fx.prototype) }

// PeakVolume returns the loudest boundary volume stored in the template.
func (fx *FlexFX) PeakVolume() float64 { return fx.peakVolume }

// TotalDuration returns the sum of the unscaled segment durations in
// milliseconds.
func (fx *FlexFX) TotalDuration() float64 { return fx.totalDuration }

// Prototype returns a copy of the unscaled segment sequence.
func (fx *FlexFX) Prototype() []Segment {
	out := make([]Segment, len(fx.prototype))
	copy(out, fx.prototype)
	return out
}

// Extend appends one boundary point and one segment, inheriting the previous
// end point as the new segment's start point. Numeric inputs are clamped. A
// WaveSilence segment is muted in the prototype, but the boundary volume is
// stored as given so a following segment still inherits the intended level.
func (fx *FlexFX) Extend(spec SegmentSpec) {
	endPitch := ClampPitch(spec.EndPitch)
	endVolume := ClampVolume(spec.EndVolume)
	duration := ClampDuration(spec.Duration)

	seg := Segment{
		Wave:        spec.Wave,
		StartPitch:  fx.pitchProfile[len(fx.pitchProfile)-1],
		EndPitch:    endPitch,
		StartVolume: fx.volumeProfile[len(fx.volumeProfile)-1],
		EndVolume:   endVolume,
		Duration:    duration,
		Curve:       spec.Curve,
		Effect:      spec.Effect,
	}
	if seg.Wave == WaveSilence {
		seg.StartVolume = 0
		seg.EndVolume = 0
	}

	fx.pitchProfile = append(fx.pitchProfile, endPitch)
	fx.volumeProfile = append(fx.volumeProfile, endVolume)
	fx.durationProfile = append(fx.durationProfile, duration)
	fx.peakVolume = math.Max(fx.peakVolume, endVolume)
	fx.totalDuration += duration
	fx.prototype = append(fx.prototype, seg)
}

// Clone returns a deep copy sharing no state with fx.
func (fx *FlexFX) Clone() *FlexFX {
	out := &FlexFX{
		id:              fx.id,
		pitchProfile:    append([]float64(nil), fx.pitchProfile...),
		volumeProfile:   append([]float64(nil), fx.volumeProfile...),
		durationProfile: append([]float64(nil), fx.durationProfile...),
		peakVolume:      fx.peakVolume,
		totalDuration:   fx.totalDuration,
		prototype:       append([]Segment(nil), fx.prototype...),
	}
	return out
}

// Scale performs the template: it returns a fresh [Play] whose segments are
// the prototype re-pitched by pitchSteps semitones (fractional steps
// allowed), re-levelled so the loudest boundary lands on volumeCeiling, and
// re-timed so the total length is targetDuration milliseconds. Waveform,
// curve and effect are copied unchanged; every rescaled value is clamped, so
// the result is always renderable.
//
// Scale never fails: an empty template yields an empty Play, and a template
// whose peak volume is zero scales to silence throughout. The returned Play
// shares no state with fx or with earlier Plays.
func (fx *FlexFX) Scale(pitchSteps, volumeCeiling, targetDuration float64) Play {
	n := len(fx.prototype)
	if n == 0 {
		return Play{}
	}

	// The ratios themselves are not clamped: every rescaled segment value is,
	// which keeps the identity scale exact while still bounding the output.
	pitchRatio := math.Pow(Semitone, pitchSteps)
	volumeRatio := 0.0
	if fx.peakVolume > 0 {
		volumeRatio = volumeCeiling / fx.peakVolume
	}
	durationRatio := targetDuration / fx.totalDuration

	segments := make([]Segment, n)
	for i, proto := range fx.prototype {
		seg := proto
		seg.StartPitch = ClampPitch(fx.pitchProfile[i] * pitchRatio)
		seg.EndPitch = ClampPitch(fx.pitchProfile[i+1] * pitchRatio)
		seg.StartVolume = ClampVolume(fx.volumeProfile[i] * volumeRatio)
		seg.EndVolume = ClampVolume(fx.volumeProfile[i+1] * volumeRatio)
		seg.Duration = ClampDuration(fx.durationProfile[i] * durationRatio)
		if seg.Wave == WaveSilence {
			seg.StartVolume = 0
			seg.EndVolume = 0
		}
		segments[i] = seg
	}
	return Play{Segments: segments}
}
