package flexfx

import "time"

// Play is a concrete, already-scaled performance ready to render: either an
// ordered segment sequence, or a bare silence of a given length. A Play is
// immutable once built and is consumed exactly once by the player.
type Play struct {
	// Segments is the scaled segment sequence. A renderer must play the
	// segments of one Play back to back with no audible gap.
	Segments []Segment

	// Silence is the length of a silent Play. It is only meaningful when
	// Segments is empty; the player waits it out instead of invoking the
	// renderer.
	Silence time.Duration
}

// NewSilence returns a Play that occupies d of playback time without
// producing sound. A non-positive d yields an empty Play.
func NewSilence(d time.Duration) Play {
	if d < 0 {
		d = 0
	}
	return Play{Silence: d}
}

// IsSilence reports whether p is a bare silence marker.
func (p Play) IsSilence() bool {
	return len(p.Segments) == 0 && p.Silence > 0
}

// IsEmpty reports whether p has nothing to render at all. Empty Plays come
// from scaling a zero-segment template; the player skips them silently.
func (p Play) IsEmpty() bool {
	return len(p.Segments) == 0 && p.Silence <= 0
}

// Duration returns the total playback time of p in milliseconds.
func (p Play) Duration() float64 {
	if p.IsSilence() {
		return float64(p.Silence) / float64(time.Millisecond)
	}
	var total float64
	for _, seg := range p.Segments {
		total += seg.Duration
	}
	return total
}
