// Package catalog populates a flexfx store with effect templates: the stock
// catalog of built-in effects, and user-defined effects loaded from YAML
// files.
package catalog

import "github.com/MrWong99/flexfx/pkg/flexfx"

// Builtins registers the stock effect catalog in store. Existing templates
// under the same ids are replaced.
func Builtins(store *flexfx.Store) {
	// A short metallic ring fading to a quarter of its level.
	store.Define("ting", 2000, 100, flexfx.SegmentSpec{
		Wave: flexfx.WaveSine, EndPitch: 2000, EndVolume: 25, Duration: 200,
		Curve: flexfx.CurveLogarithmic, Effect: flexfx.EffectNone,
	})

	// A struck chime: sharp attack, long ringing decay.
	store.Define("chime", 1600, 100, flexfx.SegmentSpec{
		Wave: flexfx.WaveSine, EndPitch: 1600, EndVolume: 60, Duration: 80,
		Curve: flexfx.CurveLinear,
	})
	mustExtend(store, "chime", flexfx.SegmentSpec{
		Wave: flexfx.WaveSine, EndPitch: 1580, EndVolume: 5, Duration: 720,
		Curve: flexfx.CurveLogarithmic,
	})

	// A sad falling cry with a little recovering lift at the end.
	store.Define("cry", 800, 60, flexfx.SegmentSpec{
		Wave: flexfx.WaveSquare, EndPitch: 400, EndVolume: 80, Duration: 264,
		Curve: flexfx.CurveCurved,
	})
	mustExtend(store, "cry", flexfx.SegmentSpec{
		Wave: flexfx.WaveSquare, EndPitch: 600, EndVolume: 30, Duration: 264,
		Curve: flexfx.CurveLinear,
	})
	mustExtend(store, "cry", flexfx.SegmentSpec{
		Wave: flexfx.WaveSquare, EndPitch: 500, EndVolume: 0, Duration: 272,
		Curve: flexfx.CurveLinear,
	})

	// An urgent rising shout, cut off hard.
	store.Define("shout", 300, 70, flexfx.SegmentSpec{
		Wave: flexfx.WaveSawtooth, EndPitch: 600, EndVolume: 100, Duration: 120,
		Curve: flexfx.CurveCurved,
	})
	mustExtend(store, "shout", flexfx.SegmentSpec{
		Wave: flexfx.WaveSawtooth, EndPitch: 550, EndVolume: 50, Duration: 180,
		Curve: flexfx.CurveLinear,
	})

	// A two-phase siren sweep, up then down, with vibrato.
	store.Define("siren", 450, 90, flexfx.SegmentSpec{
		Wave: flexfx.WaveSawtooth, EndPitch: 900, EndVolume: 90, Duration: 500,
		Curve: flexfx.CurveLinear, Effect: flexfx.EffectVibrato,
	})
	mustExtend(store, "siren", flexfx.SegmentSpec{
		Wave: flexfx.WaveSawtooth, EndPitch: 450, EndVolume: 90, Duration: 500,
		Curve: flexfx.CurveLinear, Effect: flexfx.EffectVibrato,
	})

	// A whale song: slow deep swoops with a breathing gap in the middle.
	store.Define("whale", 120, 50, flexfx.SegmentSpec{
		Wave: flexfx.WaveSine, EndPitch: 360, EndVolume: 80, Duration: 900,
		Curve: flexfx.CurveCurved, Effect: flexfx.EffectTremolo,
	})
	mustExtend(store, "whale", flexfx.SegmentSpec{
		Wave: flexfx.WaveSilence, EndPitch: 200, EndVolume: 70, Duration: 300,
	})
	mustExtend(store, "whale", flexfx.SegmentSpec{
		Wave: flexfx.WaveSine, EndPitch: 90, EndVolume: 0, Duration: 800,
		Curve: flexfx.CurveLogarithmic, Effect: flexfx.EffectTremolo,
	})

	// A quick bird tweet: two chirps separated by a breath.
	store.Define("tweet", 2800, 80, flexfx.SegmentSpec{
		Wave: flexfx.WaveSine, EndPitch: 4600, EndVolume: 90, Duration: 90,
		Curve: flexfx.CurveLogarithmic, Effect: flexfx.EffectWarble,
	})
	mustExtend(store, "tweet", flexfx.SegmentSpec{
		Wave: flexfx.WaveSilence, EndPitch: 2800, EndVolume: 80, Duration: 60,
	})
	mustExtend(store, "tweet", flexfx.SegmentSpec{
		Wave: flexfx.WaveSine, EndPitch: 4200, EndVolume: 0, Duration: 120,
		Curve: flexfx.CurveLogarithmic, Effect: flexfx.EffectWarble,
	})

	// A snore: a rasping intake and a soft whistling release.
	store.Define("snore", 140, 80, flexfx.SegmentSpec{
		Wave: flexfx.WaveNoise, EndPitch: 90, EndVolume: 100, Duration: 600,
		Curve: flexfx.CurveCurved,
	})
	mustExtend(store, "snore", flexfx.SegmentSpec{
		Wave: flexfx.WaveTriangle, EndPitch: 220, EndVolume: 20, Duration: 500,
		Curve: flexfx.CurveLinear,
	})

	// A short warning horn: two blasts.
	store.Define("horn", 500, 100, flexfx.SegmentSpec{
		Wave: flexfx.WaveSquare, EndPitch: 500, EndVolume: 100, Duration: 250,
		Curve: flexfx.CurveLinear,
	})
	mustExtend(store, "horn", flexfx.SegmentSpec{
		Wave: flexfx.WaveSilence, EndPitch: 500, EndVolume: 100, Duration: 120,
	})
	mustExtend(store, "horn", flexfx.SegmentSpec{
		Wave: flexfx.WaveSquare, EndPitch: 500, EndVolume: 0, Duration: 350,
		Curve: flexfx.CurveLogarithmic,
	})
}

// mustExtend panics on a failed extend. Builtins only extend ids they just
// defined, so a failure is a programming error in this file.
func mustExtend(store *flexfx.Store, id string, spec flexfx.SegmentSpec) {
	if err := store.Extend(id, spec); err != nil {
		panic("catalog: extend builtin " + id + ": " + err.Error())
	}
}
