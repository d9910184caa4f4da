package catalog

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/MrWong99/flexfx/pkg/flexfx"
)

// EffectFile is the top-level structure of a flexfx effect YAML file.
//
// Example:
//
//	effects:
//	  - id: "ting"
//	    start: { pitch: 2000, volume: 100 }
//	    segments:
//	      - { wave: sine, pitch: 2000, volume: 25, duration: 200, curve: logarithmic }
type EffectFile struct {
	Effects []EffectDefinition `yaml:"effects"`
}

// EffectDefinition describes one FlexFX template: its starting point and the
// ordered segments that follow. Each segment slides from the previous
// boundary to its own pitch/volume over its duration.
type EffectDefinition struct {
	// ID is the template's unique key. Importing replaces any existing
	// template under the same id.
	ID string `yaml:"id"`

	// Start is the pitch/volume point segment 1 slides away from.
	Start StartPoint `yaml:"start"`

	// Segments lists at least one segment.
	Segments []SegmentDefinition `yaml:"segments"`
}

// StartPoint is the initial boundary of an effect.
type StartPoint struct {
	Pitch  float64 `yaml:"pitch"`
	Volume float64 `yaml:"volume"`
}

// SegmentDefinition is the YAML form of a [flexfx.SegmentSpec]. Wave, curve
// and effect default to sine, linear and none when omitted.
type SegmentDefinition struct {
	Wave     string  `yaml:"wave"`
	Pitch    float64 `yaml:"pitch"`
	Volume   float64 `yaml:"volume"`
	Duration float64 `yaml:"duration"`
	Curve    string  `yaml:"curve"`
	Effect   string  `yaml:"effect"`
}

// spec converts the YAML form to a [flexfx.SegmentSpec], applying defaults
// and validating the enumerations.
func (d SegmentDefinition) spec() (flexfx.SegmentSpec, error) {
	spec := flexfx.SegmentSpec{
		Wave:      flexfx.WaveSine,
		EndPitch:  d.Pitch,
		EndVolume: d.Volume,
		Duration:  d.Duration,
		Curve:     flexfx.CurveLinear,
		Effect:    flexfx.EffectNone,
	}
	if d.Wave != "" {
		spec.Wave = flexfx.Wave(strings.ToLower(d.Wave))
		if !spec.Wave.IsValid() {
			return flexfx.SegmentSpec{}, fmt.Errorf("unknown wave %q", d.Wave)
		}
	}
	if d.Curve != "" {
		spec.Curve = flexfx.Curve(strings.ToLower(d.Curve))
		if !spec.Curve.IsValid() {
			return flexfx.SegmentSpec{}, fmt.Errorf("unknown curve %q", d.Curve)
		}
	}
	if d.Effect != "" {
		spec.Effect = flexfx.Effect(strings.ToLower(d.Effect))
		if !spec.Effect.IsValid() {
			return flexfx.SegmentSpec{}, fmt.Errorf("unknown effect %q", d.Effect)
		}
	}
	return spec, nil
}

// LoadFile reads and parses an effect YAML file from disk.
// Returns a descriptive error if the file cannot be opened or parsed.
func LoadFile(path string) (*EffectFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open effect file %q: %w", path, err)
	}
	defer f.Close()

	ef, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse effect file %q: %w", path, err)
	}
	return ef, nil
}

// LoadFromReader parses effect YAML from an [io.Reader].
// The reader is consumed entirely; the caller is responsible for closing it.
func LoadFromReader(r io.Reader) (*EffectFile, error) {
	var ef EffectFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true) // reject unknown keys to catch typos
	if err := dec.Decode(&ef); err != nil {
		return nil, fmt.Errorf("catalog: decode effect yaml: %w", err)
	}
	return &ef, nil
}

// Import registers all effects from a parsed [EffectFile] into store.
// Returns the number of effects successfully imported. A malformed effect
// aborts the import and returns the count so far.
func Import(store *flexfx.Store, file *EffectFile) (int, error) {
	if file == nil {
		return 0, fmt.Errorf("catalog: effect file must not be nil")
	}

	imported := 0
	for i, def := range file.Effects {
		if def.ID == "" {
			return imported, fmt.Errorf("catalog: effects[%d] has no id", i)
		}
		if len(def.Segments) == 0 {
			return imported, fmt.Errorf("catalog: effect %q has no segments", def.ID)
		}

		first, err := def.Segments[0].spec()
		if err != nil {
			return imported, fmt.Errorf("catalog: effect %q segment 1: %w", def.ID, err)
		}
		store.Define(def.ID, def.Start.Pitch, def.Start.Volume, first)

		for j, sd := range def.Segments[1:] {
			spec, err := sd.spec()
			if err != nil {
				return imported, fmt.Errorf("catalog: effect %q segment %d: %w", def.ID, j+2, err)
			}
			if err := store.Extend(def.ID, spec); err != nil {
				return imported, fmt.Errorf("catalog: effect %q segment %d: %w", def.ID, j+2, err)
			}
		}
		imported++
	}
	return imported, nil
}

// LoadPath imports the effect file at path, or every *.yaml / *.yml file
// below path when it is a directory. Files of a directory are parsed in
// parallel and imported in lexical path order so later files deterministically
// override earlier ones. Returns the total number of effects imported.
func LoadPath(store *flexfx.Store, path string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("catalog: stat %q: %w", path, err)
	}

	if !info.IsDir() {
		ef, err := LoadFile(path)
		if err != nil {
			return 0, err
		}
		return Import(store, ef)
	}

	var paths []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(p)) {
		case ".yaml", ".yml":
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("catalog: walk %q: %w", path, err)
	}
	sort.Strings(paths)

	// Parse in parallel, import sequentially in path order. Each goroutine
	// writes its own slice slot, so no extra locking is needed.
	files := make([]*EffectFile, len(paths))
	var eg errgroup.Group
	for i, p := range paths {
		eg.Go(func() error {
			ef, err := LoadFile(p)
			if err != nil {
				return err
			}
			files[i] = ef
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, ef := range files {
		n, err := Import(store, ef)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
