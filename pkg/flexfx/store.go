package flexfx

import (
	"errors"
	"sort"
	"sync"
)

// ErrUnknownEffect is returned when an operation references an id that was
// never defined. Callers must Define before they Extend or Scale — unknown
// ids are never auto-created.
var ErrUnknownEffect = errors.New("flexfx: unknown effect id")

// Store owns every FlexFX template, keyed by id. It serialises all access,
// so the templates themselves may be shared freely between tasks as long as
// they are only reached through the Store.
//
// The zero value is ready to use.
type Store struct {
	mu      sync.RWMutex
	effects map[string]*FlexFX
}

// NewStore returns an initialised [Store].
func NewStore() *Store {
	return &Store{effects: make(map[string]*FlexFX)}
}

// Define creates (or wholly replaces) the template under id: point 0 is set
// to (startPitch, startVolume) and the first segment is appended from spec,
// exactly as [Store.Extend] would. Any previous definition under id is
// discarded entirely — no partial reuse. The result is always a valid
// one-segment template.
func (s *Store) Define(id string, startPitch, startVolume float64, spec SegmentSpec) {
	fx := New(id, startPitch, startVolume, spec)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.effects == nil {
		s.effects = make(map[string]*FlexFX)
	}
	s.effects[id] = fx
}

// Extend appends one segment to the template under id, inheriting the
// previous end point as the new start point.
// Returns [ErrUnknownEffect] if id was never defined.
func (s *Store) Extend(id string, spec SegmentSpec) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fx, ok := s.effects[id]
	if !ok {
		return ErrUnknownEffect
	}
	fx.Extend(spec)
	return nil
}

// Get returns a deep copy of the template under id, or [ErrUnknownEffect].
// The copy shares no state with the stored instance.
func (s *Store) Get(id string) (*FlexFX, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fx, ok := s.effects[id]
	if !ok {
		return nil, ErrUnknownEffect
	}
	return fx.Clone(), nil
}

// Scale performs the template under id with the given overall pitch shift
// (in semitones), volume ceiling (0–100) and target total duration (ms).
// Returns [ErrUnknownEffect] if id was never defined; all other inputs are
// clamped rather than rejected, so a known id always yields a renderable
// Play.
func (s *Store) Scale(id string, pitchSteps, volumeCeiling, targetDuration float64) (Play, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fx, ok := s.effects[id]
	if !ok {
		return Play{}, ErrUnknownEffect
	}
	return fx.Scale(pitchSteps, volumeCeiling, targetDuration), nil
}

// Remove deletes the template under id.
// Returns [ErrUnknownEffect] if id was never defined.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.effects[id]; !ok {
		return ErrUnknownEffect
	}
	delete(s.effects, id)
	return nil
}

// List returns the defined ids in lexical order.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.effects))
	for id := range s.effects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of defined templates.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.effects)
}
