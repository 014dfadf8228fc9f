package homotopy

import (
	"sort"
	"strings"
	"unicode"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/winding.report/internal/geom"
)

// DefaultRayDirection returns the reference-ray direction punctures
// receive unless overridden: straight up, so a rightward segment above a
// puncture reads as a clockwise crossing.
func DefaultRayDirection() r2.Vec { return r2.Vec{Y: 1} }

// Puncture is a marked point in the plane that paths wind around but
// never touch. Each puncture contributes one free-group generator, and
// the half-line from Position along RayDir is the cut whose signed
// crossings spell that generator's letters.
type Puncture struct {
	ID       int
	Label    rune
	Position r2.Vec
	RayDir   r2.Vec // unit length
}

// Ray returns the puncture's reference ray.
func (p Puncture) Ray() geom.Ray {
	return geom.Ray{Origin: p.Position, Dir: p.RayDir}
}

// Registry assembles the puncture set for a tracking session. Register
// and Remove are configuration-phase operations: live trackers consume
// immutable Snapshots, so reconfiguring a registry never disturbs a
// session already running.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	defaultRay r2.Vec
	nextID     int
	punctures  []Puncture
}

// NewRegistry returns an empty registry whose punctures default to the
// upward reference ray.
func NewRegistry() *Registry {
	return NewRegistryWithRay(DefaultRayDirection())
}

// NewRegistryWithRay returns an empty registry with a session-wide
// default reference-ray direction. dir is normalised; a zero dir falls
// back to the upward default.
func NewRegistryWithRay(dir r2.Vec) *Registry {
	d := geom.Unit(dir)
	if d == (r2.Vec{}) {
		d = DefaultRayDirection()
	}
	return &Registry{defaultRay: d}
}

// Register adds a puncture carrying the registry's default ray direction
// and returns it with its assigned ID.
func (r *Registry) Register(label rune, pos r2.Vec) (Puncture, error) {
	return r.RegisterWithRay(label, pos, r.defaultRay)
}

// RegisterWithRay adds a puncture with its own reference-ray direction.
// The label must be unique up to letter case; dir is normalised, with a
// zero dir falling back to the registry default.
func (r *Registry) RegisterWithRay(label rune, pos r2.Vec, dir r2.Vec) (Puncture, error) {
	for _, p := range r.punctures {
		if unicode.ToUpper(p.Label) == unicode.ToUpper(label) {
			return Puncture{}, DuplicateLabelError{Label: label}
		}
	}
	d := geom.Unit(dir)
	if d == (r2.Vec{}) {
		d = r.defaultRay
	}
	p := Puncture{ID: r.nextID, Label: label, Position: pos, RayDir: d}
	r.nextID++
	r.punctures = append(r.punctures, p)
	return p, nil
}

// Remove deletes the puncture with the given ID. Removing an unknown ID
// is a no-op. IDs are never reused, so words from earlier snapshots stay
// unambiguous.
func (r *Registry) Remove(id int) {
	for i, p := range r.punctures {
		if p.ID == id {
			r.punctures = append(r.punctures[:i], r.punctures[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered punctures.
func (r *Registry) Len() int { return len(r.punctures) }

// Snapshot freezes the current puncture set, ordered by ID. Detectors and
// sessions hold snapshots, never the registry itself.
func (r *Registry) Snapshot() *Snapshot {
	ps := make([]Puncture, len(r.punctures))
	copy(ps, r.punctures)
	sort.Slice(ps, func(i, j int) bool { return ps[i].ID < ps[j].ID })
	byID := make(map[int]int, len(ps))
	for i, p := range ps {
		byID[p.ID] = i
	}
	return &Snapshot{punctures: ps, byID: byID}
}

// Snapshot is an immutable puncture set. All detection within one session
// runs against a single snapshot, which is what makes words comparable
// across the session's lifetime.
type Snapshot struct {
	punctures []Puncture // ascending ID
	byID      map[int]int
}

// Len returns the number of punctures in the snapshot.
func (s *Snapshot) Len() int { return len(s.punctures) }

// Punctures returns the punctures in ascending ID order.
func (s *Snapshot) Punctures() []Puncture {
	out := make([]Puncture, len(s.punctures))
	copy(out, s.punctures)
	return out
}

// ByID returns the puncture with the given ID.
func (s *Snapshot) ByID(id int) (Puncture, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Puncture{}, false
	}
	return s.punctures[i], true
}

// Label returns the display label for a puncture ID, or '?' when the ID
// is not in the snapshot.
func (s *Snapshot) Label(id int) rune {
	if p, ok := s.ByID(id); ok {
		return p.Label
	}
	return '?'
}

// FormatLetter renders one letter under the display convention:
// counter-clockwise crossings read as the uppercase label, clockwise as
// lowercase.
func (s *Snapshot) FormatLetter(l Letter) string {
	label := s.Label(l.PunctureID)
	if l.Sign == CCW {
		return string(unicode.ToUpper(label))
	}
	return string(unicode.ToLower(label))
}

// FormatWord renders a word letter by letter. The identity renders as the
// empty string.
func (s *Snapshot) FormatWord(w Word) string {
	var b strings.Builder
	for _, l := range w {
		b.WriteString(s.FormatLetter(l))
	}
	return b.String()
}
