package homotopy

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/winding.report/internal/geom"
)

// Path is the stored polyline witness of a traveled path. Vertices[0] is
// the basepoint. The list stays short because runs of samples that do not
// change the crossing record collapse into single segments.
type Path struct {
	Vertices []r2.Vec
}

// Basepoint returns the first vertex. Paths always hold at least one.
func (p Path) Basepoint() r2.Vec { return p.Vertices[0] }

// End returns the last vertex.
func (p Path) End() r2.Vec { return p.Vertices[len(p.Vertices)-1] }

// Clone returns a deep copy.
func (p Path) Clone() Path {
	out := make([]r2.Vec, len(p.Vertices))
	copy(out, p.Vertices)
	return Path{Vertices: out}
}

// simplifier maintains the polyline, deciding per sample whether the tip
// vertex can slide forward or a new vertex is needed. Only the tip is
// ever rewritten, so everything before it is stable history.
type simplifier struct {
	snap   *Snapshot
	params Params
	verts  []r2.Vec

	// lastEvents accumulates the crossing events of the last stored
	// segment across merges, in traversal order.
	lastEvents []Crossing
}

func newSimplifier(basepoint r2.Vec, snap *Snapshot, params Params) *simplifier {
	return &simplifier{snap: snap, params: params, verts: []r2.Vec{basepoint}}
}

// extend appends p or merges it into the tip vertex. events are the
// crossings of the raw step from the previous raw sample to p, already
// validated by the caller.
func (s *simplifier) extend(p r2.Vec, events []Crossing) {
	if n := len(s.verts); n >= 2 {
		if merged, ok := s.tryMerge(p, events); ok {
			s.verts[n-1] = p
			s.lastEvents = merged
			return
		}
	}
	s.verts = append(s.verts, p)
	s.lastEvents = cloneCrossings(events)
}

// tryMerge decides whether the tip vertex can be replaced by p without
// changing the crossing record. The step must continue the last stored
// segment within CollinearityTolerance or be shorter than MergeDistance,
// and replaying the would-be merged segment must reproduce exactly the
// stored segment's letters followed by this step's letters. A degenerate
// replay rejects the merge; the unmerged polyline is always a valid
// witness.
func (s *simplifier) tryMerge(p r2.Vec, events []Crossing) ([]Crossing, bool) {
	n := len(s.verts)
	a, b := s.verts[n-2], s.verts[n-1]
	u := r2.Sub(b, a)
	v := r2.Sub(p, b)
	if !geom.Collinear(u, v, s.params.CollinearityTolerance) && r2.Norm(v) > s.params.MergeDistance {
		return nil, false
	}
	merged, err := DetectCrossings(a, p, s.snap, s.params)
	if err != nil {
		return nil, false
	}
	if !sameLetterSequence(merged, s.lastEvents, events) {
		return nil, false
	}
	return merged, true
}

// sameLetterSequence reports whether merged carries exactly the letters
// of first followed by second, in order. T values are parameters of
// different segments and are not compared.
func sameLetterSequence(merged, first, second []Crossing) bool {
	if len(merged) != len(first)+len(second) {
		return false
	}
	for i, c := range merged {
		want := first
		j := i
		if i >= len(first) {
			want = second
			j = i - len(first)
		}
		if c.PunctureID != want[j].PunctureID || c.Sign != want[j].Sign {
			return false
		}
	}
	return true
}

func cloneCrossings(events []Crossing) []Crossing {
	if len(events) == 0 {
		return nil
	}
	out := make([]Crossing, len(events))
	copy(out, events)
	return out
}

// path returns a copy of the stored polyline.
func (s *simplifier) path() Path {
	out := make([]r2.Vec, len(s.verts))
	copy(out, s.verts)
	return Path{Vertices: out}
}

func (s *simplifier) reset(basepoint r2.Vec) {
	s.verts = append(s.verts[:0], basepoint)
	s.lastEvents = nil
}
