package homotopy

import "gonum.org/v1/gonum/spatial/r2"

// PunctureWinding is the net signed crossing count of a closed loop
// around one puncture.
type PunctureWinding struct {
	PunctureID int
	Count      int
}

// PathTracker follows one moving subject. Each position sample extends
// the traveled path; the tracker maintains the freely reduced word of the
// crossings generated so far and a minimal polyline witness of the path.
// The first sample becomes the basepoint that LoopWord closes against.
//
// A PathTracker is not safe for concurrent use; Session serialises access
// per subject.
type PathTracker struct {
	snap       *Snapshot
	params     Params
	reducer    Reducer
	simp       *simplifier
	lastRaw    r2.Vec
	rawSamples int
}

// NewPathTracker starts tracking at basepoint against the given snapshot.
func NewPathTracker(basepoint r2.Vec, snap *Snapshot, params Params) *PathTracker {
	return &PathTracker{
		snap:       snap,
		params:     params,
		simp:       newSimplifier(basepoint, snap, params),
		lastRaw:    basepoint,
		rawSamples: 1,
	}
}

// Update advances the tracker to the next position sample. The update is
// atomic: a degenerate segment returns the error with the word, the path
// and the last position all untouched, so the caller can retry with a
// corrected sample. A sample equal to the previous one is a no-op.
func (pt *PathTracker) Update(p r2.Vec) error {
	if p == pt.lastRaw {
		return nil
	}
	events, err := DetectCrossings(pt.lastRaw, p, pt.snap, pt.params)
	if err != nil {
		return err
	}
	for _, c := range events {
		pt.reducer.Append(c.Letter())
	}
	pt.simp.extend(p, events)
	pt.lastRaw = p
	pt.rawSamples++
	return nil
}

// CurrentWord returns a copy of the reduced word of the traveled path.
func (pt *PathTracker) CurrentWord() Word { return pt.reducer.Word() }

// CurrentPath returns a copy of the simplified path.
func (pt *PathTracker) CurrentPath() Path { return pt.simp.path() }

// Basepoint returns the fixed starting point of the traveled path.
func (pt *PathTracker) Basepoint() r2.Vec { return pt.simp.verts[0] }

// LastPosition returns the most recent accepted sample.
func (pt *PathTracker) LastPosition() r2.Vec { return pt.lastRaw }

// RawSamples returns the number of accepted samples, counting the
// basepoint. Duplicates and rejected samples do not count.
func (pt *PathTracker) RawSamples() int { return pt.rawSamples }

// StoredVertices returns the length of the simplified polyline.
func (pt *PathTracker) StoredVertices() int { return len(pt.simp.verts) }

// Reset restarts the tracker at a fresh basepoint with the identity word
// and a single-vertex path, as on a respawn.
func (pt *PathTracker) Reset(basepoint r2.Vec) {
	pt.reducer.Reset()
	pt.simp.reset(basepoint)
	pt.lastRaw = basepoint
	pt.rawSamples = 1
}

// LoopWord returns the word of the loop obtained by closing the traveled
// path with a straight segment back to the basepoint. The tracker is not
// modified. A degenerate closing segment is reported as an error.
func (pt *PathTracker) LoopWord() (Word, error) {
	w := pt.reducer.Word()
	if pt.lastRaw == pt.Basepoint() {
		return w, nil
	}
	closing, err := DetectCrossings(pt.lastRaw, pt.Basepoint(), pt.snap, pt.params)
	if err != nil {
		return nil, err
	}
	var r Reducer
	r.AppendAll(w)
	for _, c := range closing {
		r.Append(c.Letter())
	}
	return r.Word(), nil
}

// WindingCounts returns, for every puncture in the snapshot, the net
// signed number of times the closed loop crosses its reference ray. Free
// reduction preserves per-puncture sign sums, so the counts are read off
// the loop word. Entries are ordered by puncture ID.
func (pt *PathTracker) WindingCounts() ([]PunctureWinding, error) {
	loop, err := pt.LoopWord()
	if err != nil {
		return nil, err
	}
	counts := make(map[int]int, pt.snap.Len())
	for _, l := range loop {
		counts[l.PunctureID] += int(l.Sign)
	}
	out := make([]PunctureWinding, 0, pt.snap.Len())
	for _, pn := range pt.snap.punctures {
		out = append(out, PunctureWinding{PunctureID: pn.ID, Count: counts[pn.ID]})
	}
	return out, nil
}
