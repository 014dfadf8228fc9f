package homotopy

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/winding.report/internal/geom"
)

// Crossing is one ray-crossing event generated by a movement segment. T
// is the segment parameter in (0, 1] at which the crossing occurs.
type Crossing struct {
	PunctureID int
	Sign       Sign
	T          float64
}

// Letter returns the crossing as a word letter.
func (c Crossing) Letter() Letter {
	return Letter{PunctureID: c.PunctureID, Sign: c.Sign}
}

// DetectCrossings returns the crossing events the movement segment
// prev->curr generates against every puncture in the snapshot, ordered by
// ascending T with ties within params.TieEpsilon broken by ascending
// puncture ID. A zero-length segment generates nothing.
//
// The sign of a crossing is the sign of cross(rayDir, segDir): a segment
// sweeping counter-clockwise around the puncture crosses its ray with
// positive sign, which the display convention renders uppercase.
//
// Ambiguity is reported, never guessed away. A segment passing within
// params.CrossingEpsilon of a puncture, or either sample lying within it
// of a reference ray, returns a DegenerateCrossingError and no events.
// Those two distance checks cover every unstable configuration: a
// crossing near a segment endpoint or near a ray origin forces one of
// them below the epsilon.
func DetectCrossings(prev, curr r2.Vec, snap *Snapshot, params Params) ([]Crossing, error) {
	seg := geom.Segment{A: prev, B: curr}
	if seg.Length() == 0 {
		return nil, nil
	}
	var events []Crossing
	for _, pn := range snap.punctures {
		ray := pn.Ray()
		if seg.DistToPoint(pn.Position) < params.CrossingEpsilon {
			return nil, DegenerateCrossingError{PunctureID: pn.ID, Reason: "segment passes through the puncture"}
		}
		if ray.DistToPoint(prev) < params.CrossingEpsilon {
			return nil, DegenerateCrossingError{PunctureID: pn.ID, Reason: "segment starts on the reference ray"}
		}
		if ray.DistToPoint(curr) < params.CrossingEpsilon {
			return nil, DegenerateCrossingError{PunctureID: pn.ID, Reason: "segment ends on the reference ray"}
		}
		t, s, denom := geom.SegmentRayIntersection(seg, ray)
		if denom == 0 {
			// Parallel, and by the checks above clear of the ray.
			continue
		}
		if t <= 0 || t > 1 || s < 0 {
			continue
		}
		sign := CW
		if r2.Cross(ray.Dir, seg.Dir()) > 0 {
			sign = CCW
		}
		events = append(events, Crossing{PunctureID: pn.ID, Sign: sign, T: t})
	}
	sort.Slice(events, func(i, j int) bool {
		if math.Abs(events[i].T-events[j].T) <= params.TieEpsilon {
			return events[i].PunctureID < events[j].PunctureID
		}
		return events[i].T < events[j].T
	})
	return events, nil
}
