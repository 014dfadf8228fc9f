package homotopy

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/winding.report/internal/geom"
)

// BuildRoute returns a polyline from start to end whose every segment
// stays at least params.RouteClearance away from every puncture. A
// blocked segment is split at a detour vertex placed beside the nearest
// offending puncture, RouteClearance plus RouteNudge away from it, and
// both halves are routed recursively up to params.MaxRouteDepth; when
// the budget runs out the route fails with ErrRouteBlocked rather than
// returning a polyline that grazes a puncture. The result is
// straightened before returning: interior vertices whose removal sweeps
// no puncture and keeps the clearance are dropped.
func BuildRoute(start, end r2.Vec, snap *Snapshot, params Params) ([]r2.Vec, error) {
	verts := []r2.Vec{start}
	if err := routeSegment(start, end, snap, params, params.MaxRouteDepth, &verts); err != nil {
		return nil, err
	}
	return straightenRoute(verts, snap, params), nil
}

// routeSegment appends to *out the vertices after a, up to and including
// b, of a clearance-respecting route from a to b.
func routeSegment(a, b r2.Vec, snap *Snapshot, params Params, depth int, out *[]r2.Vec) error {
	blocking, ok := nearestBlocking(a, b, snap, params)
	if !ok {
		*out = append(*out, b)
		return nil
	}
	if depth <= 0 {
		return fmt.Errorf("%w: puncture %d", ErrRouteBlocked, blocking.ID)
	}
	seg := geom.Segment{A: a, B: b}
	away := geom.Unit(r2.Sub(seg.ClosestPoint(blocking.Position), blocking.Position))
	if away == (r2.Vec{}) {
		// The segment runs straight through the puncture. Take the
		// perpendicular side that leans away from its ray.
		away = geom.PerpCCW(geom.Unit(seg.Dir()))
		if r2.Dot(away, blocking.RayDir) > 0 {
			away = r2.Scale(-1, away)
		}
	}
	offset := params.RouteClearance + params.RouteNudge
	detour := r2.Add(blocking.Position, r2.Scale(offset, away))
	// A detour vertex sitting on a reference ray would make the route
	// untraversable, so bend to the other side instead.
	if onAnyRay(detour, snap, params.CrossingEpsilon) {
		detour = r2.Add(blocking.Position, r2.Scale(-offset, away))
	}
	if err := routeSegment(a, detour, snap, params, depth-1, out); err != nil {
		return err
	}
	return routeSegment(detour, b, snap, params, depth-1, out)
}

func onAnyRay(p r2.Vec, snap *Snapshot, eps float64) bool {
	for _, pn := range snap.punctures {
		if pn.Ray().DistToPoint(p) < eps {
			return true
		}
	}
	return false
}

// nearestBlocking returns the puncture closest to the segment among those
// within RouteClearance of it.
func nearestBlocking(a, b r2.Vec, snap *Snapshot, params Params) (Puncture, bool) {
	seg := geom.Segment{A: a, B: b}
	var best Puncture
	bestDist := params.RouteClearance
	found := false
	for _, pn := range snap.punctures {
		if d := seg.DistToPoint(pn.Position); d < bestDist {
			best, bestDist, found = pn, d, true
		}
	}
	return best, found
}

// straightenRoute drops interior vertices whose removal triangle holds no
// puncture and whose shortcut segment keeps the clearance. Removing a
// vertex can make its predecessor removable, so the scan backs up one
// step after each removal.
func straightenRoute(verts []r2.Vec, snap *Snapshot, params Params) []r2.Vec {
	i := 1
	for i+1 < len(verts) {
		if routeVertexRemovable(verts[i-1], verts[i], verts[i+1], snap, params) {
			verts = append(verts[:i], verts[i+1:]...)
			if i > 1 {
				i--
			}
			continue
		}
		i++
	}
	return verts
}

func routeVertexRemovable(a, b, c r2.Vec, snap *Snapshot, params Params) bool {
	shortcut := geom.Segment{A: a, B: c}
	for _, pn := range snap.punctures {
		if geom.TriangleContains(a, b, c, pn.Position, params.CrossingEpsilon) {
			return false
		}
		if shortcut.DistToPoint(pn.Position) < params.RouteClearance {
			return false
		}
	}
	return true
}

// PathWord replays a polyline through the crossing detector and returns
// its reduced word. Consecutive duplicate vertices are skipped.
func PathWord(verts []r2.Vec, snap *Snapshot, params Params) (Word, error) {
	var r Reducer
	for i := 1; i < len(verts); i++ {
		if verts[i] == verts[i-1] {
			continue
		}
		events, err := DetectCrossings(verts[i-1], verts[i], snap, params)
		if err != nil {
			return nil, err
		}
		for _, c := range events {
			r.Append(c.Letter())
		}
	}
	return r.Word(), nil
}

// ReversePath returns the polyline traversed backwards.
func ReversePath(verts []r2.Vec) []r2.Vec {
	out := make([]r2.Vec, len(verts))
	for i, v := range verts {
		out[len(verts)-1-i] = v
	}
	return out
}

// ConcatPaths joins two polylines end to start. The second must begin
// exactly where the first ends; the shared vertex appears once in the
// result.
func ConcatPaths(a, b []r2.Vec) ([]r2.Vec, error) {
	if len(a) == 0 {
		return append([]r2.Vec(nil), b...), nil
	}
	if len(b) == 0 {
		return append([]r2.Vec(nil), a...), nil
	}
	if a[len(a)-1] != b[0] {
		return nil, ErrDiscontinuousPath
	}
	out := make([]r2.Vec, 0, len(a)+len(b)-1)
	out = append(out, a...)
	out = append(out, b[1:]...)
	return out, nil
}

// Homotopic reports whether two polylines with the same endpoints can be
// deformed into each other without sweeping a puncture. Reduced words are
// a normal form for paths relative to the cut system, so the test is word
// equality. Paths with different endpoints are never homotopic.
func Homotopic(a, b []r2.Vec, snap *Snapshot, params Params) (bool, error) {
	if len(a) == 0 || len(b) == 0 {
		return false, nil
	}
	if a[0] != b[0] || a[len(a)-1] != b[len(b)-1] {
		return false, nil
	}
	wa, err := PathWord(a, snap, params)
	if err != nil {
		return false, err
	}
	wb, err := PathWord(b, snap, params)
	if err != nil {
		return false, err
	}
	return wa.Equal(wb), nil
}
