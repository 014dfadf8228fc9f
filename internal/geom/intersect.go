package geom

import "gonum.org/v1/gonum/spatial/r2"

// SegmentRayIntersection solves
//
//	seg.A + t*(seg.B-seg.A) = ray.Origin + s*ray.Dir
//
// for the segment parameter t and the ray parameter s by Cramer's rule on
// the 2x2 system. denom is the determinant cross(segDir, rayDir); when it
// is zero the segment and ray are parallel and t, s are returned as zero.
// No range checks are applied here: callers decide which (t, s) pairs count
// as crossings and how close to parallel is too close.
func SegmentRayIntersection(seg Segment, ray Ray) (t, s, denom float64) {
	d := seg.Dir()
	denom = r2.Cross(d, ray.Dir)
	if denom == 0 {
		return 0, 0, 0
	}
	w := r2.Sub(ray.Origin, seg.A)
	t = r2.Cross(w, ray.Dir) / denom
	s = r2.Cross(w, d) / denom
	return t, s, denom
}
