// Package geom provides the small set of plane primitives used by the
// winding engine: directed segments, reference rays, and the handful of
// predicates (collinearity, triangle containment) the tracking and routing
// code is built on. All coordinates are float64 world units on gonum's
// r2.Vec.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Segment is a directed straight segment from A to B.
type Segment struct {
	A r2.Vec
	B r2.Vec
}

// Dir returns the direction vector B-A. It is not normalised.
func (s Segment) Dir() r2.Vec {
	return r2.Sub(s.B, s.A)
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return r2.Norm(s.Dir())
}

// PointAt returns the point A + t*(B-A). t=0 is A, t=1 is B.
func (s Segment) PointAt(t float64) r2.Vec {
	return r2.Add(s.A, r2.Scale(t, s.Dir()))
}

// ClosestPoint returns the point on the segment nearest to p, clamping
// to the endpoints.
func (s Segment) ClosestPoint(p r2.Vec) r2.Vec {
	d := s.Dir()
	dd := r2.Norm2(d)
	if dd == 0 {
		return s.A
	}
	t := r2.Dot(r2.Sub(p, s.A), d) / dd
	if t <= 0 {
		return s.A
	}
	if t >= 1 {
		return s.B
	}
	return s.PointAt(t)
}

// DistToPoint returns the distance from p to the closest point on the
// segment.
func (s Segment) DistToPoint(p r2.Vec) float64 {
	return r2.Norm(r2.Sub(p, s.ClosestPoint(p)))
}

// Ray is a half-line from Origin extending in direction Dir to infinity.
// Dir is expected to be unit length; distances reported by DistToPoint are
// only meaningful when it is.
type Ray struct {
	Origin r2.Vec
	Dir    r2.Vec
}

// PointAt returns Origin + s*Dir.
func (r Ray) PointAt(s float64) r2.Vec {
	return r2.Add(r.Origin, r2.Scale(s, r.Dir))
}

// DistToPoint returns the distance from p to the closest point on the
// half-line. Points behind the origin measure to the origin itself.
func (r Ray) DistToPoint(p r2.Vec) float64 {
	w := r2.Sub(p, r.Origin)
	s := r2.Dot(w, r.Dir)
	if s <= 0 {
		return r2.Norm(w)
	}
	return r2.Norm(r2.Sub(p, r.PointAt(s)))
}

// PerpCCW returns v rotated a quarter turn counter-clockwise.
func PerpCCW(v r2.Vec) r2.Vec {
	return r2.Vec{X: -v.Y, Y: v.X}
}

// Unit returns v scaled to unit length. The zero vector is returned
// unchanged rather than producing NaNs.
func Unit(v r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n == 0 {
		return v
	}
	return r2.Scale(1/n, v)
}

// Collinear reports whether v continues in the direction of u within the
// angular tolerance tol: the normalised cross product |u x v| / (|u||v|)
// must not exceed tol and the vectors must not oppose each other. A zero
// vector is never collinear with anything.
func Collinear(u, v r2.Vec, tol float64) bool {
	nu := r2.Norm(u)
	nv := r2.Norm(v)
	if nu == 0 || nv == 0 {
		return false
	}
	if r2.Dot(u, v) <= 0 {
		return false
	}
	return math.Abs(r2.Cross(u, v)) <= tol*nu*nv
}

// TriangleContains reports whether p lies inside the triangle abc, with an
// eps skirt so that points on or marginally outside an edge still count as
// contained. Degenerate (near-zero area) triangles contain nothing.
func TriangleContains(a, b, c, p r2.Vec, eps float64) bool {
	denom := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	if math.Abs(denom) <= eps {
		return false
	}
	alpha := ((b.Y-c.Y)*(p.X-c.X) + (c.X-b.X)*(p.Y-c.Y)) / denom
	beta := ((c.Y-a.Y)*(p.X-c.X) + (a.X-c.X)*(p.Y-c.Y)) / denom
	gamma := 1 - alpha - beta
	lo, hi := -eps, 1+eps
	return alpha >= lo && alpha <= hi &&
		beta >= lo && beta <= hi &&
		gamma >= lo && gamma <= hi
}
