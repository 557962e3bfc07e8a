package geom

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// ConvexHull returns the convex hull of points in counter-clockwise
// order, starting at the lowest-leftmost point, without repeating the
// first point. Collinear points on the hull are dropped.
func ConvexHull(points []r2.Vec) []r2.Vec {
	ps := make([]r2.Vec, len(points))
	copy(ps, points)
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].X != ps[j].X {
			return ps[i].X < ps[j].X
		}
		return ps[i].Y < ps[j].Y
	})
	ps = dedupSorted(ps)
	if len(ps) < 3 {
		return ps
	}

	hull := make([]r2.Vec, 0, 2*len(ps))
	// Lower chain.
	for _, p := range ps {
		for len(hull) >= 2 && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	// Upper chain.
	lower := len(hull) + 1
	for i := len(ps) - 2; i >= 0; i-- {
		p := ps[i]
		for len(hull) >= lower && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	hull = hull[:len(hull)-1]

	// Rotate so the hull starts at the lowest-leftmost point.
	start := 0
	for i, p := range hull {
		s := hull[start]
		if p.Y < s.Y || (p.Y == s.Y && p.X < s.X) {
			start = i
		}
	}
	return append(hull[start:len(hull):len(hull)], hull[:start]...)
}

func dedupSorted(ps []r2.Vec) []r2.Vec {
	if len(ps) == 0 {
		return ps
	}
	out := ps[:1]
	for _, p := range ps[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

// turn is the z component of (b-a) x (c-a); positive for a left turn.
func turn(a, b, c r2.Vec) float64 {
	return r2.Cross(r2.Sub(b, a), r2.Sub(c, a))
}

// MinimumRotatedRectangle returns the smallest-area rectangle enclosing
// points, whose sides are parallel to one of the convex hull's edges.
// Each hull edge (in hull order) spans a frame u = edge direction,
// v = u rotated a quarter turn; the first edge whose envelope has the
// least area wins. The corners are returned as
//
//	(minU,minV) (maxU,minV) (maxU,maxV) (minU,maxV)
//
// mapped back to world coordinates, so corner[1]-corner[0] runs along
// the winning edge. Degenerate inputs fall back to the axis-aligned
// envelope.
func MinimumRotatedRectangle(points []r2.Vec) [4]r2.Vec {
	hull := ConvexHull(points)
	if len(hull) < 3 {
		b := BoundsOf(points)
		return [4]r2.Vec{
			b.Min,
			{X: b.Max.X, Y: b.Min.Y},
			b.Max,
			{X: b.Min.X, Y: b.Max.Y},
		}
	}

	var best [4]r2.Vec
	bestArea := math.Inf(1)
	for i := range hull {
		edge := r2.Sub(hull[(i+1)%len(hull)], hull[i])
		if r2.Norm(edge) == 0 {
			continue
		}
		u := r2.Unit(edge)
		v := r2.Vec{X: -u.Y, Y: u.X}

		minU, maxU := math.Inf(1), math.Inf(-1)
		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, p := range hull {
			pu, pv := r2.Dot(p, u), r2.Dot(p, v)
			minU, maxU = math.Min(minU, pu), math.Max(maxU, pu)
			minV, maxV = math.Min(minV, pv), math.Max(maxV, pv)
		}
		area := (maxU - minU) * (maxV - minV)
		if area < bestArea {
			bestArea = area
			corner := func(cu, cv float64) r2.Vec {
				return r2.Add(r2.Scale(cu, u), r2.Scale(cv, v))
			}
			best = [4]r2.Vec{
				corner(minU, minV),
				corner(maxU, minV),
				corner(maxU, maxV),
				corner(minU, maxV),
			}
		}
	}
	return best
}
