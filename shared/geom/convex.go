package geom

import "github.com/yohamta/donburi/features/math"

// ConvexPolygon is a counter-clockwise convex outline.
type ConvexPolygon []math.Vec2

// Clone returns a copy that does not share storage with p.
func (p ConvexPolygon) Clone() ConvexPolygon {
	out := make(ConvexPolygon, len(p))
	copy(out, p)
	return out
}

// Area is the shoelace area of the polygon.
func (p ConvexPolygon) Area() float64 {
	return SignedArea(p)
}

// ComposeConvex greedily merges triangles that share an edge while the
// merged outline stays convex. The first mergeable pair in enumeration order
// always wins and the scan restarts after each merge, so the output is stable
// for a given input.
func ComposeConvex(points []math.Vec2, tris []Triangle) []ConvexPolygon {
	polys := make([][]int, len(tris))
	for i, t := range tris {
		polys[i] = []int{t.A, t.B, t.C}
	}

	for merged := true; merged; {
		merged = false
	scan:
		for i := 0; i < len(polys); i++ {
			for j := i + 1; j < len(polys); j++ {
				m, ok := mergeConvex(points, polys[i], polys[j])
				if !ok {
					continue
				}
				polys[i] = m
				polys = append(polys[:j], polys[j+1:]...)
				merged = true
				break scan
			}
		}
	}

	out := make([]ConvexPolygon, len(polys))
	for i, poly := range polys {
		cp := make(ConvexPolygon, len(poly))
		for k, v := range poly {
			cp[k] = points[v]
		}
		out[i] = cp
	}
	return out
}

// Decompose triangulates points and merges the result into convex pieces.
// Points must wind counter-clockwise and must not cross themselves.
func Decompose(points []math.Vec2) ([]ConvexPolygon, error) {
	if IsConvex(points) && SignedArea(points) > Epsilon && IsSimple(points) {
		if idx := cleanVertices(points); len(idx) == len(points) {
			return []ConvexPolygon{ConvexPolygon(points).Clone()}, nil
		}
	}
	tris, err := Triangulate(points)
	if err != nil {
		return nil, err
	}
	return ComposeConvex(points, tris), nil
}

// mergeConvex joins p and q across a shared edge when the result is convex.
func mergeConvex(points []math.Vec2, p, q []int) ([]int, bool) {
	np, nq := len(p), len(q)
	for k := 0; k < np; k++ {
		a, b := p[k], p[(k+1)%np]
		for m := 0; m < nq; m++ {
			// q traverses the shared edge in the opposite direction.
			if q[m] != b || q[(m+1)%nq] != a {
				continue
			}
			out := make([]int, 0, np+nq-2)
			// p from b around to a.
			for s := 0; s < np; s++ {
				out = append(out, p[(k+1+s)%np])
			}
			// q strictly between a and b.
			for s := 2; s < nq; s++ {
				out = append(out, q[(m+s)%nq])
			}
			if !isConvexIdx(points, out) {
				return nil, false
			}
			return out, true
		}
	}
	return nil, false
}

func isConvexIdx(points []math.Vec2, idx []int) bool {
	n := len(idx)
	for i := 0; i < n; i++ {
		if Cross(points[idx[i]], points[idx[(i+1)%n]], points[idx[(i+2)%n]]) < -Epsilon {
			return false
		}
	}
	return true
}
