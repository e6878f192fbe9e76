package geom

import (
	"errors"
	"fmt"
	stdmath "math"

	"github.com/yohamta/donburi/features/math"
)

var (
	ErrTriangulation     = errors.New("triangulation failed")
	ErrDegeneratePolygon = fmt.Errorf("%w: degenerate polygon", ErrTriangulation)
	ErrNoEar             = fmt.Errorf("%w: no ear found, polygon is not simple", ErrTriangulation)
	ErrSelfIntersecting  = fmt.Errorf("%w: polygon intersects itself", ErrTriangulation)
)

// Triangle indexes three vertices of the polygon it was cut from, in
// counter-clockwise order.
type Triangle struct {
	A, B, C int
}

// Points resolves the triangle against the polygon it indexes.
func (t Triangle) Points(points []math.Vec2) [3]math.Vec2 {
	return [3]math.Vec2{points[t.A], points[t.B], points[t.C]}
}

// Area is the unsigned area of the triangle.
func (t Triangle) Area(points []math.Vec2) float64 {
	a := Cross(points[t.A], points[t.B], points[t.C]) / 2
	if a < 0 {
		return -a
	}
	return a
}

// Triangulate cuts a simple counter-clockwise polygon into triangles by ear
// clipping. Duplicate and collinear vertices are skipped, so a polygon with m
// usable vertices yields m-2 triangles, none of them zero-area.
func Triangulate(points []math.Vec2) ([]Triangle, error) {
	idx := cleanVertices(points)
	if len(idx) < 3 {
		return nil, fmt.Errorf("%w: %d usable vertices", ErrDegeneratePolygon, len(idx))
	}
	area := signedAreaOf(points, idx)
	if area <= Epsilon {
		if area < -Epsilon {
			return nil, fmt.Errorf("%w: clockwise input", ErrTriangulation)
		}
		return nil, fmt.Errorf("%w: zero area", ErrDegeneratePolygon)
	}
	if !IsSimple(gather(points, idx)) {
		return nil, ErrSelfIntersecting
	}
	m := len(idx)

	tris := make([]Triangle, 0, len(idx)-2)
	for len(idx) > 3 {
		n := len(idx)
		// At most two passes over the remaining vertices per removal: one for
		// a proper ear, one for a collinear vertex left behind by clipping.
		if i := findEar(points, idx); i >= 0 {
			tris = append(tris, Triangle{A: idx[(i+n-1)%n], B: idx[i], C: idx[(i+1)%n]})
			idx = append(idx[:i], idx[i+1:]...)
			continue
		}
		if i := findCollinear(points, idx); i >= 0 {
			idx = append(idx[:i], idx[i+1:]...)
			continue
		}
		return nil, fmt.Errorf("%w (%d vertices left)", ErrNoEar, n)
	}

	if Cross(points[idx[0]], points[idx[1]], points[idx[2]]) > Epsilon {
		tris = append(tris, Triangle{A: idx[0], B: idx[1], C: idx[2]})
	}
	if len(tris) == 0 {
		return nil, fmt.Errorf("%w: zero area", ErrDegeneratePolygon)
	}

	// The triangles must tile the outline exactly.
	sum := 0.0
	for _, t := range tris {
		sum += t.Area(points)
	}
	if len(tris) > m-2 || stdmath.Abs(sum-area) > Epsilon*stdmath.Max(1, area) {
		return nil, fmt.Errorf("%w: triangles cover %v of %v", ErrNoEar, sum, area)
	}
	return tris, nil
}

func findEar(points []math.Vec2, idx []int) int {
	n := len(idx)
	for i := 0; i < n; i++ {
		turn := Cross(points[idx[(i+n-1)%n]], points[idx[i]], points[idx[(i+1)%n]])
		if turn > Epsilon && isEar(points, idx, i) {
			return i
		}
	}
	return -1
}

func findCollinear(points []math.Vec2, idx []int) int {
	n := len(idx)
	for i := 0; i < n; i++ {
		turn := Cross(points[idx[(i+n-1)%n]], points[idx[i]], points[idx[(i+1)%n]])
		if turn <= Epsilon && turn >= -Epsilon {
			return i
		}
	}
	return -1
}

func isEar(points []math.Vec2, idx []int, i int) bool {
	n := len(idx)
	a, b, c := points[idx[(i+n-1)%n]], points[idx[i]], points[idx[(i+1)%n]]
	for j := 0; j < n; j++ {
		if j == i || j == (i+n-1)%n || j == (i+1)%n {
			continue
		}
		p := points[idx[j]]
		if samePoint(p, a) || samePoint(p, b) || samePoint(p, c) {
			continue
		}
		if InTriangle(p, a, b, c) {
			return false
		}
	}
	return true
}

// cleanVertices drops consecutive duplicates (including a closing point equal
// to the first) and collinear vertices, returning the indices that remain.
func cleanVertices(points []math.Vec2) []int {
	idx := make([]int, 0, len(points))
	for i, p := range points {
		if len(idx) > 0 && samePoint(points[idx[len(idx)-1]], p) {
			continue
		}
		idx = append(idx, i)
	}
	for len(idx) > 1 && samePoint(points[idx[0]], points[idx[len(idx)-1]]) {
		idx = idx[:len(idx)-1]
	}

	for len(idx) >= 3 {
		i := findCollinear(points, idx)
		if i < 0 {
			break
		}
		idx = append(idx[:i], idx[i+1:]...)
	}
	return idx
}

func signedAreaOf(points []math.Vec2, idx []int) float64 {
	sum := 0.0
	for i := range idx {
		p, q := points[idx[i]], points[idx[(i+1)%len(idx)]]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

func gather(points []math.Vec2, idx []int) []math.Vec2 {
	out := make([]math.Vec2, len(idx))
	for i, v := range idx {
		out[i] = points[v]
	}
	return out
}
