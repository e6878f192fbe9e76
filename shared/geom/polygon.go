// Package geom holds the planar polygon routines used to turn collision
// shapes into convex pieces. Coordinates follow the target convention:
// X increases to the right and Y increases upward, so counter-clockwise
// winding has positive signed area.
package geom

import (
	stdmath "math"

	"github.com/yohamta/donburi/features/math"
)

// Epsilon merges points and absorbs rounding error in orientation tests.
var Epsilon = 1e-9

// Cross returns the z component of (b-a) x (c-a). Positive when a, b, c turn left.
func Cross(a, b, c math.Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// SignedArea is the shoelace area; positive for counter-clockwise input.
func SignedArea(points []math.Vec2) float64 {
	n := len(points)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		p, q := points[i], points[(i+1)%n]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// IsCCW reports whether points wind counter-clockwise.
func IsCCW(points []math.Vec2) bool {
	return SignedArea(points) > 0
}

// Reverse reverses points in place.
func Reverse(points []math.Vec2) {
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
}

// EnsureCCW reverses points in place when their signed area is negative and
// reports whether it did.
func EnsureCCW(points []math.Vec2) bool {
	if SignedArea(points) < 0 {
		Reverse(points)
		return true
	}
	return false
}

// IsConvex reports whether a counter-clockwise polygon has no interior angle
// above 180 degrees. Collinear runs are allowed.
func IsConvex(points []math.Vec2) bool {
	n := len(points)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		if Cross(points[i], points[(i+1)%n], points[(i+2)%n]) < -Epsilon {
			return false
		}
	}
	return true
}

// IsSimple reports whether no two non-adjacent edges of the closed outline
// meet, touching included. Consecutive duplicate points must already be gone.
func IsSimple(points []math.Vec2) bool {
	n := len(points)
	for i := 0; i < n; i++ {
		a, b := points[i], points[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if segmentsMeet(a, b, points[j], points[(j+1)%n]) {
				return false
			}
		}
	}
	return true
}

func segmentsMeet(a, b, c, d math.Vec2) bool {
	o1, o2 := sign(Cross(a, b, c)), sign(Cross(a, b, d))
	o3, o4 := sign(Cross(c, d, a)), sign(Cross(c, d, b))
	if o1*o2 < 0 && o3*o4 < 0 {
		return true
	}
	return (o1 == 0 && onSegment(c, a, b)) ||
		(o2 == 0 && onSegment(d, a, b)) ||
		(o3 == 0 && onSegment(a, c, d)) ||
		(o4 == 0 && onSegment(b, c, d))
}

func sign(v float64) int {
	switch {
	case v > Epsilon:
		return 1
	case v < -Epsilon:
		return -1
	}
	return 0
}

// onSegment assumes p is collinear with a and b.
func onSegment(p, a, b math.Vec2) bool {
	return p.X >= stdmath.Min(a.X, b.X)-Epsilon && p.X <= stdmath.Max(a.X, b.X)+Epsilon &&
		p.Y >= stdmath.Min(a.Y, b.Y)-Epsilon && p.Y <= stdmath.Max(a.Y, b.Y)+Epsilon
}

// InTriangle reports whether p lies inside or on the boundary of the
// counter-clockwise triangle a, b, c.
func InTriangle(p, a, b, c math.Vec2) bool {
	return Cross(a, b, p) >= -Epsilon &&
		Cross(b, c, p) >= -Epsilon &&
		Cross(c, a, p) >= -Epsilon
}

func samePoint(a, b math.Vec2) bool {
	return stdmath.Abs(a.X-b.X) <= Epsilon && stdmath.Abs(a.Y-b.Y) <= Epsilon
}

// Translate returns a copy of points shifted by offset.
func Translate(points []math.Vec2, offset math.Vec2) []math.Vec2 {
	out := make([]math.Vec2, len(points))
	for i, p := range points {
		out[i] = math.Vec2{X: p.X + offset.X, Y: p.Y + offset.Y}
	}
	return out
}

// Bounds returns the axis-aligned bounding box of points.
func Bounds(points []math.Vec2) (min, max math.Vec2) {
	if len(points) == 0 {
		return
	}
	min, max = points[0], points[0]
	for _, p := range points[1:] {
		min.X = stdmath.Min(min.X, p.X)
		min.Y = stdmath.Min(min.Y, p.Y)
		max.X = stdmath.Max(max.X, p.X)
		max.Y = stdmath.Max(max.Y, p.Y)
	}
	return
}
