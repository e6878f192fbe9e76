// Package shape builds collision shapes from the primitives an object or a
// tile's collision group can declare, and burns rotation, translation and the
// source to target space conversion into their points.
package shape

import (
	"errors"
	"fmt"
	stdmath "math"

	"github.com/automoto/tmxshape/shared/units"
	"github.com/yohamta/donburi/features/math"
)

var (
	ErrMalformedShape  = errors.New("malformed shape")
	ErrAlreadyBuilt    = errors.New("shape points already built")
	ErrNotBuilt        = errors.New("shape points not built")
	ErrAlreadyRendered = errors.New("shape points already rendered")
	ErrNotRendered     = errors.New("shape points not rendered")
)

type Kind int

const (
	Rectangle Kind = iota
	Ellipse
	Polygon
	Polyline
	Point
)

func (k Kind) String() string {
	switch k {
	case Rectangle:
		return "rectangle"
	case Ellipse:
		return "ellipse"
	case Polygon:
		return "polygon"
	case Polyline:
		return "polyline"
	case Point:
		return "point"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Closed reports whether shapes of this kind enclose an area.
func (k Kind) Closed() bool {
	return k == Rectangle || k == Ellipse || k == Polygon
}

// Shape is one collision shape. It is populated by exactly one Make call and
// finalized by exactly one RenderPoints call; after that it is read-only and
// may be shared by any number of tile placements.
type Shape struct {
	// Source attributes. Position is rewritten into target units by RenderPoints.
	Position math.Vec2
	Size     math.Vec2
	Rotation float64 // degrees, clockwise in source space

	ID           uint32
	TypeName     string
	PhysicsLayer string
	IsTrigger    bool

	kind     Kind
	closed   bool
	points   []math.Vec2
	built    bool
	rendered bool
}

// New returns an empty shape at position with the given rotation.
func New(position math.Vec2, rotation float64) *Shape {
	return &Shape{Position: position, Rotation: rotation}
}

func (s *Shape) Kind() Kind      { return s.kind }
func (s *Shape) Closed() bool    { return s.closed }
func (s *Shape) Rendered() bool  { return s.rendered }
func (s *Shape) PointCount() int { return len(s.points) }

// Points returns a copy of the shape's points.
func (s *Shape) Points() []math.Vec2 {
	out := make([]math.Vec2, len(s.points))
	copy(out, s.points)
	return out
}

// TargetRotation is the rotation in the target's angle convention.
func (s *Shape) TargetRotation(conv units.Converter) float64 {
	return conv.Rotation(s.Rotation)
}

func (s *Shape) set(kind Kind, points []math.Vec2) error {
	if s.built {
		return fmt.Errorf("%w: cannot make %s over %s", ErrAlreadyBuilt, kind, s.kind)
	}
	s.kind = kind
	s.closed = kind.Closed()
	s.points = points
	s.built = true
	return nil
}

// MakeRectangle builds the four corners (0,0), (0,h), (w,h), (w,0).
func (s *Shape) MakeRectangle(size math.Vec2) error {
	if size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("%w: rectangle size %vx%v", ErrMalformedShape, size.X, size.Y)
	}
	s.Size = size
	return s.set(Rectangle, []math.Vec2{
		{X: 0, Y: 0},
		{X: 0, Y: size.Y},
		{X: size.X, Y: size.Y},
		{X: size.X, Y: 0},
	})
}

// MakeEllipse approximates the ellipse inscribed in size with edgeCount points.
func (s *Shape) MakeEllipse(size math.Vec2, edgeCount int) error {
	if size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("%w: ellipse size %vx%v", ErrMalformedShape, size.X, size.Y)
	}
	if edgeCount < 3 {
		return fmt.Errorf("%w: ellipse needs at least 3 edges, got %d", ErrMalformedShape, edgeCount)
	}
	s.Size = size
	rx, ry := size.X/2, size.Y/2
	points := make([]math.Vec2, edgeCount)
	for i := range points {
		theta := float64(i) * 2 * stdmath.Pi / float64(edgeCount)
		points[i] = math.Vec2{X: rx + rx*stdmath.Cos(theta), Y: ry + ry*stdmath.Sin(theta)}
	}
	return s.set(Ellipse, points)
}

// MakePolygon stores points as given. Winding is the caller's concern.
func (s *Shape) MakePolygon(points []math.Vec2) error {
	if len(points) < 3 {
		return fmt.Errorf("%w: polygon with %d points", ErrMalformedShape, len(points))
	}
	return s.set(Polygon, clonePoints(points))
}

func (s *Shape) MakePolyline(points []math.Vec2) error {
	if len(points) < 2 {
		return fmt.Errorf("%w: polyline with %d points", ErrMalformedShape, len(points))
	}
	return s.set(Polyline, clonePoints(points))
}

// MakePoint builds an anchor with no collision geometry.
func (s *Shape) MakePoint() error {
	return s.set(Point, nil)
}

func clonePoints(points []math.Vec2) []math.Vec2 {
	out := make([]math.Vec2, len(points))
	copy(out, points)
	return out
}
