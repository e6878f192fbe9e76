package shape

import (
	"fmt"
	stdmath "math"

	"github.com/automoto/tmxshape/shared/geom"
	"github.com/automoto/tmxshape/shared/grid"
	"github.com/automoto/tmxshape/shared/units"
	"github.com/yohamta/donburi/features/math"
)

// RenderPoints converts the built points into target units. It runs once:
//  1. isometric reprojection (rectangles and ellipses become polygons),
//  2. rotation about the shape origin,
//  3. translation by the shape position,
//  4. flip into the container's bottom-left origin and scale to units.
func (s *Shape) RenderPoints(conv units.Converter, containerHeight float64, orientation grid.Orientation, gridSize math.Vec2) error {
	if !s.built {
		return ErrNotBuilt
	}
	if s.rendered {
		return ErrAlreadyRendered
	}

	if orientation == grid.Isometric {
		s.Position = isometric(s.Position, containerHeight, gridSize)
		s.Position.X += gridSize.X / 2
		for i, p := range s.points {
			s.points[i] = isometric(p, containerHeight, gridSize)
		}
		if s.kind == Ellipse || s.kind == Rectangle {
			s.kind = Polygon
		}
	}

	if s.Rotation != 0 {
		rad := s.Rotation * stdmath.Pi / 180
		sin, cos := stdmath.Sincos(rad)
		for i, p := range s.points {
			s.points[i] = math.Vec2{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos}
		}
	}

	for i, p := range s.points {
		p = math.Vec2{X: p.X + s.Position.X, Y: p.Y + s.Position.Y}
		s.points[i] = conv.PointNoFlip(units.Local(p, containerHeight))
	}
	s.Position = conv.PointNoFlip(units.Local(s.Position, containerHeight))
	s.rendered = true
	return nil
}

func isometric(p math.Vec2, containerHeight float64, gridSize math.Vec2) math.Vec2 {
	cx := p.X / gridSize.Y
	cy := p.Y / gridSize.Y
	return math.Vec2{
		X: (cx - cy) * gridSize.X / 2,
		Y: (cx+cy)*gridSize.Y/2 + (containerHeight-gridSize.Y)/2,
	}
}

// EnsureCCW reverses a rendered closed shape that winds clockwise. It reports
// whether the points were reversed.
func (s *Shape) EnsureCCW() (bool, error) {
	if !s.rendered {
		return false, ErrNotRendered
	}
	if !s.closed {
		return false, nil
	}
	return geom.EnsureCCW(s.points), nil
}

// Decompose splits a rendered closed shape into convex pieces. Open shapes
// and points have none.
func (s *Shape) Decompose() ([]geom.ConvexPolygon, error) {
	if !s.rendered {
		return nil, ErrNotRendered
	}
	if !s.closed {
		return nil, nil
	}
	pieces, err := geom.Decompose(s.points)
	if err != nil {
		return nil, fmt.Errorf("%s shape %d: %w", s.kind, s.ID, err)
	}
	return pieces, nil
}
