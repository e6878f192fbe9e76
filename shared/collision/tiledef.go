// Package collision gathers the collision shapes of placed tiles into one
// composite collision set per chunk, partitioned so shapes on different
// physics layers or with different trigger flags never share a collider.
package collision

import (
	"github.com/automoto/tmxshape/shared/geom"
	"github.com/automoto/tmxshape/shared/shape"
	"github.com/yohamta/donburi/features/math"
)

// TileDef is the shared, read-only collision definition of one tile type.
// Every placement of the tile reads it; none may modify it.
type TileDef struct {
	Index  uint32
	Size   math.Vec2 // units
	Offset math.Vec2 // units, Y up
	Shapes []*shape.Shape

	pieces [][]geom.ConvexPolygon
}

// ShapeError ties a decomposition failure to the shape that caused it.
type ShapeError struct {
	Shape *shape.Shape
	Err   error
}

func (e ShapeError) Error() string { return e.Err.Error() }
func (e ShapeError) Unwrap() error { return e.Err }

// NewTileDef decomposes every closed shape once. Shapes that fail are dropped
// and returned as errors; the rest of the tile stays usable.
func NewTileDef(index uint32, size, offset math.Vec2, shapes []*shape.Shape) (*TileDef, []ShapeError) {
	def := &TileDef{Index: index, Size: size, Offset: offset}
	var errs []ShapeError
	for _, s := range shapes {
		pieces, err := s.Decompose()
		if err != nil {
			errs = append(errs, ShapeError{Shape: s, Err: err})
			continue
		}
		def.Shapes = append(def.Shapes, s)
		def.pieces = append(def.pieces, pieces)
	}
	return def, errs
}

// HasColliders reports whether any shape contributes geometry.
func (d *TileDef) HasColliders() bool {
	for i, s := range d.Shapes {
		if len(d.pieces[i]) > 0 || (!s.Closed() && s.PointCount() > 1) {
			return true
		}
	}
	return false
}

// Pieces returns the convex pieces of shape i. The slice is shared.
func (d *TileDef) Pieces(i int) []geom.ConvexPolygon {
	return d.pieces[i]
}
