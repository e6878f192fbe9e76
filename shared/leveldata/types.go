// Package leveldata imports Tiled TMX maps into collision geometry. Tiles and
// objects come out in target space: Y up, measured in units.
package leveldata

import (
	"github.com/automoto/tmxshape/shared/collision"
	"github.com/automoto/tmxshape/shared/geom"
	"github.com/automoto/tmxshape/shared/gid"
	"github.com/automoto/tmxshape/shared/grid"
	"github.com/automoto/tmxshape/shared/report"
	"github.com/automoto/tmxshape/shared/shape"
	"github.com/automoto/tmxshape/shared/units"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/features/math"
)

// ImportedMap holds everything one import produced.
//
// Tile layer geometry has its origin at the top-left corner of the map, so
// cells sit at negative Y. Object layer geometry has its origin at the
// bottom-left corner. TileLayerOrigin converts the former into the latter.
type ImportedMap struct {
	Path      string
	Grid      grid.Spec // pixels
	Converter units.Converter
	Columns   int
	Rows      int
	Size      math.Vec2 // units

	// Tiles is keyed by global tile index. Only tiles with collision shapes
	// are present.
	Tiles        map[uint32]*collision.TileDef
	TileLayers   []TileLayer
	ObjectLayers []ObjectLayer

	Report *report.Report
}

// TileLayerOrigin is the offset that moves tile layer geometry into the
// object layer frame.
func (m *ImportedMap) TileLayerOrigin() math.Vec2 {
	return math.Vec2{X: 0, Y: m.Size.Y}
}

// TileLayer is one tile layer split into chunks.
type TileLayer struct {
	Name string
	// Chunks holds only chunks with collision geometry, in row-major chunk
	// order.
	Chunks     []collision.CompositeCollisionSet
	Placements []TilePlacement
}

// PolygonCount sums the convex pieces of every chunk.
func (l TileLayer) PolygonCount() int {
	n := 0
	for _, c := range l.Chunks {
		n += c.PolygonCount()
	}
	return n
}

// TilePlacement is one non-empty cell.
type TilePlacement struct {
	CX, CY    int
	Index     uint32
	Flags     gid.FlipFlags
	Cell      math.Vec2 // cell origin, units
	Transform ebiten.GeoM
}

// ObjectLayer is one object group.
type ObjectLayer struct {
	Name    string
	Objects []Object
}

// Object is a shape-bearing object or a tile object. Tile objects have a
// non-zero TileIndex and take their geometry from the tile definition.
type Object struct {
	Shape  *shape.Shape
	Pieces []geom.ConvexPolygon
	Paths  [][]math.Vec2

	TileIndex uint32
	TileFlags gid.FlipFlags
	Transform ebiten.GeoM // tile objects only, before Shape.Position
}

func (o Object) IsTile() bool {
	return o.TileIndex != 0
}
