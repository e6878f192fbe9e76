package leveldata

import (
	"fmt"
	stdmath "math"

	"github.com/automoto/tmxshape/shared/geom"
	"github.com/automoto/tmxshape/shared/gid"
	"github.com/automoto/tmxshape/shared/grid"
	"github.com/automoto/tmxshape/shared/report"
	"github.com/automoto/tmxshape/shared/shape"
	"github.com/automoto/tmxshape/shared/tiletransform"
	"github.com/lafriks/go-tiled"
	"github.com/yohamta/donburi/features/math"
)

// newShape copies an object's placement and metadata into an unbuilt shape.
func (imp *importer) newShape(o *tiled.Object) *shape.Shape {
	s := shape.New(math.Vec2{X: o.X, Y: o.Y}, o.Rotation)
	s.Size = math.Vec2{X: o.Width, Y: o.Height}
	s.ID = o.ID
	s.TypeName = o.Class
	if s.TypeName == "" {
		s.TypeName = o.Type //nolint:staticcheck // maps saved before class existed
	}
	s.PhysicsLayer = o.Properties.GetString(propPhysicsLayer)
	if s.PhysicsLayer == "" {
		s.PhysicsLayer = imp.cfg.DefaultPhysicsLayer
	}
	s.IsTrigger = o.Properties.GetBool(propTrigger)
	return s
}

// objectShape builds the source-space shape of a Tiled object. Objects with
// an ellipse, polygon or polyline marker take that kind; objects without a
// size are points; everything else is a rectangle.
func (imp *importer) objectShape(o *tiled.Object) (*shape.Shape, error) {
	s := imp.newShape(o)

	var err error
	switch {
	case len(o.Ellipses) > 0:
		err = s.MakeEllipse(s.Size, imp.cfg.EdgesPerEllipse)
	case len(o.Polygons) > 0:
		var points []math.Vec2
		if o.Polygons[0].Points != nil {
			for _, p := range *o.Polygons[0].Points {
				points = append(points, math.Vec2{X: p.X, Y: p.Y})
			}
		}
		err = s.MakePolygon(points)
	case len(o.PolyLines) > 0:
		var points []math.Vec2
		if o.PolyLines[0].Points != nil {
			for _, p := range *o.PolyLines[0].Points {
				points = append(points, math.Vec2{X: p.X, Y: p.Y})
			}
		}
		err = s.MakePolyline(points)
	case o.Width == 0 && o.Height == 0:
		err = s.MakePoint()
	default:
		err = s.MakeRectangle(s.Size)
	}
	if err != nil {
		return nil, fmt.Errorf("object %d (%s): %w", o.ID, o.Name, err)
	}
	return s, nil
}

// finishShape renders s into a container and fixes the winding of closed
// shapes.
func (imp *importer) finishShape(s *shape.Shape, containerHeight float64, orientation grid.Orientation, gridSize math.Vec2) error {
	if err := s.RenderPoints(imp.conv, containerHeight, orientation, gridSize); err != nil {
		return err
	}
	if s.Closed() {
		if _, err := s.EnsureCCW(); err != nil {
			return err
		}
	}
	return nil
}

func (imp *importer) loadObjectGroup(og *tiled.ObjectGroup) ObjectLayer {
	layer := ObjectLayer{Name: og.Name}
	container := grid.PixelSize(imp.spec, imp.m.Columns, imp.m.Rows).Y
	cellSize := imp.spec.CellSize()

	for _, o := range og.Objects {
		var (
			obj Object
			err error
		)
		if o.GID != 0 {
			obj, err = imp.tileObject(o, container)
		} else {
			obj, err = imp.shapeObject(o, container, cellSize)
		}
		if err != nil {
			imp.m.Report.Add(report.Entry{MapPath: imp.m.Path, Layer: og.Name, ObjectID: o.ID, Err: err})
			continue
		}
		layer.Objects = append(layer.Objects, obj)
	}
	return layer
}

func (imp *importer) shapeObject(o *tiled.Object, container float64, cellSize math.Vec2) (Object, error) {
	s, err := imp.objectShape(o)
	if err != nil {
		return Object{}, err
	}
	if err := imp.finishShape(s, container, imp.spec.Orientation, cellSize); err != nil {
		return Object{}, err
	}

	obj := Object{Shape: s}
	switch {
	case s.Closed():
		pieces, err := s.Decompose()
		if err != nil {
			return Object{}, err
		}
		obj.Pieces = pieces
	case s.PointCount() > 1:
		obj.Paths = [][]math.Vec2{s.Points()}
	}
	return obj, nil
}

// tileObject places a tile's collision geometry at a tile object. The tile is
// stretched (or fitted) to the object size, flipped by the gid flags and
// rotated about its bottom-left corner.
func (imp *importer) tileObject(o *tiled.Object, container float64) (Object, error) {
	index, flags := gid.Decode(o.GID)

	s := imp.newShape(o)
	if err := s.MakePoint(); err != nil {
		return Object{}, err
	}
	if err := s.RenderPoints(imp.conv, container, imp.spec.Orientation, imp.spec.CellSize()); err != nil {
		return Object{}, err
	}

	ts := imp.tilesetFor(index)
	if ts == nil {
		return Object{}, fmt.Errorf("%w: gid %d", ErrMissingTileset, index)
	}

	params := tiletransform.Params{
		Flags:       flags,
		TileSize:    imp.tileSize(ts),
		TileOffset:  imp.tileOffset(ts),
		Orientation: imp.spec.Orientation,
		FillMode:    tiletransform.Stretch,
	}
	if imp.cfg.PreserveAspect {
		params.FillMode = tiletransform.PreserveAspectFit
	}
	if o.Width > 0 && o.Height > 0 {
		size := imp.conv.PointNoFlip(s.Size)
		params.RenderSize = &size
	}
	g := tiletransform.Build(params)
	if o.Rotation != 0 {
		g.Rotate(imp.conv.Rotation(o.Rotation) * stdmath.Pi / 180)
	}

	obj := Object{Shape: s, TileIndex: index, TileFlags: flags, Transform: g}
	def := imp.m.Tiles[index]
	if def == nil {
		return obj, nil
	}

	mirrored := tiletransform.Mirrors(g)
	for i, ds := range def.Shapes {
		if ds.Closed() {
			for _, piece := range def.Pieces(i) {
				pts := geom.Translate(tiletransform.Apply(g, piece), s.Position)
				if mirrored {
					geom.Reverse(pts)
				}
				obj.Pieces = append(obj.Pieces, geom.ConvexPolygon(pts))
			}
			continue
		}
		if ds.PointCount() > 1 {
			obj.Paths = append(obj.Paths, geom.Translate(tiletransform.Apply(g, ds.Points()), s.Position))
		}
	}
	return obj, nil
}
