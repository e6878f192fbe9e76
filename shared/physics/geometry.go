// Package physics turns imported collision geometry into a resolv space.
// resolv works in pixels with Y pointing down, so everything is converted
// back out of target units here.
package physics

import (
	stdmath "math"

	"github.com/automoto/tmxshape/shared/geom"
	"github.com/automoto/tmxshape/shared/leveldata"
	"github.com/yohamta/donburi/features/math"
)

// Collider is one convex polygon or open path in pixel space.
type Collider struct {
	Points  []math.Vec2 // pixels, Y down
	Layer   string
	Trigger bool
	Path    bool // open polyline, not a solid
}

// Bounds returns the axis-aligned box of the collider.
func (c Collider) Bounds() (min, max math.Vec2) {
	return geom.Bounds(c.Points)
}

// Geometry is every collider of a map, shifted so no coordinate is
// negative.
type Geometry struct {
	Colliders []Collider
	Width     int // pixels
	Height    int
	Shift     math.Vec2 // pixels added to every point
}

// Collect gathers tile chunk and object geometry into one pixel frame. The
// frame matches the map's own pixel frame unless some shape sticks out past
// the top or left edge; then everything moves by Shift.
func Collect(m *leveldata.ImportedMap) Geometry {
	ppu := m.Converter.PixelsPerUnit()
	toPixels := func(p, origin math.Vec2) math.Vec2 {
		return math.Vec2{
			X: (p.X + origin.X) * ppu,
			Y: (m.Size.Y - (p.Y + origin.Y)) * ppu,
		}
	}
	add := func(out *[]Collider, pts []math.Vec2, origin math.Vec2, layer string, trigger, path bool) {
		c := Collider{Points: make([]math.Vec2, len(pts)), Layer: layer, Trigger: trigger, Path: path}
		for i, p := range pts {
			c.Points[i] = toPixels(p, origin)
		}
		if !path {
			// Flipping Y turns counter-clockwise into clockwise; resolv
			// rectangles wind the other way.
			geom.Reverse(c.Points)
		}
		*out = append(*out, c)
	}

	var colliders []Collider
	tileOrigin := m.TileLayerOrigin()
	for _, layer := range m.TileLayers {
		for _, chunk := range layer.Chunks {
			for _, b := range chunk.Buckets {
				for _, poly := range b.Polygons {
					add(&colliders, poly, tileOrigin, b.Key.Layer, b.Key.IsTrigger, false)
				}
				for _, path := range b.Paths {
					add(&colliders, path, tileOrigin, b.Key.Layer, b.Key.IsTrigger, true)
				}
			}
		}
	}
	for _, layer := range m.ObjectLayers {
		for _, o := range layer.Objects {
			for _, poly := range o.Pieces {
				add(&colliders, poly, math.Vec2{}, o.Shape.PhysicsLayer, o.Shape.IsTrigger, false)
			}
			for _, path := range o.Paths {
				add(&colliders, path, math.Vec2{}, o.Shape.PhysicsLayer, o.Shape.IsTrigger, true)
			}
		}
	}

	g := Geometry{Colliders: colliders}
	size := math.Vec2{X: m.Size.X * ppu, Y: m.Size.Y * ppu}
	lo, hi := math.Vec2{}, size
	for _, c := range colliders {
		cmin, cmax := c.Bounds()
		lo.X, lo.Y = stdmath.Min(lo.X, cmin.X), stdmath.Min(lo.Y, cmin.Y)
		hi.X, hi.Y = stdmath.Max(hi.X, cmax.X), stdmath.Max(hi.Y, cmax.Y)
	}
	g.Shift = math.Vec2{X: -lo.X, Y: -lo.Y}
	if g.Shift.X != 0 || g.Shift.Y != 0 {
		for _, c := range g.Colliders {
			for i := range c.Points {
				c.Points[i].X += g.Shift.X
				c.Points[i].Y += g.Shift.Y
			}
		}
	}
	g.Width = int(stdmath.Ceil(hi.X - lo.X))
	g.Height = int(stdmath.Ceil(hi.Y - lo.Y))
	return g
}

// Solids returns the closed colliders.
func (g Geometry) Solids() []Collider {
	out := make([]Collider, 0, len(g.Colliders))
	for _, c := range g.Colliders {
		if !c.Path {
			out = append(out, c)
		}
	}
	return out
}
