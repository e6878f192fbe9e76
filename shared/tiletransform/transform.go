// Package tiletransform builds the affine transform that places one tile
// instance: flips and rotations around the tile's pivot, an optional rescale
// to the map's cell size, and the tileset's drawing offset. The same
// transform, minus the rescale, re-places the tile's collision shapes.
package tiletransform

import (
	stdmath "math"

	"github.com/automoto/tmxshape/shared/gid"
	"github.com/automoto/tmxshape/shared/grid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/features/math"
)

// FillMode decides how a tile is fitted when it renders at cell size.
type FillMode int

const (
	Stretch FillMode = iota
	PreserveAspectFit
)

func (m FillMode) String() string {
	if m == PreserveAspectFit {
		return "preserve-aspect-fit"
	}
	return "stretch"
}

// Hexagonal maps reuse the diagonal flag as a 60 degree turn and the extra
// flag as a 120 degree turn, both clockwise on screen.
const (
	hexDiagonalDegrees  = -60.0
	hexRotate120Degrees = -120.0
)

// Params describes one placement in target space (Y up, units).
type Params struct {
	Flags       gid.FlipFlags
	TileSize    math.Vec2
	TileOffset  math.Vec2
	Orientation grid.Orientation
	// RenderSize, when set, is the cell size the tile is drawn at instead of
	// its native size.
	RenderSize *math.Vec2
	FillMode   FillMode
}

// Build returns the placement transform. Points go through, in order: the
// pivot-centred flip or rotation, the render-size rescale, the tile offset.
func Build(p Params) ebiten.GeoM {
	var g ebiten.GeoM
	box := p.TileSize

	if p.Orientation == grid.Hexagonal {
		hexFlip(&g, p.Flags, p.TileSize)
	} else {
		box = flip(&g, p.Flags, p.TileSize)
	}

	if p.RenderSize != nil && box.X > 0 && box.Y > 0 {
		rescale(&g, box, *p.RenderSize, p.FillMode)
	}

	g.Translate(p.TileOffset.X, p.TileOffset.Y)
	return g
}

// ForCollision is Build without the render-size step, which only affects
// visuals.
func ForCollision(p Params) ebiten.GeoM {
	p.RenderSize = nil
	return Build(p)
}

// flip applies diagonal, horizontal and vertical flips around the tile centre
// and returns the size of the flipped bounding box.
func flip(g *ebiten.GeoM, flags gid.FlipFlags, size math.Vec2) math.Vec2 {
	if flags&(gid.Diagonal|gid.Horizontal|gid.Vertical) == 0 {
		return size
	}
	w, h := size.X, size.Y
	g.Translate(-w/2, -h/2)
	if flags.Has(gid.Diagonal) {
		// Rotate -90 then mirror: (x, y) -> (-y, -x).
		var d ebiten.GeoM
		d.SetElement(0, 0, 0)
		d.SetElement(0, 1, -1)
		d.SetElement(1, 0, -1)
		d.SetElement(1, 1, 0)
		g.Concat(d)
	}
	if flags.Has(gid.Horizontal) {
		g.Scale(-1, 1)
	}
	if flags.Has(gid.Vertical) {
		g.Scale(1, -1)
	}
	g.Translate(w/2, h/2)

	if flags.Has(gid.Diagonal) {
		// The swapped box is h wide and w tall; keep its bottom-left corner
		// on the tile origin.
		if w != h {
			g.Translate((h-w)/2, (w-h)/2)
		}
		return math.Vec2{X: h, Y: w}
	}
	return size
}

func hexFlip(g *ebiten.GeoM, flags gid.FlipFlags, size math.Vec2) {
	if flags == gid.None {
		return
	}
	cx, cy := size.X/2, size.Y/2
	g.Translate(-cx, -cy)
	if flags.Has(gid.Horizontal) {
		g.Scale(-1, 1)
	}
	if flags.Has(gid.Vertical) {
		g.Scale(1, -1)
	}
	if deg := HexRotation(flags); deg != 0 {
		g.Rotate(deg * stdmath.Pi / 180)
	}
	g.Translate(cx, cy)
}

// HexRotation returns the rotation in degrees the diagonal and 120 flags
// encode on a hexagonal map.
func HexRotation(flags gid.FlipFlags) float64 {
	deg := 0.0
	if flags.Has(gid.Diagonal) {
		deg += hexDiagonalDegrees
	}
	if flags.Has(gid.Rotate120) {
		deg += hexRotate120Degrees
	}
	return deg
}

func rescale(g *ebiten.GeoM, box, target math.Vec2, mode FillMode) {
	sx, sy := target.X/box.X, target.Y/box.Y
	if mode == PreserveAspectFit {
		s := stdmath.Min(sx, sy)
		g.Scale(s, s)
		g.Translate((target.X-box.X*s)/2, (target.Y-box.Y*s)/2)
		return
	}
	g.Scale(sx, sy)
}

// Apply transforms points into a new slice.
func Apply(g ebiten.GeoM, points []math.Vec2) []math.Vec2 {
	out := make([]math.Vec2, len(points))
	for i, p := range points {
		x, y := g.Apply(p.X, p.Y)
		out[i] = math.Vec2{X: x, Y: y}
	}
	return out
}

// Mirrors reports whether g reverses winding order.
func Mirrors(g ebiten.GeoM) bool {
	det := g.Element(0, 0)*g.Element(1, 1) - g.Element(0, 1)*g.Element(1, 0)
	return det < 0
}
