// Package preview draws the collision geometry of an imported map into an
// image, one colour per physics layer.
package preview

import (
	"hash/fnv"
	"image"
	"image/color"
	"image/draw"
	stdmath "math"

	"github.com/automoto/tmxshape/shared/leveldata"
	"github.com/automoto/tmxshape/shared/physics"
	"github.com/automoto/tmxshape/tags"
	"github.com/yohamta/donburi/features/math"
	"golang.org/x/image/vector"
)

var (
	Background   = color.RGBA{R: 15, G: 25, B: 50, A: 255}
	SolidColor   = color.RGBA{R: 100, G: 100, B: 100, A: 255} // Grey
	TriggerColor = color.RGBA{R: 0, G: 255, B: 0, A: 128}     // Green
	PathColor    = color.RGBA{R: 0, G: 255, B: 255, A: 255}   // Cyan

	layerPalette = []color.RGBA{
		{R: 255, G: 140, B: 0, A: 255},
		{R: 255, G: 0, B: 0, A: 255},
		{R: 0, G: 0, B: 255, A: 255},
		{R: 200, G: 0, B: 200, A: 255},
		{R: 255, G: 215, B: 0, A: 255},
	}
)

// LayerColor returns the fill colour of a physics layer.
func LayerColor(layer string) color.RGBA {
	if layer == tags.ResolvSolid {
		return SolidColor
	}
	h := fnv.New32a()
	h.Write([]byte(layer))
	return layerPalette[h.Sum32()%uint32(len(layerPalette))]
}

// Render rasterizes every collider at scale output pixels per unit. Solids
// are filled with their layer colour, triggers are translucent and paths are
// drawn one pixel wide.
func Render(m *leveldata.ImportedMap, scale float64) *image.RGBA {
	g := physics.Collect(m)
	k := scale / m.Converter.PixelsPerUnit()
	w := max(1, int(stdmath.Ceil(float64(g.Width)*k)))
	h := max(1, int(stdmath.Ceil(float64(g.Height)*k)))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	for _, c := range g.Colliders {
		switch {
		case c.Path:
			strokePath(img, c.Points, k, PathColor)
		case c.Trigger:
			fillPolygon(img, c.Points, k, TriggerColor)
		default:
			fillPolygon(img, c.Points, k, LayerColor(c.Layer))
		}
	}
	return img
}

func fillPolygon(img *image.RGBA, points []math.Vec2, k float64, c color.Color) {
	if len(points) < 3 {
		return
	}
	b := img.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	r.DrawOp = draw.Over
	r.MoveTo(float32(points[0].X*k), float32(points[0].Y*k))
	for _, p := range points[1:] {
		r.LineTo(float32(p.X*k), float32(p.Y*k))
	}
	r.ClosePath()
	r.Draw(img, b, image.NewUniform(c), image.Point{})
}

// strokePath draws each segment as a quad one output pixel wide.
func strokePath(img *image.RGBA, points []math.Vec2, k float64, c color.Color) {
	for i := 0; i+1 < len(points); i++ {
		a := math.Vec2{X: points[i].X * k, Y: points[i].Y * k}
		b := math.Vec2{X: points[i+1].X * k, Y: points[i+1].Y * k}
		dx, dy := b.X-a.X, b.Y-a.Y
		length := stdmath.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		nx, ny := -dy/length/2, dx/length/2
		fillPolygon(img, []math.Vec2{
			{X: a.X + nx, Y: a.Y + ny},
			{X: b.X + nx, Y: b.Y + ny},
			{X: b.X - nx, Y: b.Y - ny},
			{X: a.X - nx, Y: a.Y - ny},
		}, 1, c)
	}
}
