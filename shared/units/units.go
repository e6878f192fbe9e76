// Package units converts source-space pixel values (top-left origin, Y down)
// into target-space units (bottom-left origin, Y up).
package units

import (
	"errors"
	"fmt"

	"github.com/yohamta/donburi/features/math"
)

var ErrInvalidPixelsPerUnit = errors.New("pixels per unit must be greater than zero")

// Converter holds the pixels-per-unit ratio for one import pass.
type Converter struct {
	ppu float64
}

// NewConverter validates ppu once so the conversion methods can stay total.
func NewConverter(pixelsPerUnit float64) (Converter, error) {
	if !(pixelsPerUnit > 0) {
		return Converter{}, fmt.Errorf("%w: got %v", ErrInvalidPixelsPerUnit, pixelsPerUnit)
	}
	return Converter{ppu: pixelsPerUnit}, nil
}

// MustConverter is NewConverter for values known at compile time.
func MustConverter(pixelsPerUnit float64) Converter {
	c, err := NewConverter(pixelsPerUnit)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Converter) PixelsPerUnit() float64 {
	return c.ppu
}

func (c Converter) Scalar(p float64) float64 {
	return p / c.ppu
}

// Point scales p and negates Y.
func (c Converter) Point(p math.Vec2) math.Vec2 {
	return math.Vec2{X: p.X / c.ppu, Y: -p.Y / c.ppu}
}

// PointNoFlip scales p without touching the sign of Y. Used for sizes and
// offsets that are already in the target orientation.
func (c Converter) PointNoFlip(p math.Vec2) math.Vec2 {
	return math.Vec2{X: p.X / c.ppu, Y: p.Y / c.ppu}
}

// Rotation flips the sign of an angle along with the Y axis.
func (c Converter) Rotation(deg float64) float64 {
	return -deg
}

// Local moves a source point into a container whose origin is its bottom-left
// corner. The result stays in pixels.
func Local(p math.Vec2, containerHeight float64) math.Vec2 {
	return math.Vec2{X: p.X, Y: containerHeight - p.Y}
}

// FromLocal is the inverse of Local.
func FromLocal(p math.Vec2, containerHeight float64) math.Vec2 {
	return math.Vec2{X: p.X, Y: containerHeight - p.Y}
}
