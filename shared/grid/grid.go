// Package grid maps integer cell coordinates of the four supported map
// projections to local positions. Positions are in pixels, Y up, relative to
// the map's top-left corner.
package grid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yohamta/donburi/features/math"
)

var (
	ErrUnknownOrientation  = errors.New("unknown map orientation")
	ErrUnknownStaggerAxis  = errors.New("unknown stagger axis")
	ErrUnknownStaggerIndex = errors.New("unknown stagger index")
)

type Orientation int

const (
	Orthogonal Orientation = iota
	Isometric
	Staggered
	Hexagonal
)

func (o Orientation) String() string {
	switch o {
	case Orthogonal:
		return "orthogonal"
	case Isometric:
		return "isometric"
	case Staggered:
		return "staggered"
	case Hexagonal:
		return "hexagonal"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

type StaggerAxis int

const (
	StaggerAxisY StaggerAxis = iota
	StaggerAxisX
)

func (a StaggerAxis) String() string {
	if a == StaggerAxisX {
		return "x"
	}
	return "y"
}

type StaggerIndex int

const (
	StaggerOdd StaggerIndex = iota
	StaggerEven
)

func (i StaggerIndex) String() string {
	if i == StaggerEven {
		return "even"
	}
	return "odd"
}

// Spec describes the grid of one map. It is immutable for the whole import.
type Spec struct {
	Orientation  Orientation
	StaggerAxis  StaggerAxis
	StaggerIndex StaggerIndex
	CellWidth    float64
	CellHeight   float64
}

// CellSize returns the cell size as a vector.
func (s Spec) CellSize() math.Vec2 {
	return math.Vec2{X: s.CellWidth, Y: s.CellHeight}
}

// ParseOrientation reads the orientation attribute of a map. An empty value
// means orthogonal.
func ParseOrientation(v string) (Orientation, error) {
	switch strings.ToLower(v) {
	case "", "orthogonal":
		return Orthogonal, nil
	case "isometric":
		return Isometric, nil
	case "staggered":
		return Staggered, nil
	case "hexagonal":
		return Hexagonal, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOrientation, v)
}

func ParseStaggerAxis(v string) (StaggerAxis, error) {
	switch strings.ToLower(v) {
	case "", "y":
		return StaggerAxisY, nil
	case "x":
		return StaggerAxisX, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStaggerAxis, v)
}

func ParseStaggerIndex(v string) (StaggerIndex, error) {
	switch strings.ToLower(v) {
	case "", "odd":
		return StaggerOdd, nil
	case "even":
		return StaggerEven, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStaggerIndex, v)
}
