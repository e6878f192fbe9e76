package grid

import "github.com/yohamta/donburi/features/math"

// Hexagon constants for regular hexes. A flat-top hex advances three quarters
// of its width per column (1.5 widths per column pair); a pointy-top hex
// advances its height minus a quarter per row.
const (
	hexColumnAdvance  = 0.75
	hexColumnPair     = 1.5
	hexRowOverlap     = 0.25
	hexRowShift       = 1.0
	staggerRowAdvance = 0.5
	staggerShift      = 0.5
)

// CellToLocal returns the local position of the bottom-left corner of the
// cell's bounding box.
func CellToLocal(cx, cy int, spec Spec) math.Vec2 {
	w, h := spec.CellWidth, spec.CellHeight
	x, y := float64(cx), float64(cy)

	switch spec.Orientation {
	case Isometric:
		return math.Vec2{X: x*w - w/2, Y: -(y + 1) * h}

	case Staggered:
		if spec.StaggerAxis == StaggerAxisX {
			pos := math.Vec2{X: x * w * staggerShift, Y: -(y + 1) * h}
			if isShifted(cx, spec.StaggerIndex) {
				pos.Y -= staggerShift * h
			}
			return pos
		}
		pos := math.Vec2{X: x * w, Y: -(y*staggerRowAdvance + 1) * h}
		if isShifted(cy, spec.StaggerIndex) {
			pos.X += w * staggerShift
		}
		return pos

	case Hexagonal:
		if spec.StaggerAxis == StaggerAxisX {
			// Column pairs advance 1.5 widths; the odd column of a pair sits
			// another 0.75 widths along.
			pos := math.Vec2{
				X: float64(floorDiv(cx, 2))*hexColumnPair*w + float64(mod2(cx))*hexColumnAdvance*w,
				Y: -(y + 1) * h,
			}
			if isShifted(cx, spec.StaggerIndex) {
				pos.Y -= h / 2
			}
			return pos
		}
		pos := math.Vec2{X: x * w, Y: -(y*(1-hexRowOverlap)*h + hexRowShift*h)}
		if isShifted(cy, spec.StaggerIndex) {
			pos.X += w / 2
		}
		return pos
	}

	return math.Vec2{X: x * w, Y: -(y + 1) * h}
}

// PixelSize returns the pixel extent of a map of columns x rows cells.
func PixelSize(spec Spec, columns, rows int) math.Vec2 {
	w, h := spec.CellWidth, spec.CellHeight
	c, r := float64(columns), float64(rows)

	switch spec.Orientation {
	case Isometric:
		return math.Vec2{X: (c + r) * w / 2, Y: (c + r) * h / 2}
	case Staggered:
		if spec.StaggerAxis == StaggerAxisX {
			return math.Vec2{X: (c + 1) * w / 2, Y: r*h + h/2}
		}
		return math.Vec2{X: c*w + w/2, Y: (r + 1) * h / 2}
	case Hexagonal:
		if spec.StaggerAxis == StaggerAxisX {
			return math.Vec2{X: c*hexColumnAdvance*w + hexRowOverlap*w, Y: r*h + h/2}
		}
		return math.Vec2{X: c*w + w/2, Y: r*(1-hexRowOverlap)*h + hexRowOverlap*h}
	}
	return math.Vec2{X: c * w, Y: r * h}
}

func isShifted(n int, index StaggerIndex) bool {
	odd := mod2(n) == 1
	if index == StaggerEven {
		return !odd
	}
	return odd
}

func mod2(n int) int {
	if n%2 != 0 {
		return 1
	}
	return 0
}

func floorDiv(n, d int) int {
	q := n / d
	if (n%d != 0) && ((n < 0) != (d < 0)) {
		q--
	}
	return q
}
