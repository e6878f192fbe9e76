package units

import (
	"errors"
	"testing"

	"github.com/yohamta/donburi/features/math"
)

func TestNewConverter_RejectsNonPositive(t *testing.T) {
	for _, ppu := range []float64{0, -1, -0.0001} {
		if _, err := NewConverter(ppu); !errors.Is(err, ErrInvalidPixelsPerUnit) {
			t.Errorf("NewConverter(%v) err = %v, want ErrInvalidPixelsPerUnit", ppu, err)
		}
	}
	if _, err := NewConverter(32); err != nil {
		t.Fatalf("NewConverter(32) unexpected error: %v", err)
	}
}

func TestConverter_Conversions(t *testing.T) {
	c := MustConverter(32)

	if got := c.Scalar(64); got != 2 {
		t.Errorf("Scalar(64) = %v, want 2", got)
	}
	if got := c.Point(math.Vec2{X: 16, Y: 64}); got != (math.Vec2{X: 0.5, Y: -2}) {
		t.Errorf("Point = %v", got)
	}
	if got := c.PointNoFlip(math.Vec2{X: 16, Y: 64}); got != (math.Vec2{X: 0.5, Y: 2}) {
		t.Errorf("PointNoFlip = %v", got)
	}
	if got := c.Rotation(45); got != -45 {
		t.Errorf("Rotation(45) = %v, want -45", got)
	}
}

func TestLocal_NotIdempotent(t *testing.T) {
	p := math.Vec2{X: 3, Y: 10}
	h := 32.0

	once := Local(p, h)
	twice := Local(once, h)
	if once == twice {
		t.Fatalf("Local applied twice should differ from once: %v", once)
	}
	if once != (math.Vec2{X: 3, Y: 22}) {
		t.Errorf("Local = %v, want (3, 22)", once)
	}
}

func TestLocal_InverseIsExact(t *testing.T) {
	points := []math.Vec2{{X: 0, Y: 0}, {X: 1.25, Y: -7.5}, {X: 1e6, Y: 0.125}}
	for _, p := range points {
		if got := FromLocal(Local(p, 48), 48); got != p {
			t.Errorf("FromLocal(Local(%v)) = %v", p, got)
		}
	}
}
