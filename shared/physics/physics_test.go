package physics

import (
	"testing"

	"github.com/automoto/tmxshape/shared/collision"
	"github.com/automoto/tmxshape/shared/geom"
	"github.com/automoto/tmxshape/shared/leveldata"
	"github.com/automoto/tmxshape/shared/shape"
	"github.com/automoto/tmxshape/shared/units"
	"github.com/automoto/tmxshape/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi/features/math"
)

func testMap(extra ...geom.ConvexPolygon) *leveldata.ImportedMap {
	zone := shape.New(math.Vec2{}, 0)
	zone.PhysicsLayer = "zone"
	zone.IsTrigger = true

	rail := shape.New(math.Vec2{}, 0)
	rail.PhysicsLayer = tags.ResolvSolid

	pieces := append([]geom.ConvexPolygon{
		{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1}},
	}, extra...)

	return &leveldata.ImportedMap{
		Path:      "levels/test.tmx",
		Converter: units.MustConverter(32),
		Columns:   2,
		Rows:      2,
		Size:      math.Vec2{X: 2, Y: 2},
		TileLayers: []leveldata.TileLayer{{
			Name: "Ground",
			Chunks: []collision.CompositeCollisionSet{{
				Buckets: []collision.Bucket{{
					Key: collision.BucketKey{Layer: tags.ResolvSolid},
					Polygons: []geom.ConvexPolygon{
						{{X: 0, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 0}},
					},
				}},
			}},
		}},
		ObjectLayers: []leveldata.ObjectLayer{{
			Name: "Zones",
			Objects: []leveldata.Object{
				{Shape: zone, Pieces: pieces},
				{Shape: rail, Paths: [][]math.Vec2{{{X: 0, Y: 0}, {X: 2, Y: 0}}}},
			},
		}},
	}
}

func samePoints(t *testing.T, label string, got, want []math.Vec2) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: got %v, want %v", label, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s[%d] = %v, want %v", label, i, got[i], want[i])
		}
	}
}

func TestCollect_PixelFrame(t *testing.T) {
	g := Collect(testMap())

	if g.Width != 64 || g.Height != 64 || g.Shift != (math.Vec2{}) {
		t.Errorf("frame = %dx%d shift %v", g.Width, g.Height, g.Shift)
	}
	if len(g.Colliders) != 3 {
		t.Fatalf("colliders = %d, want 3", len(g.Colliders))
	}

	// The top-left tile lands where resolv.NewRectangle would put it.
	samePoints(t, "tile", g.Colliders[0].Points, []math.Vec2{
		{X: 0, Y: 0}, {X: 32, Y: 0}, {X: 32, Y: 32}, {X: 0, Y: 32},
	})
	samePoints(t, "zone", g.Colliders[1].Points, []math.Vec2{
		{X: 32, Y: 32}, {X: 64, Y: 32}, {X: 64, Y: 64}, {X: 32, Y: 64},
	})
	if !g.Colliders[1].Trigger || g.Colliders[1].Layer != "zone" {
		t.Errorf("zone metadata = %+v", g.Colliders[1])
	}

	rail := g.Colliders[2]
	if !rail.Path {
		t.Fatal("rail should be a path")
	}
	samePoints(t, "rail", rail.Points, []math.Vec2{{X: 0, Y: 64}, {X: 64, Y: 64}})

	if n := len(g.Solids()); n != 2 {
		t.Errorf("Solids = %d, want 2", n)
	}
}

func TestCollect_ShiftsNegativeGeometry(t *testing.T) {
	g := Collect(testMap(geom.ConvexPolygon{
		{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 1},
	}))

	if g.Shift != (math.Vec2{X: 32, Y: 0}) {
		t.Errorf("Shift = %v", g.Shift)
	}
	if g.Width != 96 || g.Height != 64 {
		t.Errorf("frame = %dx%d", g.Width, g.Height)
	}
	for _, c := range g.Colliders {
		lo, _ := c.Bounds()
		if lo.X < 0 || lo.Y < 0 {
			t.Errorf("collider %v still negative", c.Points)
		}
	}
}

func TestNewObject(t *testing.T) {
	obj := NewObject(Collider{
		Points:  []math.Vec2{{X: 32, Y: 32}, {X: 64, Y: 32}, {X: 64, Y: 64}, {X: 32, Y: 64}},
		Layer:   "zone",
		Trigger: true,
	})
	if obj.X != 32 || obj.Y != 32 || obj.W != 32 || obj.H != 32 {
		t.Errorf("bounds = (%v, %v, %v, %v)", obj.X, obj.Y, obj.W, obj.H)
	}
	if !obj.HasTags("zone") || !obj.HasTags(tags.ResolvTrigger) {
		t.Error("object should carry its layer and trigger tags")
	}
	poly, ok := obj.Shape.(*resolv.ConvexPolygon)
	if !ok {
		t.Fatalf("shape = %T, want *resolv.ConvexPolygon", obj.Shape)
	}
	world := poly.Transformed()
	want := [][2]float64{{32, 32}, {64, 32}, {64, 64}, {32, 64}}
	if len(world) != len(want) {
		t.Fatalf("vertices = %v, want %v", world, want)
	}
	for i, w := range want {
		if world[i][0] != w[0] || world[i][1] != w[1] {
			t.Errorf("vertex %d = %v, want %v", i, world[i], w)
		}
	}
}

func TestNewSpace(t *testing.T) {
	level := NewSpace(testMap(), 16)

	if level.Width != 64 || level.Height != 64 {
		t.Errorf("level size = %dx%d", level.Width, level.Height)
	}
	objects := level.Space.Objects()
	if len(objects) != 2 {
		t.Fatalf("space objects = %d, want 2", len(objects))
	}
	solid, trigger := 0, 0
	for _, o := range objects {
		if o.HasTags(tags.ResolvSolid) {
			solid++
		}
		if o.HasTags(tags.ResolvTrigger) {
			trigger++
		}
	}
	if solid != 1 || trigger != 1 {
		t.Errorf("solid=%d trigger=%d", solid, trigger)
	}
}

func TestSpaceSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		cell          int
		wantW, wantH  int
	}{
		{"exact", 64, 32, 16, 64, 32},
		{"partial cell", 72, 72, 16, 80, 80},
		{"one pixel over", 65, 17, 16, 80, 32},
		{"zero cell", 72, 40, 0, 72, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := SpaceSize(Geometry{Width: tt.width, Height: tt.height}, tt.cell)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("SpaceSize = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestNewSpace_PartialEdgeCells(t *testing.T) {
	// 2.25 units at 32 px is 72 px, which is four and a half 16 px cells.
	m := testMap(geom.ConvexPolygon{{X: 2, Y: 0}, {X: 2.25, Y: 0}, {X: 2.25, Y: 0.25}, {X: 2, Y: 0.25}})
	m.Size = math.Vec2{X: 2.25, Y: 2.25}

	level := NewSpace(m, 16)
	if level.Geometry.Width != 72 || level.Geometry.Height != 72 {
		t.Fatalf("geometry size = %dx%d, want 72x72", level.Geometry.Width, level.Geometry.Height)
	}
	if level.Width != 80 || level.Height != 80 {
		t.Errorf("level size = %dx%d, want 80x80", level.Width, level.Height)
	}
	if level.Space.Width() != 5 || level.Space.Height() != 5 {
		t.Errorf("space cells = %dx%d, want 5x5", level.Space.Width(), level.Space.Height())
	}

	corner := resolv.NewObject(66, 66, 2, 2)
	level.Space.Add(corner)
	if corner.Check(0, 0, "zone") == nil {
		t.Error("collider in the last partial cell should be registered")
	}
}
