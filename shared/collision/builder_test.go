package collision

import (
	"errors"
	"sync"
	"testing"

	"github.com/automoto/tmxshape/shared/geom"
	"github.com/automoto/tmxshape/shared/gid"
	"github.com/automoto/tmxshape/shared/grid"
	"github.com/automoto/tmxshape/shared/shape"
	"github.com/automoto/tmxshape/shared/units"
	"github.com/yohamta/donburi/features/math"
)

var (
	testConv = units.MustConverter(32)
	testEnv  = Env{
		Grid:      grid.Spec{Orientation: grid.Orthogonal, CellWidth: 32, CellHeight: 32},
		Converter: testConv,
	}
)

func renderedRect(t *testing.T, pos, size math.Vec2, layer string, trigger bool) *shape.Shape {
	t.Helper()
	s := shape.New(pos, 0)
	s.PhysicsLayer = layer
	s.IsTrigger = trigger
	if err := s.MakeRectangle(size); err != nil {
		t.Fatal(err)
	}
	if err := s.RenderPoints(testConv, 32, grid.Orthogonal, math.Vec2{X: 32, Y: 32}); err != nil {
		t.Fatal(err)
	}
	return s
}

func halfTile(t *testing.T, layer string, trigger bool) *TileDef {
	t.Helper()
	s := renderedRect(t, math.Vec2{X: 0, Y: 16}, math.Vec2{X: 32, Y: 16}, layer, trigger)
	def, errs := NewTileDef(1, math.Vec2{X: 1, Y: 1}, math.Vec2{}, []*shape.Shape{s})
	if len(errs) != 0 {
		t.Fatalf("NewTileDef errors: %v", errs)
	}
	return def
}

func TestBuilder_PlacesAtCell(t *testing.T) {
	b := BeginChunk(Chunk{Width: 4, Height: 4}, testEnv)
	b.PlaceTileColliders(halfTile(t, "Default", false), gid.None, 1, 2)
	set := b.Build()

	if len(set.Buckets) != 1 || len(set.Buckets[0].Polygons) != 1 {
		t.Fatalf("unexpected set: %+v", set)
	}
	want := geom.ConvexPolygon{{X: 1, Y: -2.5}, {X: 1, Y: -3}, {X: 2, Y: -3}, {X: 2, Y: -2.5}}
	got := set.Buckets[0].Polygons[0]
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("vertex %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBuilder_FlipKeepsWindingAndMovesShape(t *testing.T) {
	b := BeginChunk(Chunk{Width: 4, Height: 4}, testEnv)
	b.PlaceTileColliders(halfTile(t, "Default", false), gid.Vertical, 0, 0)
	poly := b.Build().Buckets[0].Polygons[0]

	if !geom.IsCCW(poly) {
		t.Errorf("flipped polygon lost its winding: %v", poly)
	}
	min, max := geom.Bounds(poly)
	if min != (math.Vec2{X: 0, Y: -0.5}) || max != (math.Vec2{X: 1, Y: 0}) {
		t.Errorf("bounds = %v..%v, want (0,-0.5)..(1,0)", min, max)
	}
}

func TestBuilder_PartitionsByLayerAndTrigger(t *testing.T) {
	solid := halfTile(t, "Ground", false)
	trigger := halfTile(t, "Ground", true)
	water := halfTile(t, "Water", false)

	b := BeginChunk(Chunk{Width: 8, Height: 1}, testEnv)
	b.PlaceTileColliders(solid, gid.None, 0, 0)
	b.PlaceTileColliders(trigger, gid.None, 1, 0)
	b.PlaceTileColliders(water, gid.None, 2, 0)
	b.PlaceTileColliders(solid, gid.Horizontal, 3, 0)
	set := b.Build()

	want := []BucketKey{{Layer: "Ground"}, {Layer: "Ground", IsTrigger: true}, {Layer: "Water"}}
	if len(set.Buckets) != len(want) {
		t.Fatalf("got %d buckets, want %d", len(set.Buckets), len(want))
	}
	for i, key := range want {
		if set.Buckets[i].Key != key {
			t.Errorf("bucket %d key = %+v, want %+v", i, set.Buckets[i].Key, key)
		}
	}
	if n := len(set.Buckets[0].Polygons); n != 2 {
		t.Errorf("ground bucket has %d polygons, want 2", n)
	}
	if set.PolygonCount() != 4 {
		t.Errorf("PolygonCount = %d, want 4", set.PolygonCount())
	}
}

func TestBuilder_EmptyChunkAndReset(t *testing.T) {
	b := BeginChunk(Chunk{Width: 2, Height: 2}, testEnv)
	b.PlaceTileColliders(nil, gid.None, 0, 0)
	b.PlaceTileColliders(&TileDef{Index: 3}, gid.None, 1, 0)
	if set := b.Build(); !set.IsEmpty() {
		t.Errorf("expected empty set, got %+v", set)
	}

	b.PlaceTileColliders(halfTile(t, "Default", false), gid.None, 0, 0)
	if set := b.Build(); set.IsEmpty() {
		t.Fatal("expected geometry")
	}
	if set := b.Build(); !set.IsEmpty() {
		t.Error("Build should reset the builder")
	}
}

func TestBuilder_PolylinePaths(t *testing.T) {
	s := shape.New(math.Vec2{}, 0)
	if err := s.MakePolyline([]math.Vec2{{X: 0, Y: 32}, {X: 32, Y: 0}}); err != nil {
		t.Fatal(err)
	}
	if err := s.RenderPoints(testConv, 32, grid.Orthogonal, math.Vec2{X: 32, Y: 32}); err != nil {
		t.Fatal(err)
	}
	p := shape.New(math.Vec2{X: 4, Y: 4}, 0)
	if err := p.MakePoint(); err != nil {
		t.Fatal(err)
	}
	if err := p.RenderPoints(testConv, 32, grid.Orthogonal, math.Vec2{X: 32, Y: 32}); err != nil {
		t.Fatal(err)
	}
	def, errs := NewTileDef(2, math.Vec2{X: 1, Y: 1}, math.Vec2{}, []*shape.Shape{s, p})
	if len(errs) != 0 {
		t.Fatal(errs)
	}

	b := BeginChunk(Chunk{Width: 1, Height: 1}, testEnv)
	b.PlaceTileColliders(def, gid.None, 0, 0)
	set := b.Build()
	if len(set.Buckets) != 1 || len(set.Buckets[0].Paths) != 1 || len(set.Buckets[0].Polygons) != 0 {
		t.Fatalf("unexpected set %+v", set)
	}
	path := set.Buckets[0].Paths[0]
	if path[0] != (math.Vec2{X: 0, Y: -1}) || path[1] != (math.Vec2{X: 1, Y: 0}) {
		t.Errorf("path = %v", path)
	}
}

func TestNewTileDef_DropsBrokenShapes(t *testing.T) {
	good := renderedRect(t, math.Vec2{}, math.Vec2{X: 8, Y: 8}, "Default", false)
	bad := shape.New(math.Vec2{}, 0)
	if err := bad.MakePolygon([]math.Vec2{{X: 0, Y: 0}, {X: 8, Y: 0}, {X: 16, Y: 0}}); err != nil {
		t.Fatal(err)
	}
	if err := bad.RenderPoints(testConv, 32, grid.Orthogonal, math.Vec2{}); err != nil {
		t.Fatal(err)
	}

	def, errs := NewTileDef(5, math.Vec2{X: 1, Y: 1}, math.Vec2{}, []*shape.Shape{good, bad})
	if len(errs) != 1 || errs[0].Shape != bad || !errors.Is(errs[0], geom.ErrTriangulation) {
		t.Fatalf("errs = %v", errs)
	}
	if len(def.Shapes) != 1 || !def.HasColliders() {
		t.Errorf("good shape should survive: %+v", def)
	}
}

func TestBuilder_SharedTileAcrossGoroutines(t *testing.T) {
	def := halfTile(t, "Default", false)
	before := def.Shapes[0].Points()

	var wg sync.WaitGroup
	for c := 0; c < 8; c++ {
		wg.Add(1)
		go func(c int) {
			defer wg.Done()
			b := BeginChunk(Chunk{X: c * 4, Width: 4, Height: 4}, testEnv)
			for y := 0; y < 4; y++ {
				for x := 0; x < 4; x++ {
					b.PlaceTileColliders(def, gid.FlipFlags(x%8), c*4+x, y)
				}
			}
			if set := b.Build(); set.PolygonCount() != 16 {
				t.Errorf("chunk %d: %d polygons", c, set.PolygonCount())
			}
		}(c)
	}
	wg.Wait()

	after := def.Shapes[0].Points()
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("placements mutated the shared shape")
		}
	}
}
