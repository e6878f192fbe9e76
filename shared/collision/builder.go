package collision

import (
	"github.com/automoto/tmxshape/shared/geom"
	"github.com/automoto/tmxshape/shared/gid"
	"github.com/automoto/tmxshape/shared/grid"
	"github.com/automoto/tmxshape/shared/tiletransform"
	"github.com/automoto/tmxshape/shared/units"
	"github.com/yohamta/donburi/features/math"
)

// Env is the read-only context of one import pass.
type Env struct {
	Grid      grid.Spec // pixels
	Converter units.Converter
}

// Chunk is a rectangle of cells processed together.
type Chunk struct {
	X, Y          int
	Width, Height int
}

// BucketKey partitions collision geometry. Shapes with different keys never
// merge into one composite collider.
type BucketKey struct {
	Layer     string
	IsTrigger bool
}

// Bucket is the composite geometry of one key.
type Bucket struct {
	Key      BucketKey
	Polygons []geom.ConvexPolygon
	Paths    [][]math.Vec2
}

// CompositeCollisionSet is the finished collision output of one chunk.
type CompositeCollisionSet struct {
	Chunk   Chunk
	Buckets []Bucket
}

func (c CompositeCollisionSet) IsEmpty() bool {
	return len(c.Buckets) == 0
}

// PolygonCount is the number of convex pieces across all buckets.
func (c CompositeCollisionSet) PolygonCount() int {
	n := 0
	for _, b := range c.Buckets {
		n += len(b.Polygons)
	}
	return n
}

// Builder accumulates one chunk. It is not safe for concurrent use; give each
// goroutine its own.
type Builder struct {
	chunk   Chunk
	env     Env
	buckets map[BucketKey]*Bucket
	order   []BucketKey
}

func BeginChunk(chunk Chunk, env Env) *Builder {
	return &Builder{
		chunk:   chunk,
		env:     env,
		buckets: make(map[BucketKey]*Bucket),
	}
}

// PlaceTileColliders copies the tile's shapes through the placement transform
// and into the cell at (cx, cy). Call it in source scan order.
func (b *Builder) PlaceTileColliders(tile *TileDef, flags gid.FlipFlags, cx, cy int) {
	if tile == nil || len(tile.Shapes) == 0 {
		return
	}

	g := tiletransform.ForCollision(tiletransform.Params{
		Flags:       flags,
		TileSize:    tile.Size,
		TileOffset:  tile.Offset,
		Orientation: b.env.Grid.Orientation,
	})
	mirrored := tiletransform.Mirrors(g)
	cell := b.env.Converter.PointNoFlip(grid.CellToLocal(cx, cy, b.env.Grid))

	for i, s := range tile.Shapes {
		key := BucketKey{Layer: s.PhysicsLayer, IsTrigger: s.IsTrigger}
		if s.Closed() {
			pieces := tile.Pieces(i)
			if len(pieces) == 0 {
				continue
			}
			bucket := b.bucket(key)
			for _, piece := range pieces {
				pts := geom.Translate(tiletransform.Apply(g, piece), cell)
				if mirrored {
					geom.Reverse(pts)
				}
				bucket.Polygons = append(bucket.Polygons, geom.ConvexPolygon(pts))
			}
			continue
		}
		if s.PointCount() < 2 {
			continue
		}
		bucket := b.bucket(key)
		bucket.Paths = append(bucket.Paths, geom.Translate(tiletransform.Apply(g, s.Points()), cell))
	}
}

func (b *Builder) bucket(key BucketKey) *Bucket {
	if bk, ok := b.buckets[key]; ok {
		return bk
	}
	bk := &Bucket{Key: key}
	b.buckets[key] = bk
	b.order = append(b.order, key)
	return bk
}

// Build returns the chunk's buckets in first-seen order and resets the
// builder.
func (b *Builder) Build() CompositeCollisionSet {
	set := CompositeCollisionSet{Chunk: b.chunk}
	for _, key := range b.order {
		set.Buckets = append(set.Buckets, *b.buckets[key])
	}
	b.buckets = make(map[BucketKey]*Bucket)
	b.order = nil
	return set
}
