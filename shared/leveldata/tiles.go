package leveldata

import (
	"fmt"
	"runtime"

	"github.com/automoto/tmxshape/shared/collision"
	"github.com/automoto/tmxshape/shared/gid"
	"github.com/automoto/tmxshape/shared/grid"
	"github.com/automoto/tmxshape/shared/report"
	"github.com/automoto/tmxshape/shared/shape"
	"github.com/automoto/tmxshape/shared/tiletransform"
	"github.com/lafriks/go-tiled"
	"github.com/yohamta/donburi/features/math"
	"golang.org/x/sync/errgroup"
)

// loadTileDefs renders the collision object group of every tileset tile.
// Tile shapes use the tile as their container and are never reprojected,
// whatever the map orientation.
func (imp *importer) loadTileDefs() {
	for _, ts := range imp.tilesets {
		px := math.Vec2{X: float64(ts.TileWidth), Y: float64(ts.TileHeight)}
		for _, tt := range ts.Tiles {
			index := ts.FirstGID + tt.ID
			var shapes []*shape.Shape
			for _, og := range tt.ObjectGroups {
				for _, o := range og.Objects {
					s, err := imp.objectShape(o)
					if err == nil {
						err = imp.finishShape(s, px.Y, grid.Orthogonal, px)
					}
					if err != nil {
						imp.m.Report.Add(report.Entry{MapPath: imp.m.Path, Layer: ts.Name, TileID: index, ObjectID: o.ID, Err: err})
						continue
					}
					shapes = append(shapes, s)
				}
			}
			if len(shapes) == 0 {
				continue
			}

			def, errs := collision.NewTileDef(index, imp.tileSize(ts), imp.tileOffset(ts), shapes)
			for _, e := range errs {
				imp.m.Report.Add(report.Entry{MapPath: imp.m.Path, Layer: ts.Name, TileID: index, ObjectID: e.Shape.ID, Err: e})
			}
			if def.HasColliders() {
				imp.m.Tiles[index] = def
			}
		}
	}
}

// loadTileLayer splits the layer into square chunks and aggregates each chunk
// on its own goroutine. Cells inside a chunk are visited in row-major order.
func (imp *importer) loadTileLayer(layer *tiled.Layer) (TileLayer, error) {
	cols, rows := imp.m.Columns, imp.m.Rows
	if len(layer.Tiles) != cols*rows {
		return TileLayer{}, fmt.Errorf("%w: %d tiles for %dx%d", ErrLayerSize, len(layer.Tiles), cols, rows)
	}

	env := collision.Env{Grid: imp.spec, Converter: imp.conv}
	size := imp.cfg.ChunkSize
	var chunks []collision.Chunk
	for y := 0; y < rows; y += size {
		for x := 0; x < cols; x += size {
			chunks = append(chunks, collision.Chunk{
				X: x, Y: y,
				Width:  min(size, cols-x),
				Height: min(size, rows-y),
			})
		}
	}

	sets := make([]collision.CompositeCollisionSet, len(chunks))
	placements := make([][]TilePlacement, len(chunks))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, chunk := range chunks {
		g.Go(func() error {
			b := collision.BeginChunk(chunk, env)
			for cy := chunk.Y; cy < chunk.Y+chunk.Height; cy++ {
				for cx := chunk.X; cx < chunk.X+chunk.Width; cx++ {
					t := layer.Tiles[cy*cols+cx]
					if t == nil || t.IsNil() {
						continue
					}
					if t.Tileset == nil {
						return fmt.Errorf("%w at cell (%d, %d)", ErrMissingTileset, cx, cy)
					}
					// go-tiled leaves the hexagonal rotation bit in ID.
					index, extra := gid.Decode(t.Tileset.FirstGID + t.ID)
					flags := layerTileFlags(t) | extra&gid.Rotate120
					ts := imp.tilesetFor(index)
					if ts == nil {
						return fmt.Errorf("%w for tile %d at cell (%d, %d)", ErrMissingTileset, index, cx, cy)
					}
					placements[i] = append(placements[i], TilePlacement{
						CX:    cx,
						CY:    cy,
						Index: index,
						Flags: flags,
						Cell:  imp.conv.PointNoFlip(grid.CellToLocal(cx, cy, imp.spec)),
						Transform: tiletransform.Build(tiletransform.Params{
							Flags:       flags,
							TileSize:    imp.tileSize(ts),
							TileOffset:  imp.tileOffset(ts),
							Orientation: imp.spec.Orientation,
						}),
					})
					b.PlaceTileColliders(imp.m.Tiles[index], flags, cx, cy)
				}
			}
			sets[i] = b.Build()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return TileLayer{}, err
	}

	tl := TileLayer{Name: layer.Name}
	for i, set := range sets {
		if !set.IsEmpty() {
			tl.Chunks = append(tl.Chunks, set)
		}
		tl.Placements = append(tl.Placements, placements[i]...)
	}
	return tl, nil
}

// tilesetFor returns the tileset owning a global tile index.
func (imp *importer) tilesetFor(index uint32) *tiled.Tileset {
	var found *tiled.Tileset
	for _, ts := range imp.tilesets {
		if ts.FirstGID <= index && (found == nil || ts.FirstGID > found.FirstGID) {
			found = ts
		}
	}
	return found
}

func (imp *importer) tileSize(ts *tiled.Tileset) math.Vec2 {
	return imp.conv.PointNoFlip(math.Vec2{X: float64(ts.TileWidth), Y: float64(ts.TileHeight)})
}

// tileOffset converts the tileset draw offset to units. Tiled offsets point
// down, so Y changes sign.
func (imp *importer) tileOffset(ts *tiled.Tileset) math.Vec2 {
	if ts.TileOffset == nil {
		return math.Vec2{}
	}
	return imp.conv.PointNoFlip(math.Vec2{X: float64(ts.TileOffset.X), Y: -float64(ts.TileOffset.Y)})
}

// layerTileFlags rebuilds the flip flags the decoder split into booleans.
func layerTileFlags(t *tiled.LayerTile) gid.FlipFlags {
	var f gid.FlipFlags
	if t.HorizontalFlip {
		f |= gid.Horizontal
	}
	if t.VerticalFlip {
		f |= gid.Vertical
	}
	if t.DiagonalFlip {
		f |= gid.Diagonal
	}
	return f
}
