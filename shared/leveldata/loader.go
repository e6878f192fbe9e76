package leveldata

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"github.com/automoto/tmxshape/config"
	"github.com/automoto/tmxshape/shared/collision"
	"github.com/automoto/tmxshape/shared/grid"
	"github.com/automoto/tmxshape/shared/report"
	"github.com/automoto/tmxshape/shared/units"
	"github.com/lafriks/go-tiled"
)

var (
	ErrMissingTileset = errors.New("tile has no tileset")
	ErrLayerSize      = errors.New("layer tile count does not match map size")
)

// Object and tile properties read by the importer.
const (
	propPhysicsLayer = "physics_layer"
	propTrigger      = "is_trigger"
)

// importer carries the read-only context of one Import call.
type importer struct {
	cfg  config.ImportConfig
	conv units.Converter
	spec grid.Spec
	m    *ImportedMap

	tilesets []*tiled.Tileset
}

// Import parses a TMX file and returns its collision geometry. It takes an
// fs.FS so callers can pass embed.FS or os.DirFS.
//
// Invalid settings and unreadable maps fail the whole import. Problems with
// single shapes are recorded in the returned map's Report and the shape is
// dropped.
func Import(fsys fs.FS, tmxPath string, cfg config.ImportConfig) (*ImportedMap, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("import %s: %w", tmxPath, err)
	}
	conv, err := units.NewConverter(cfg.PixelsPerUnit)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", tmxPath, err)
	}

	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	spec, err := gridSpec(levelMap)
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	imp := &importer{
		cfg:  cfg,
		conv: conv,
		spec: spec,
		m: &ImportedMap{
			Path:      tmxPath,
			Grid:      spec,
			Converter: conv,
			Columns:   levelMap.Width,
			Rows:      levelMap.Height,
			Size:      conv.PointNoFlip(grid.PixelSize(spec, levelMap.Width, levelMap.Height)),
			Tiles:     make(map[uint32]*collision.TileDef),
			Report:    &report.Report{},
		},
	}

	imp.tilesets = levelMap.Tilesets
	imp.loadTileDefs()

	for _, og := range levelMap.ObjectGroups {
		imp.m.ObjectLayers = append(imp.m.ObjectLayers, imp.loadObjectGroup(og))
	}

	for _, layer := range levelMap.Layers {
		if err := imp.addTileLayer(layer); err != nil {
			return nil, fmt.Errorf("%w in %s", err, tmxPath)
		}
	}

	for _, g := range levelMap.Groups {
		if err := imp.loadGroup(levelMap, g); err != nil {
			return nil, fmt.Errorf("group %q of %s: %w", g.Name, tmxPath, err)
		}
	}

	imp.logSummary()
	return imp.m, nil
}

func (imp *importer) addTileLayer(layer *tiled.Layer) error {
	tl, err := imp.loadTileLayer(layer)
	if err != nil {
		return fmt.Errorf("layer %q: %w", layer.Name, err)
	}
	imp.m.TileLayers = append(imp.m.TileLayers, tl)
	return nil
}

// loadGroup flattens a group layer into the map's layer lists, after the
// top-level layers. go-tiled only decodes the tile layers of a group, so
// nested object groups get their templates resolved here.
func (imp *importer) loadGroup(levelMap *tiled.Map, g *tiled.Group) error {
	for _, og := range g.ObjectGroups {
		if err := og.DecodeObjectGroup(levelMap); err != nil {
			return fmt.Errorf("object group %q: %w", og.Name, err)
		}
		imp.m.ObjectLayers = append(imp.m.ObjectLayers, imp.loadObjectGroup(og))
	}
	for _, layer := range g.Layers {
		if err := imp.addTileLayer(layer); err != nil {
			return err
		}
	}
	for _, sub := range g.Groups {
		if err := imp.loadGroup(levelMap, sub); err != nil {
			return fmt.Errorf("group %q: %w", sub.Name, err)
		}
	}
	return nil
}

// ImportAll discovers all .tmx files in dir within fsys, imports each, and
// returns a map keyed by stem name plus a sorted list of names.
func ImportAll(fsys fs.FS, dir string, cfg config.ImportConfig) (map[string]*ImportedMap, []string, error) {
	pattern := dir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", dir)
	}

	maps := make(map[string]*ImportedMap, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		m, err := Import(fsys, path, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("import %s: %w", path, err)
		}
		stem := strings.TrimSuffix(filepath.Base(path), ".tmx")
		maps[stem] = m
		names = append(names, stem)
	}

	sort.Strings(names)
	return maps, names, nil
}

func gridSpec(m *tiled.Map) (grid.Spec, error) {
	orientation, err := grid.ParseOrientation(string(m.Orientation))
	if err != nil {
		return grid.Spec{}, err
	}
	axis, err := grid.ParseStaggerAxis(string(m.StaggerAxis))
	if err != nil {
		return grid.Spec{}, err
	}
	index, err := grid.ParseStaggerIndex(string(m.StaggerIndex))
	if err != nil {
		return grid.Spec{}, err
	}
	return grid.Spec{
		Orientation:  orientation,
		StaggerAxis:  axis,
		StaggerIndex: index,
		CellWidth:    float64(m.TileWidth),
		CellHeight:   float64(m.TileHeight),
	}, nil
}

func (imp *importer) logSummary() {
	chunks, polygons, objects := 0, 0, 0
	for _, l := range imp.m.TileLayers {
		chunks += len(l.Chunks)
		polygons += l.PolygonCount()
	}
	for _, l := range imp.m.ObjectLayers {
		objects += len(l.Objects)
	}
	log.Printf("Imported %s: %s %dx%d, %d collision tiles, %d chunks, %d tile polygons, %d objects, %d problems",
		imp.m.Path, imp.spec.Orientation, imp.m.Columns, imp.m.Rows,
		len(imp.m.Tiles), chunks, polygons, objects, imp.m.Report.Len())
}
