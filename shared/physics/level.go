package physics

import (
	"fmt"
	"io/fs"
	"log"

	"github.com/automoto/tmxshape/config"
	"github.com/automoto/tmxshape/shared/geom"
	"github.com/automoto/tmxshape/shared/leveldata"
	"github.com/automoto/tmxshape/tags"
	"github.com/solarlune/resolv"
)

// Level holds the collision space of one imported map.
type Level struct {
	Space    *resolv.Space
	Geometry Geometry
	Width    int
	Height   int
}

// NewObject builds the resolv object of a closed collider. The object is
// tagged with the collider's physics layer, and with tags.ResolvTrigger when
// it only reports overlaps.
func NewObject(c Collider) *resolv.Object {
	lo, hi := geom.Bounds(c.Points)
	objTags := []string{c.Layer}
	if c.Trigger {
		objTags = append(objTags, tags.ResolvTrigger)
	}
	obj := resolv.NewObject(lo.X, lo.Y, hi.X-lo.X, hi.Y-lo.Y, objTags...)

	flat := make([]float64, 0, len(c.Points)*2)
	for _, p := range c.Points {
		flat = append(flat, p.X-lo.X, p.Y-lo.Y)
	}
	obj.SetShape(resolv.NewConvexPolygon(0, 0, flat...))
	return obj
}

// SpaceSize rounds the geometry extent up to whole cells. resolv truncates
// partial cells, which would leave colliders on the far edges unregistered.
func SpaceSize(g Geometry, cellSize int) (width, height int) {
	return roundUp(g.Width, cellSize), roundUp(g.Height, cellSize)
}

func roundUp(v, step int) int {
	if step <= 0 {
		return v
	}
	return (v + step - 1) / step * step
}

// NewSpace builds a resolv.Space holding one object per convex collider.
// Open paths have no area and are left out.
func NewSpace(m *leveldata.ImportedMap, cellSize int) *Level {
	g := Collect(m)
	w, h := SpaceSize(g, cellSize)
	space := resolv.NewSpace(w, h, cellSize, cellSize)

	solids := g.Solids()
	triggers := 0
	for _, c := range solids {
		space.Add(NewObject(c))
		if c.Trigger {
			triggers++
		}
	}

	log.Printf("Loaded level %s: %d colliders (%d triggers), %d paths, %dx%d space",
		m.Path, len(solids), triggers, len(g.Colliders)-len(solids), w, h)

	return &Level{
		Space:    space,
		Geometry: g,
		Width:    w,
		Height:   h,
	}
}

// LoadAllLevels imports every .tmx map in dir and builds a space for each,
// returning levels keyed by stem name plus a sorted name list.
func LoadAllLevels(fsys fs.FS, dir string, cfg config.File) (map[string]*Level, []string, error) {
	maps, names, err := leveldata.ImportAll(fsys, dir, cfg.Import)
	if err != nil {
		return nil, nil, fmt.Errorf("load all levels: %w", err)
	}

	levels := make(map[string]*Level, len(names))
	for _, name := range names {
		levels[name] = NewSpace(maps[name], cfg.Physics.CellSize)
	}

	return levels, names, nil
}
