package main

import (
	"flag"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/automoto/tmxshape/assets"
	"github.com/automoto/tmxshape/config"
	"github.com/automoto/tmxshape/preview"
	"github.com/automoto/tmxshape/shared/leveldata"
	"github.com/automoto/tmxshape/shared/physics"
)

func main() {
	mapPath := flag.String("map", "", "TMX map to import (empty = bundled sample levels)")
	configPath := flag.String("config", "", "YAML config file (empty = built-in defaults)")
	ppu := flag.Float64("ppu", 0, "Pixels per unit (overrides config)")
	previewPath := flag.String("preview", "", "Write a PNG preview of the colliders to this path")
	cell := flag.Int("cell", 0, "Physics space cell size in pixels (overrides config)")
	flag.Parse()

	cfg := config.Defaults()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *ppu != 0 {
		cfg.Import.PixelsPerUnit = *ppu
	}
	if *cell != 0 {
		cfg.Physics.CellSize = *cell
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	if *mapPath == "" {
		// No map given: check every bundled sample.
		levels, names, err := physics.LoadAllLevels(assets.Levels(), assets.LevelsDir, cfg)
		if err != nil {
			log.Fatalf("Failed to load bundled levels: %v", err)
		}
		for _, name := range names {
			log.Printf("Level %s: %d objects in space", name, len(levels[name].Space.Objects()))
		}
		return
	}

	dir, name := filepath.Split(*mapPath)
	if dir == "" {
		dir = "."
	}
	imported, err := leveldata.Import(os.DirFS(dir), name, cfg.Import)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	for _, e := range imported.Report.Entries() {
		log.Printf("Dropped shape: %v", e)
	}
	for _, l := range imported.TileLayers {
		log.Printf("Tile layer %q: %d chunks, %d polygons, %d placements",
			l.Name, len(l.Chunks), l.PolygonCount(), len(l.Placements))
	}
	for _, l := range imported.ObjectLayers {
		log.Printf("Object layer %q: %d objects", l.Name, len(l.Objects))
	}

	level := physics.NewSpace(imported, cfg.Physics.CellSize)
	log.Printf("Space %dx%d px holds %d objects", level.Width, level.Height, len(level.Space.Objects()))

	if *previewPath != "" {
		if err := writePreview(*previewPath, imported, cfg.Preview.Scale); err != nil {
			log.Fatalf("Failed to write preview: %v", err)
		}
		log.Printf("Wrote preview to %s", *previewPath)
	}
}

func writePreview(path string, m *leveldata.ImportedMap, scale float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, preview.Render(m, scale)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
