package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/automoto/tmxshape/shared/units"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidEllipseEdges = errors.New("edges per ellipse must be at least 3")
	ErrInvalidChunkSize    = errors.New("chunk size must be at least 1")
	ErrInvalidCellSize     = errors.New("physics cell size must be at least 1")
	ErrInvalidPreviewScale = errors.New("preview scale must be positive")
)

// ImportConfig contains every setting consumed by one map import.
type ImportConfig struct {
	// Conversion
	PixelsPerUnit   float64 `yaml:"pixels_per_unit"`
	EdgesPerEllipse int     `yaml:"edges_per_ellipse"`

	// Aggregation
	ChunkSize           int    `yaml:"chunk_size"` // cells per chunk side
	DefaultPhysicsLayer string `yaml:"default_physics_layer"`

	// Tile objects
	PreserveAspect bool `yaml:"preserve_aspect"` // fit instead of stretch
}

// PhysicsConfig sizes the collision space built from an import.
type PhysicsConfig struct {
	CellSize int `yaml:"cell_size"` // resolv cell size in pixels
}

// PreviewConfig controls the debug raster.
type PreviewConfig struct {
	Scale float64 `yaml:"scale"` // pixels per unit in the output image
}

// File is the on-disk layout of a config file.
type File struct {
	Import  ImportConfig  `yaml:"import"`
	Physics PhysicsConfig `yaml:"physics"`
	Preview PreviewConfig `yaml:"preview"`
}

var Import ImportConfig
var Physics PhysicsConfig
var Preview PreviewConfig

func init() {
	Import = ImportConfig{
		PixelsPerUnit:       32,
		EdgesPerEllipse:     16,
		ChunkSize:           16,
		DefaultPhysicsLayer: "solid",
		PreserveAspect:      false,
	}

	Physics = PhysicsConfig{
		CellSize: 16,
	}

	Preview = PreviewConfig{
		Scale: 16,
	}
}

// Defaults returns the package defaults as a File.
func Defaults() File {
	return File{Import: Import, Physics: Physics, Preview: Preview}
}

// Load reads a yaml config file. Keys missing from the file keep their defaults.
func Load(path string) (File, error) {
	f := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return f, f.Validate()
}

func (f File) Validate() error {
	if err := f.Import.Validate(); err != nil {
		return err
	}
	if f.Physics.CellSize < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidCellSize, f.Physics.CellSize)
	}
	if !(f.Preview.Scale > 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidPreviewScale, f.Preview.Scale)
	}
	return nil
}

// Validate reports settings that make an import impossible.
func (c ImportConfig) Validate() error {
	if !(c.PixelsPerUnit > 0) {
		return fmt.Errorf("%w: got %v", units.ErrInvalidPixelsPerUnit, c.PixelsPerUnit)
	}
	if c.EdgesPerEllipse < 3 {
		return fmt.Errorf("%w: got %d", ErrInvalidEllipseEdges, c.EdgesPerEllipse)
	}
	if c.ChunkSize < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidChunkSize, c.ChunkSize)
	}
	return nil
}
