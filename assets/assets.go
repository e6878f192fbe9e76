package assets

import (
	"embed"
	"io/fs"
)

var (
	//go:embed all:levels
	assetFS embed.FS
)

// LevelsDir is the directory of the bundled maps inside Levels().
const LevelsDir = "levels"

// Levels returns the bundled sample maps and their tilesets.
func Levels() fs.FS {
	return assetFS
}
