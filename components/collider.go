package components

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// ColliderData describes where a collider came from. Points are in space
// pixels, matching the linked resolv object.
type ColliderData struct {
	Layer   string
	Trigger bool
	Points  []math.Vec2
}

var Collider = donburi.NewComponentType[ColliderData]()

// LevelData is the map a world was built from.
type LevelData struct {
	Path          string
	Width, Height int // space pixels
	Colliders     int
}

var Level = donburi.NewComponentType[LevelData]()
