package tags

import "github.com/yohamta/donburi"

var (
	Collider = donburi.NewTag().SetName("Collider")
	Trigger  = donburi.NewTag().SetName("Trigger")
	Path     = donburi.NewTag().SetName("Path")
)

// Resolv tags for physics collision. Physics layer names from the map are
// used as tags too; ResolvSolid is the default layer.
const (
	ResolvSolid   = "solid"
	ResolvTrigger = "trigger"
)
