package factory

import (
	"github.com/automoto/tmxshape/archetypes"
	"github.com/automoto/tmxshape/components"
	"github.com/automoto/tmxshape/shared/physics"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateCollider spawns a solid or trigger collider and adds its resolv
// object to the space, if one exists.
func CreateCollider(ecs *ecs.ECS, c physics.Collider) *donburi.Entry {
	arch := archetypes.Collider
	if c.Trigger {
		arch = archetypes.Trigger
	}
	collider := arch.Spawn(ecs)

	obj := physics.NewObject(c)
	obj.Data = collider // Link for O(1) lookup

	components.Object.SetValue(collider, components.ObjectData{Object: obj})
	components.Collider.SetValue(collider, components.ColliderData{
		Layer:   c.Layer,
		Trigger: c.Trigger,
		Points:  c.Points,
	})

	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		components.Space.Get(spaceEntry).Add(obj)
	}

	return collider
}

// CreatePath spawns an open polyline. Paths have no resolv object.
func CreatePath(ecs *ecs.ECS, c physics.Collider) *donburi.Entry {
	path := archetypes.Path.Spawn(ecs)
	components.Collider.SetValue(path, components.ColliderData{
		Layer:   c.Layer,
		Trigger: c.Trigger,
		Points:  c.Points,
	})
	return path
}
