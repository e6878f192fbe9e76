package archetypes

import (
	"github.com/automoto/tmxshape/components"
	cfg "github.com/automoto/tmxshape/config"
	"github.com/automoto/tmxshape/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Space = newArchetype(
		components.Space,
	)
	Level = newArchetype(
		components.Level,
	)
	Collider = newArchetype(
		tags.Collider,
		components.Collider,
		components.Object,
	)
	Trigger = newArchetype(
		tags.Trigger,
		components.Collider,
		components.Object,
	)
	Path = newArchetype(
		tags.Path,
		components.Collider,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
