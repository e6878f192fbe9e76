package factory

import (
	"github.com/automoto/tmxshape/archetypes"
	"github.com/automoto/tmxshape/components"
	"github.com/automoto/tmxshape/shared/leveldata"
	"github.com/automoto/tmxshape/shared/physics"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// SpawnChunkColliders creates the space, a level entry and one entity per
// collider of an imported map. Colliders keep chunk order, then object
// layer order.
func SpawnChunkColliders(ecs *ecs.ECS, m *leveldata.ImportedMap, cellSize int) *donburi.Entry {
	g := physics.Collect(m)
	w, h := physics.SpaceSize(g, cellSize)
	CreateSpace(ecs, w, h, cellSize, cellSize)

	level := archetypes.Level.Spawn(ecs)
	solids := 0
	for _, c := range g.Colliders {
		if c.Path {
			CreatePath(ecs, c)
			continue
		}
		CreateCollider(ecs, c)
		solids++
	}

	components.Level.SetValue(level, components.LevelData{
		Path:      m.Path,
		Width:     w,
		Height:    h,
		Colliders: solids,
	})

	return level
}
