package ecs

import "iter"

// SceneStats is a snapshot of a scene's occupancy.
type SceneStats struct {
	RowCount           int
	LiveEntityCount    int
	FreeSlotCount      int
	RetiredSlotCount   int
	ComponentTypeCount int
	SingletonCount     int
	Components         []ComponentStats
	SingletonTypes     []string
}

// ComponentStats describes one component type's usage in a scene.
type ComponentStats struct {
	Id       ComponentId
	Name     string
	Size     uintptr
	Count    int
	Blocks   int
	Capacity int
}

// CollectStats walks the row table and pools and returns a snapshot of the scene.
func (s *Scene) CollectStats() *SceneStats {
	infos := s.registry.Components()
	stats := &SceneStats{
		RowCount:           len(s.rows),
		LiveEntityCount:    s.live,
		FreeSlotCount:      len(s.free),
		RetiredSlotCount:   s.retired,
		ComponentTypeCount: len(infos),
		Components:         make([]ComponentStats, len(infos)),
		SingletonTypes:     make([]string, 0),
	}

	for i, info := range infos {
		stats.Components[i] = ComponentStats{Id: info.Id, Name: info.Name(), Size: info.Size}
		if p := s.pool(info.Id); p != nil {
			stats.Components[i].Blocks = p.blockCount()
			stats.Components[i].Capacity = p.blockCount() * poolBlockSize
		}
		if _, ok := s.singletons.Get(info.Id); ok {
			stats.SingletonTypes = append(stats.SingletonTypes, info.Name())
		}
	}
	stats.SingletonCount = len(stats.SingletonTypes)

	for i := range s.rows {
		row := &s.rows[i]
		if !row.live() {
			continue
		}
		for cid := range row.mask.Ids() {
			stats.Components[cid].Count++
		}
	}

	return stats
}

// Entities yields every live entity in row order. The scene is locked against
// structural mutation until the loop finishes.
func (s *Scene) Entities() iter.Seq[EntityId] {
	return NewSceneView(s).Iter()
}
