package ecs

import (
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

func componentsArray(infos []ComponentInfo) *zerolog.Array {
	arr := zerolog.Arr()
	for _, info := range infos {
		arr = arr.Dict(zerolog.Dict().
			Int("component_id", int(info.Id)).
			Str("component_name", info.Name()))
	}
	return arr
}

func systemsArray(names []string) *zerolog.Array {
	arr := zerolog.Arr()
	for _, name := range names {
		arr = arr.Str(name)
	}
	return arr
}

// LogComponents logs every registered component type.
func (s *Scene) LogComponents(level zerolog.Level) {
	infos := s.registry.Components()
	s.logger.WithLevel(level).
		Int("total_components", len(infos)).
		Array("components", componentsArray(infos)).
		Send()
}

// LogSystems logs the systems in execution order.
func (s *Scene) LogSystems(level zerolog.Level) {
	names := s.scheduler.SystemNames()
	s.logger.WithLevel(level).
		Int("total_systems", len(names)).
		Array("systems", systemsArray(names)).
		Send()
}

// LogEntity logs the components of a live entity.
func (s *Scene) LogEntity(level zerolog.Level, id EntityId) error {
	row, ok := s.resolve(id)
	if !ok {
		return eris.Wrapf(ErrEntityNotAlive, "cannot log entity %s", id)
	}

	infos := make([]ComponentInfo, 0, row.mask.Count())
	for cid := range row.mask.Ids() {
		info, _ := s.registry.Info(cid)
		infos = append(infos, info)
	}

	s.logger.WithLevel(level).
		Uint32("entity_index", id.Index()).
		Uint32("entity_generation", id.Generation()).
		Array("components", componentsArray(infos)).
		Send()
	return nil
}

// LogScene logs occupancy, components and systems in one event.
func (s *Scene) LogScene(level zerolog.Level) {
	stats := s.CollectStats()
	infos := s.registry.Components()
	names := s.scheduler.SystemNames()

	s.logger.WithLevel(level).
		Int("rows", stats.RowCount).
		Int("live_entities", stats.LiveEntityCount).
		Int("free_slots", stats.FreeSlotCount).
		Int("total_components", len(infos)).
		Array("components", componentsArray(infos)).
		Int("total_systems", len(names)).
		Array("systems", systemsArray(names)).
		Send()
}
