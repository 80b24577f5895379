package debugui

import (
	"github.com/plus3/scene/ecs"
)

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selectedEntityId   ecs.EntityId
	filterText         string
	filterComponent    *ecs.ComponentId
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct {
	selectedEntityId ecs.EntityId
	layouts          *FieldLayouts
}

type PoolViewerComponent struct {
	pools         []PoolInfo
	selectedPool  *ecs.ComponentId
	sortColumn    int
	sortAscending bool
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type ViewDebuggerComponent struct {
	selected map[string]bool
	names    []string
	maxRows  int
}
