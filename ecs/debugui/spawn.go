package debugui

import "github.com/plus3/scene/ecs"

// SpawnDebugUI creates one entity per debug tool window. On error no tool
// entity is left in the scene.
func SpawnDebugUI(scene *ecs.Scene) error {
	tools := []func(id ecs.EntityId) error{
		func(id ecs.EntityId) error {
			_, err := ecs.Set(scene, id, NewEntityBrowserComponent(100))
			return err
		},
		func(id ecs.EntityId) error {
			_, err := ecs.Set(scene, id, NewComponentInspectorComponent())
			return err
		},
		func(id ecs.EntityId) error {
			_, err := ecs.Set(scene, id, NewPoolViewerComponent())
			return err
		},
		func(id ecs.EntityId) error {
			_, err := ecs.Set(scene, id, NewPerformanceStatsComponent(120))
			return err
		},
		func(id ecs.EntityId) error {
			_, err := ecs.Set(scene, id, NewViewDebuggerComponent(200))
			return err
		},
	}

	created := make([]ecs.EntityId, 0, len(tools))
	rollback := func() {
		for _, id := range created {
			_ = scene.DestroyEntity(id)
		}
	}

	for _, assign := range tools {
		id, err := scene.NewEntity()
		if err != nil {
			rollback()
			return err
		}
		created = append(created, id)
		if err := assign(id); err != nil {
			rollback()
			return err
		}
	}
	return nil
}

// ToolsSystem renders the debug tool windows spawned by SpawnDebugUI. Rendering is
// deferred to the end of the frame so the windows show the state left by every
// other system.
type ToolsSystem struct {
	Browsers   ecs.Query[struct{ *EntityBrowserComponent }]
	Inspectors ecs.Query[struct{ *ComponentInspectorComponent }]
	Pools      ecs.Query[struct{ *PoolViewerComponent }]
	Stats      ecs.Query[struct{ *PerformanceStatsComponent }]
	Views      ecs.Query[struct{ *ViewDebuggerComponent }]
	timer      FrameTimer
}

func (ts *ToolsSystem) OnStart(scene *ecs.Scene) {
	ts.timer = NewFrameTimer()
}

func (ts *ToolsSystem) OnUpdate(scene *ecs.Scene, dt float64) {
	scene.Commands().Defer(func() {
		ts.render(scene)
	})
}

func (ts *ToolsSystem) render(scene *ecs.Scene) {
	delta := ts.timer.GetDeltaTime()

	var browser *EntityBrowserComponent
	selected := noEntity
	for item := range ts.Browsers.Values() {
		browser = item.EntityBrowserComponent
		browser.Render(scene)
		selected = browser.GetSelectedEntity()
	}

	for item := range ts.Inspectors.Values() {
		item.ComponentInspectorComponent.Render(scene, selected)
	}

	for item := range ts.Pools.Values() {
		if clicked := item.PoolViewerComponent.Render(scene); clicked != nil && browser != nil {
			browser.FilterByComponent(clicked)
		}
	}

	for item := range ts.Stats.Values() {
		item.PerformanceStatsComponent.Render(scene, delta)
	}

	for item := range ts.Views.Values() {
		item.ViewDebuggerComponent.Render(scene)
	}
}
