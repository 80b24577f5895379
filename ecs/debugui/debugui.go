// Package debugui provides immediate-mode GUI integration for scenes using Dear ImGui.
// It manages ImGui rendering and input state through components and systems.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scene/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton component.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem collects all ImguiItem render functions and defers them to the end
// of the frame. It also keeps the ImguiInputState singleton current.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) OnStart(scene *ecs.Scene) {
	ecs.NewSingleton[ImguiInputState](scene)
}

// OnUpdate updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) OnUpdate(scene *ecs.Scene, dt float64) {
	if state := i.InputState.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		if item.Render != nil {
			scene.Commands().Defer(item.Render)
		}
	}
}
