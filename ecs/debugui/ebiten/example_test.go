package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/scene/ecs"
	"github.com/plus3/scene/ecs/debugui"
	debugui_ebiten "github.com/plus3/scene/ecs/debugui/ebiten"
)

func Example() {
	// Create Ebiten window and ImGui backend
	backend := debugui_ebiten.NewImguiBackend("Scene ImGui Example", 1280, 720)

	scene := ecs.NewScene()

	// Entities with ImGui render functions
	id, _ := scene.NewEntity()
	ecs.Set(scene, id, debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Debug Window")
			imgui.Text("Hello from the scene!")
			imgui.End()
		},
	})

	// Built-in tool windows
	if err := debugui.SpawnDebugUI(scene); err != nil {
		panic(err)
	}

	scene.AddSystem(&debugui.ImguiSystem{})
	scene.AddSystem(&debugui.ToolsSystem{})

	game, err := debugui_ebiten.NewGame(scene, backend)
	if err != nil {
		panic(err)
	}

	// Run the game
	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
