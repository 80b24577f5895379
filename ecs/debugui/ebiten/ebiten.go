// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	ebitengine "github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/scene/ecs"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Store it as a scene singleton so systems can reach the backend.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. The imgui.ini file is disabled.
func NewImguiBackend(title string, width, height int) ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return ImguiBackend{EbitenBackend: backend}
}

// Game drives a scene from Ebiten's game loop. Every Update runs the scene's
// systems inside an ImGui frame, and Draw renders the ImGui overlay after the
// optional DrawScene callback.
type Game struct {
	Scene     *ecs.Scene
	Backend   *ecs.Singleton[ImguiBackend]
	DrawScene func(screen *ebitengine.Image)
}

// NewGame stores backend as a singleton of scene and starts its systems.
func NewGame(scene *ecs.Scene, backend ImguiBackend) (*Game, error) {
	ecs.SetSingleton(scene, backend)
	if !scene.Scheduler().Started() {
		if err := scene.InitSystems(); err != nil {
			return nil, err
		}
	}
	return &Game{
		Scene:   scene,
		Backend: ecs.NewSingleton[ImguiBackend](scene),
	}, nil
}

func (g *Game) Update() error {
	backend := g.Backend.Get()
	backend.BeginFrame()
	err := g.Scene.UpdateSystems(1.0 / float64(ebitengine.TPS()))
	backend.EndFrame()
	return err
}

func (g *Game) Draw(screen *ebitengine.Image) {
	if g.DrawScene != nil {
		g.DrawScene(screen)
	}
	g.Backend.Get().Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.Backend.Get().Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

var _ ebitengine.Game = (*Game)(nil)
