package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scene/ecs"
)

func NewViewDebuggerComponent(maxRows int) ViewDebuggerComponent {
	return ViewDebuggerComponent{
		selected: make(map[string]bool),
		maxRows:  maxRows,
	}
}

// Render lets the user pick component types and shows the entities a
// SceneView over them would yield.
func (vd *ViewDebuggerComponent) Render(scene *ecs.Scene) {
	if !imgui.BeginV("View Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if registry := scene.Registry(); len(vd.names) != registry.Len() {
		vd.names = registry.Names()
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		vd.selected = make(map[string]bool)
	}

	for _, name := range vd.names {
		selected := vd.selected[name]
		if imgui.Checkbox(name, &selected) {
			vd.toggle(name, selected)
		}
	}

	imgui.Separator()

	view := vd.view(scene)
	if view.MatchesAll() {
		imgui.Text("No component types selected, matching every entity")
	}

	matches := view.Collect()
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matches)))

	if imgui.TreeNodeStr("Entities") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ViewMatchTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Slot")
			imgui.TableSetupColumn("Generation")
			imgui.TableSetupColumn("Components")
			imgui.TableHeadersRow()

			names := componentNames(scene.Registry())
			for i, id := range matches {
				if vd.maxRows > 0 && i >= vd.maxRows {
					break
				}
				mask, _ := scene.MaskOf(id)

				imgui.TableNextRow()
				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("%d", id.Index()))
				imgui.TableSetColumnIndex(1)
				imgui.Text(fmt.Sprintf("%d", id.Generation()))
				imgui.TableSetColumnIndex(2)
				components := make([]string, 0, mask.Count())
				for cid := range mask.Ids() {
					components = append(components, names[cid])
				}
				imgui.Text(strings.Join(components, ", "))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (vd *ViewDebuggerComponent) toggle(name string, selected bool) {
	if selected {
		vd.selected[name] = true
	} else {
		delete(vd.selected, name)
	}
}

// selectedNames returns the checked component names in sorted order.
func (vd *ViewDebuggerComponent) selectedNames() []string {
	names := make([]string, 0, len(vd.selected))
	for name := range vd.selected {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// view builds the SceneView for the current selection. Names that are no
// longer registered are ignored.
func (vd *ViewDebuggerComponent) view(scene *ecs.Scene) *ecs.SceneView {
	ids := make([]ecs.ComponentId, 0, len(vd.selected))
	for _, name := range vd.selectedNames() {
		if id, ok := scene.Registry().ByName(name); ok {
			ids = append(ids, id)
		}
	}
	return ecs.NewSceneView(scene, ids...)
}
