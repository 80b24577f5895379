package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scene/ecs"
)

// PoolInfo is one row of the pool viewer: a component type and how much of its pool is in use.
type PoolInfo struct {
	Id       ecs.ComponentId
	Name     string
	Size     uintptr
	Count    int
	Capacity int
}

func NewPoolViewerComponent() PoolViewerComponent {
	return PoolViewerComponent{
		sortColumn:    3,
		sortAscending: false,
	}
}

// Render draws the component pools and returns the id of a pool clicked this frame.
func (pv *PoolViewerComponent) Render(scene *ecs.Scene) *ecs.ComponentId {
	if !imgui.BeginV("Pool Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	pv.refresh(scene.CollectStats())

	maxCount := 0
	for _, pool := range pv.pools {
		maxCount = max(maxCount, pool.Count)
	}

	var clicked *ecs.ComponentId

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("PoolTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Id")
		imgui.TableSetupColumn("Component")
		imgui.TableSetupColumn("Size")
		imgui.TableSetupColumn("Entities")
		imgui.TableSetupColumn("Capacity")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			pv.sortColumn = int(spec.ColumnIndex())
			pv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			pv.sortPools()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, pool := range pv.pools {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := pv.selectedPool != nil && *pv.selectedPool == pool.Id
			if imgui.SelectableBoolV(fmt.Sprintf("%d", pool.Id), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				id := pool.Id
				clicked = &id
				pv.selectedPool = &id
			}

			imgui.TableNextColumn()
			imgui.Text(pool.Name)

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d B", pool.Size))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", pool.Count))

			if maxCount > 0 {
				barWidth := float32(pool.Count) / float32(maxCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", pool.Capacity))
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}

func (pv *PoolViewerComponent) refresh(stats *ecs.SceneStats) {
	pv.pools = pv.pools[:0]
	for _, c := range stats.Components {
		pv.pools = append(pv.pools, PoolInfo{
			Id:       c.Id,
			Name:     c.Name,
			Size:     c.Size,
			Count:    c.Count,
			Capacity: c.Capacity,
		})
	}
	pv.sortPools()
}

func (pv *PoolViewerComponent) sortPools() {
	sort.SliceStable(pv.pools, func(i, j int) bool {
		a, b := pv.pools[i], pv.pools[j]
		if !pv.sortAscending {
			a, b = b, a
		}

		switch pv.sortColumn {
		case 0:
			return a.Id < b.Id
		case 1:
			return a.Name < b.Name
		case 2:
			return a.Size < b.Size
		case 4:
			return a.Capacity < b.Capacity
		default:
			return a.Count < b.Count
		}
	})
}
