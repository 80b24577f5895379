package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scene/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	Mask           ecs.ComponentMask
	ComponentTypes []string
	ComponentCount int
}

// EntityBrowserCache holds the entity rows of the last rebuild. It is rebuilt
// when the scene's shape changes or on request.
type EntityBrowserCache struct {
	entities      []EntityInfo
	lastShape     sceneShape
	sortColumn    int
	sortAscending bool
}

var noEntity = ecs.NewEntityId(ecs.InvalidIndex, 0)

type sceneShape struct {
	live, rows, components int
}

func shapeOf(scene *ecs.Scene) sceneShape {
	return sceneShape{
		live:       scene.Len(),
		rows:       scene.Rows(),
		components: scene.Registry().Len(),
	}
}

func NewEntityBrowserComponent(maxEntitiesPerPage int) EntityBrowserComponent {
	return EntityBrowserComponent{
		cache: &EntityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
		},
		selectedEntityId:   noEntity,
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowserComponent) Render(scene *ecs.Scene) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.rebuildCacheIfNeeded(scene)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterComponent = nil
	}
	imgui.SameLine()
	if imgui.Button("Refresh") {
		eb.cache.entities = nil
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Slot")
		imgui.TableSetupColumn("Generation")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			sortSpecs.SetSpecsDirty(false)
		}

		filtered := eb.filteredEntities()
		start, end := eb.pageBounds(len(filtered))

		for i := start; i < end; i++ {
			entity := filtered[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID.Index()), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.ID.Generation()))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.ComponentCount))
		}

		imgui.EndTable()
	}

	filtered := eb.filteredEntities()
	if len(filtered) > eb.maxEntitiesPerPage {
		totalPages := eb.totalPages(len(filtered))
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

func (eb *EntityBrowserComponent) totalPages(n int) int {
	if eb.maxEntitiesPerPage <= 0 {
		return 1
	}
	return (n + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
}

func (eb *EntityBrowserComponent) pageBounds(n int) (int, int) {
	if eb.maxEntitiesPerPage <= 0 {
		return 0, n
	}
	if pages := eb.totalPages(n); eb.currentPage >= pages {
		eb.currentPage = max(pages-1, 0)
	}

	start := eb.currentPage * eb.maxEntitiesPerPage
	end := min(start+eb.maxEntitiesPerPage, n)
	return start, end
}

func (eb *EntityBrowserComponent) rebuildCacheIfNeeded(scene *ecs.Scene) {
	if shape := shapeOf(scene); shape != eb.cache.lastShape {
		eb.cache.entities = nil
		eb.cache.lastShape = shape
	}

	if eb.cache.entities == nil {
		eb.rebuildCache(scene)
	}
}

func (eb *EntityBrowserComponent) rebuildCache(scene *ecs.Scene) {
	eb.cache.entities = make([]EntityInfo, 0, scene.Len())
	names := componentNames(scene.Registry())

	for id := range scene.Entities() {
		mask, _ := scene.MaskOf(id)
		componentTypes := make([]string, 0, mask.Count())
		for cid := range mask.Ids() {
			componentTypes = append(componentTypes, names[cid])
		}

		eb.cache.entities = append(eb.cache.entities, EntityInfo{
			ID:             id,
			Mask:           mask,
			ComponentTypes: componentTypes,
			ComponentCount: len(componentTypes),
		})
	}

	eb.sortEntities()
}

// componentNames returns the type names of a registry indexed by component id.
func componentNames(registry *ecs.ComponentRegistry) []string {
	infos := registry.Components()
	names := make([]string, len(infos))
	for _, info := range infos {
		names[info.Id] = info.Name()
	}
	return names
}

func (eb *EntityBrowserComponent) sortEntities() {
	sort.SliceStable(eb.cache.entities, func(i, j int) bool {
		a, b := eb.cache.entities[i], eb.cache.entities[j]
		if !eb.cache.sortAscending {
			a, b = b, a
		}

		switch eb.cache.sortColumn {
		case 0:
			return a.ID.Index() < b.ID.Index()
		case 1:
			return a.ID.Generation() < b.ID.Generation()
		case 2:
			return strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 3:
			return a.ComponentCount < b.ComponentCount
		default:
			return a.ID.Index() < b.ID.Index()
		}
	})
}

func (eb *EntityBrowserComponent) filteredEntities() []EntityInfo {
	if eb.filterText == "" && eb.filterComponent == nil {
		return eb.cache.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.cache.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.cache.entities {
		if eb.filterComponent != nil && !entity.Mask.Has(*eb.filterComponent) {
			continue
		}

		if eb.filterText != "" {
			idStr := entity.ID.String()
			componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

			if !strings.Contains(idStr, filterLower) && !strings.Contains(componentsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

// FilterByComponent restricts the browser to entities that have cid. Nil clears the filter.
func (eb *EntityBrowserComponent) FilterByComponent(cid *ecs.ComponentId) {
	eb.filterComponent = cid
	eb.currentPage = 0
}

func (eb *EntityBrowserComponent) GetSelectedEntity() ecs.EntityId {
	return eb.selectedEntityId
}
