package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scene/ecs"
)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{selectedEntityId: noEntity, layouts: NewFieldLayouts()}
}

// Render shows every component of the selected entity. Edits are written
// straight into the component pool.
func (ci *ComponentInspectorComponent) Render(scene *ecs.Scene, selectedEntityId ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selectedEntityId = selectedEntityId

	if !ci.selectedEntityId.IsValid() {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	if !scene.Alive(ci.selectedEntityId) {
		imgui.Text(fmt.Sprintf("Entity %s is no longer alive", ci.selectedEntityId))
		imgui.End()
		return
	}

	mask, _ := scene.MaskOf(ci.selectedEntityId)
	imgui.Text(fmt.Sprintf("Entity: %s", ci.selectedEntityId))
	imgui.Text(fmt.Sprintf("Components: %d", mask.Count()))
	imgui.Separator()

	for _, component := range scene.ComponentsOf(ci.selectedEntityId) {
		val := reflect.ValueOf(component).Elem()
		if imgui.TreeNodeStr(val.Type().String()) {
			ci.renderValue(val)
			imgui.TreePop()
		}
	}

	imgui.End()
}

func (ci *ComponentInspectorComponent) renderValue(val reflect.Value) {
	if val.Kind() != reflect.Struct {
		ci.renderField("value", val, FieldLayout{Type: val.Type(), Kind: val.Kind()})
		return
	}

	if ci.layouts == nil {
		ci.layouts = NewFieldLayouts()
	}
	for _, field := range ci.layouts.Of(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.Pointer && !fieldVal.IsNil() {
			fieldVal = fieldVal.Elem()
		}
		ci.renderField(field.Name, fieldVal, field)
	}
}

func (ci *ComponentInspectorComponent) renderField(name string, val reflect.Value, field FieldLayout) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	if field.Pointer && val.Kind() == reflect.Ptr && val.IsNil() {
		imgui.Text(fmt.Sprintf("%s: nil", name))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) {
			setInt(val, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 {
			setUint(val, uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) {
			setFloat(val, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			ci.renderValue(val)
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		if val.CanInterface() {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		} else {
			imgui.Text(fmt.Sprintf("%s: <%s>", name, val.Type()))
		}
	}
}

// setInt stores v into an integer field, ignoring values that would overflow it.
func setInt(field reflect.Value, v int64) bool {
	if !field.CanSet() || field.OverflowInt(v) {
		return false
	}
	field.SetInt(v)
	return true
}

func setUint(field reflect.Value, v uint64) bool {
	if !field.CanSet() || field.OverflowUint(v) {
		return false
	}
	field.SetUint(v)
	return true
}

func setFloat(field reflect.Value, v float64) bool {
	if !field.CanSet() || field.OverflowFloat(v) {
		return false
	}
	field.SetFloat(v)
	return true
}
