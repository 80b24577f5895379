package debugui

import "reflect"

// FieldLayout is one exported field of a component struct as the inspector
// renders it. Pointer fields are described by their element type.
type FieldLayout struct {
	Name    string
	Index   int
	Type    reflect.Type
	Kind    reflect.Kind
	Pointer bool
}

// FieldLayouts memoizes struct layouts per type. The inspector renders every
// frame, so each component type is walked once.
type FieldLayouts struct {
	byType map[reflect.Type][]FieldLayout
}

func NewFieldLayouts() *FieldLayouts {
	return &FieldLayouts{byType: make(map[reflect.Type][]FieldLayout)}
}

// Of returns the exported fields of t, or nil if t is not a struct.
func (fl *FieldLayouts) Of(t reflect.Type) []FieldLayout {
	if layout, ok := fl.byType[t]; ok {
		return layout
	}
	layout := layoutOf(t)
	fl.byType[t] = layout
	return layout
}

func layoutOf(t reflect.Type) []FieldLayout {
	if t.Kind() != reflect.Struct {
		return nil
	}

	var layout []FieldLayout
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		f := FieldLayout{Name: sf.Name, Index: i, Type: sf.Type}
		if sf.Type.Kind() == reflect.Ptr {
			f.Pointer = true
			f.Type = sf.Type.Elem()
		}
		f.Kind = f.Type.Kind()
		layout = append(layout, f)
	}
	return layout
}
