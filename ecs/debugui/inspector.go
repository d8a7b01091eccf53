package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
)

func NewInspectorComponent(title string, value func() any) InspectorComponent {
	return InspectorComponent{Title: title, Value: value}
}

func (ci *InspectorComponent) Render() {
	if !imgui.BeginV(ci.Title, nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	val := reflect.ValueOf(ci.Value())
	if val.Kind() != reflect.Pointer || val.IsNil() {
		imgui.Text("Nothing to inspect")
		imgui.End()
		return
	}
	val = val.Elem()

	imgui.Text(val.Type().String())
	imgui.Separator()
	ci.renderFields(val)

	imgui.End()
}

func (ci *InspectorComponent) renderFields(val reflect.Value) {
	for _, field := range fieldsOf(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.Pointer && !fieldVal.IsNil() {
			fieldVal = fieldVal.Elem()
		}
		ci.renderField(field.Name, fieldVal, field)
	}
}

func (ci *InspectorComponent) renderField(name string, val reflect.Value, field fieldInfo) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	if field.Pointer && val.Kind() == reflect.Pointer && val.IsNil() {
		imgui.Text(fmt.Sprintf("%s: nil", name))
		return
	}

	if !field.Editable() && (field.Stringer || val.Kind() != reflect.Struct) {
		imgui.Text(fmt.Sprintf("%s: %s", name, describe(val)))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		label(name)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		label(name)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 && val.CanSet() {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		label(name)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetFloat(float64(v))
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
			ci.renderFields(val)
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

func label(name string) {
	imgui.Text(fmt.Sprintf("%s:", name))
	imgui.SameLine()
	imgui.SetNextItemWidth(150)
}

// describe formats val through its String method, using the pointer
// receiver when only that one exists.
func describe(val reflect.Value) string {
	if s, ok := val.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	if val.CanAddr() {
		if s, ok := val.Addr().Interface().(fmt.Stringer); ok {
			return s.String()
		}
	}
	return fmt.Sprintf("%v", val.Interface())
}
