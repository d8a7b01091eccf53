package debugui

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

var stringerType = reflect.TypeFor[fmt.Stringer]()

// fieldInfo is an exported struct field as the inspector shows it. Pointer
// fields report their element type.
//
// The inspect struct tag tunes a field: `inspect:"-"` hides it and
// `inspect:"readonly"` shows it without an editor.
type fieldInfo struct {
	Name     string
	Index    int
	Type     reflect.Type
	Pointer  bool
	Stringer bool
	ReadOnly bool
}

// Editable reports whether the inspector offers an input widget.
func (f fieldInfo) Editable() bool {
	return !f.ReadOnly && !f.Stringer
}

// fieldCache maps reflect.Type to []fieldInfo.
var fieldCache sync.Map

func fieldsOf(t reflect.Type) []fieldInfo {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]fieldInfo)
	}

	var fields []fieldInfo
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			opts := strings.Split(sf.Tag.Get("inspect"), ",")
			if opts[0] == "-" {
				continue
			}

			ft := sf.Type
			pointer := ft.Kind() == reflect.Pointer
			if pointer {
				ft = ft.Elem()
			}
			fields = append(fields, fieldInfo{
				Name:     sf.Name,
				Index:    i,
				Type:     ft,
				Pointer:  pointer,
				Stringer: sf.Type.Implements(stringerType) || reflect.PointerTo(ft).Implements(stringerType),
				ReadOnly: opts[0] == "readonly",
			})
		}
	}

	cached, _ := fieldCache.LoadOrStore(t, fields)
	return cached.([]fieldInfo)
}
