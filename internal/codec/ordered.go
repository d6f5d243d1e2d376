package codec

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/fortran-tools/fpmeta/internal/manifest"
)

// orderedValue prepares a tree value for a TOML encoder. Both TOML libraries
// sort map keys but walk struct fields in declaration order, so each table is
// rebuilt as a struct whose fields follow the table's key order. A non-nil
// leaf rewrites scalar values for a particular encoder.
func orderedValue(v any, leaf func(any) any) any {
	switch val := v.(type) {
	case *manifest.Table:
		return orderedStruct(val, leaf)
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = orderedValue(e, leaf)
		}
		return out
	default:
		if leaf != nil {
			return leaf(v)
		}
		return v
	}
}

func orderedStruct(t *manifest.Table, leaf func(any) any) any {
	keys := t.Keys()
	for _, k := range keys {
		if !taggable(k) {
			return orderedMap(t, leaf)
		}
	}

	fields := make([]reflect.StructField, 0, len(keys))
	values := make([]reflect.Value, 0, len(keys))
	for i, k := range keys {
		raw, _ := t.Get(k)
		if raw == nil {
			continue
		}
		v := orderedValue(raw, leaf)
		fields = append(fields, reflect.StructField{
			Name: fmt.Sprintf("F%d", i),
			Type: reflect.TypeOf(v),
			Tag:  reflect.StructTag("toml:" + strconv.Quote(k)),
		})
		values = append(values, reflect.ValueOf(v))
	}

	sv := reflect.New(reflect.StructOf(fields)).Elem()
	for i, v := range values {
		sv.Field(i).Set(v)
	}
	return sv.Interface()
}

// orderedMap is the fallback for keys a struct tag cannot carry. The encoder
// sorts them, which is still deterministic.
func orderedMap(t *manifest.Table, leaf func(any) any) map[string]any {
	out := make(map[string]any, t.Len())
	for _, k := range t.Keys() {
		raw, _ := t.Get(k)
		if raw == nil {
			continue
		}
		out[k] = orderedValue(raw, leaf)
	}
	return out
}

// taggable reports whether key survives as a toml struct tag name. go-toml
// falls back to the Go field name for any tag holding a quote, a backslash or
// a symbol outside its punctuation set, so those keys must take the map path.
func taggable(key string) bool {
	if key == "" || key == "-" {
		return false
	}
	for _, c := range key {
		switch {
		case strings.ContainsRune("!#$%&()*+-./:;<=>?@[]^_{|}~ ", c):
		case !unicode.IsLetter(c) && !unicode.IsDigit(c):
			return false
		}
	}
	return true
}
