package codec

import (
	"reflect"
	"testing"

	"github.com/fortran-tools/fpmeta/internal/manifest"
)

func TestPrune(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
		keep bool
	}{
		{"nil", nil, nil, false},
		{"false kept", false, false, true},
		{"empty string kept", "", "", true},
		{"zero kept", int64(0), int64(0), true},
		{"empty list", []any{}, nil, false},
		{"empty strings", []string{}, nil, false},
		{"list of nils", []any{nil, nil}, nil, false},
		{"list", []any{"a", nil, "b"}, []any{"a", "b"}, true},
		{"empty map", map[string]any{}, nil, false},
		{"nested empty map", map[string]any{"a": map[string]any{"b": []any{}}}, nil, false},
		{"map", map[string]any{"a": nil, "b": 1}, map[string]any{"b": 1}, true},
		{"empty table", manifest.NewTable(), nil, false},
		{"nil table", (*manifest.Table)(nil), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, keep := Prune(tt.in)
			if keep != tt.keep {
				t.Errorf("keep = %v, want %v", keep, tt.keep)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Prune = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestPrune_Table(t *testing.T) {
	deps := manifest.NewTable()
	inner := manifest.NewTable()
	inner.Set("list", []any{})
	deps.Set("inner", inner)

	tbl := manifest.NewTable()
	tbl.Set("name", "x")
	tbl.Set("license", nil)
	tbl.Set("keywords", []any{})
	tbl.Set("deps", deps)
	tbl.Set("library", false)
	tbl.Set("version", "0")

	got, keep := Prune(tbl)
	if !keep {
		t.Fatal("table dropped")
	}
	out := got.(*manifest.Table)
	if want := []string{"name", "library", "version"}; !reflect.DeepEqual(out.Keys(), want) {
		t.Errorf("Keys = %v, want %v", out.Keys(), want)
	}
	if tbl.Len() != 6 {
		t.Error("Prune modified its input")
	}
}
