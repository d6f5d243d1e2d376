package manifest

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestTable_Order(t *testing.T) {
	tbl := NewTable()
	tbl.Set("b", 1)
	tbl.Set("a", 2)
	tbl.Set("c", 3)
	tbl.Set("b", 4)

	if got, want := tbl.Keys(), []string{"b", "a", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys = %v, want %v", got, want)
	}
	if v, _ := tbl.Get("b"); v != 4 {
		t.Errorf("Get(b) = %v, want 4", v)
	}

	if tbl.Len() != 3 {
		t.Errorf("Len = %d, want 3", tbl.Len())
	}
	if _, ok := tbl.Get("missing"); ok {
		t.Error("Get(missing) reported a value")
	}

	keys := tbl.Keys()
	keys[0] = "mutated"
	if tbl.Keys()[0] != "b" {
		t.Error("Keys must return a copy")
	}
}

func TestTable_ZeroValue(t *testing.T) {
	var tbl Table
	tbl.Set("x", true)
	if v, ok := tbl.Get("x"); !ok || v != true {
		t.Errorf("Get(x) = %v, %v", v, ok)
	}
}

func TestTable_MarshalJSON(t *testing.T) {
	inner := NewTable()
	inner.Set("z", "last")
	inner.Set("a", []any{"x", int64(1)})

	tbl := NewTable()
	tbl.Set("name", "hello")
	tbl.Set("unset", nil)
	tbl.Set("nested", inner)

	got, err := json.Marshal(tbl)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want := `{"name":"hello","unset":null,"nested":{"z":"last","a":["x",1]}}`
	if string(got) != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}
}
