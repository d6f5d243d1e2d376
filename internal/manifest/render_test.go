package manifest

import (
	"reflect"
	"testing"
)

func TestManifestTable_KeyOrder(t *testing.T) {
	m := New("hello")
	m.Extra = map[string]any{"zeta": "z", "homepage": "https://example.org"}

	got := m.Table().Keys()
	want := []string{
		"name", "version", "license", "maintainer", "author", "copyright",
		"description", "categories", "keywords", "build", "install", "library",
		"executable", "example", "test", "dependencies", "dev-dependencies",
		"preprocess", "homepage", "zeta",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Keys = %v\nwant %v", got, want)
	}
}

func TestManifestTable_Values(t *testing.T) {
	license := "MIT"
	m := New("hello")
	m.License = &license
	m.Keywords = []string{"toml"}
	m.Build.AutoTests = false

	tbl := m.Table()

	if v, _ := tbl.Get("name"); v != "hello" {
		t.Errorf("name = %v", v)
	}
	if v, _ := tbl.Get("license"); v != "MIT" {
		t.Errorf("license = %v", v)
	}
	if v, ok := tbl.Get("copyright"); !ok || v != nil {
		t.Errorf("copyright = %v, %v; want present and nil", v, ok)
	}
	if v, _ := tbl.Get("keywords"); !reflect.DeepEqual(v, []any{"toml"}) {
		t.Errorf("keywords = %#v", v)
	}
	if v, _ := tbl.Get("author"); !reflect.DeepEqual(v, []any{}) {
		t.Errorf("author = %#v, want empty array", v)
	}

	v, _ := tbl.Get("build")
	build, ok := v.(*Table)
	if !ok {
		t.Fatalf("build = %T, want *Table", v)
	}
	wantBuild := []string{"auto-tests", "auto-executables", "auto-examples", "link", "external-modules"}
	if !reflect.DeepEqual(build.Keys(), wantBuild) {
		t.Errorf("build keys = %v, want %v", build.Keys(), wantBuild)
	}
	if v, _ := build.Get("auto-tests"); v != false {
		t.Errorf("auto-tests = %v, want false", v)
	}

	v, _ = tbl.Get("install")
	if lib, _ := v.(*Table).Get("library"); lib != false {
		t.Errorf("install.library = %v, want false", lib)
	}
}

func TestManifestTable_Dependencies(t *testing.T) {
	m := New("deps")
	m.Dependencies = map[string]Dependency{
		"toml-f":     GitDependencyTag{Git: "https://github.com/toml-f/toml-f", Tag: "v0.2.4"},
		"stdlib":     GitDependencyBranch{Git: "https://github.com/fortran-lang/stdlib", Branch: "stdlib-fpm"},
		"local-util": LocalDependency{Path: "../util"},
	}
	target := NewTarget(KindTest, "check")
	target.Dependencies = map[string]Dependency{"test-drive": GitDependencyRev{Git: "u", Rev: "abc"}}
	m.Test = []Target{target}

	tbl := m.Table()
	v, _ := tbl.Get("dependencies")
	deps := v.(*Table)
	if got, want := deps.Keys(), []string{"local-util", "stdlib", "toml-f"}; !reflect.DeepEqual(got, want) {
		t.Errorf("dependency keys = %v, want %v", got, want)
	}

	tomlf, _ := deps.Get("toml-f")
	if got := tomlf.(*Table).Keys(); !reflect.DeepEqual(got, []string{"git", "tag"}) {
		t.Errorf("toml-f keys = %v", got)
	}
	local, _ := deps.Get("local-util")
	if got := local.(*Table).Keys(); !reflect.DeepEqual(got, []string{"path"}) {
		t.Errorf("local-util keys = %v", got)
	}

	v, _ = tbl.Get("test")
	tests := v.([]any)
	if len(tests) != 1 {
		t.Fatalf("test len = %d", len(tests))
	}
	tt := tests[0].(*Table)
	if got, want := tt.Keys(), []string{"name", "source-dir", "main", "link", "dependencies"}; !reflect.DeepEqual(got, want) {
		t.Errorf("target keys = %v, want %v", got, want)
	}
	if v, _ := tt.Get("source-dir"); v != "test" {
		t.Errorf("source-dir = %v, want test", v)
	}
}

func TestManifestTable_NestedExtra(t *testing.T) {
	m := New("extra")
	m.Build.Extra = map[string]any{
		"auto_tests": false,
		"flags":      map[string]any{"b": "2", "a": "1"},
	}

	v, _ := m.Table().Get("build")
	build := v.(*Table)
	keys := build.Keys()
	if got := keys[len(keys)-2:]; !reflect.DeepEqual(got, []string{"auto_tests", "flags"}) {
		t.Errorf("trailing keys = %v", got)
	}
	flags, _ := build.Get("flags")
	if got := flags.(*Table).Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("flags keys = %v, want sorted", got)
	}
	if v, _ := build.Get("auto-tests"); v != true {
		t.Errorf("auto-tests = %v, want true", v)
	}
}
