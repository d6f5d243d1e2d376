package scaffold

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/fortran-tools/fpmeta/internal/codec"
	"github.com/fortran-tools/fpmeta/internal/manifest"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"toml-f", false},
		{"stdlib", false},
		{"my_pkg2", false},
		{"2fast", true},
		{"-dash", true},
		{"has space", true},
		{"", true},
		{strings.Repeat("a", 64), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
		})
	}
}

func TestNewData(t *testing.T) {
	d := NewData("toml-f", Options{})
	if d.Module != "toml_f" {
		t.Errorf("Module = %q, want toml_f", d.Module)
	}
	if !d.Lib || !d.App || !d.Test || d.Example {
		t.Errorf("default sections = lib:%v app:%v test:%v example:%v", d.Lib, d.App, d.Test, d.Example)
	}
	if d.Year == 0 {
		t.Error("Year should not be zero")
	}
	if d.Description == "" {
		t.Error("Description should have a default")
	}

	d = NewData("demo", Options{Example: true})
	if d.Lib || d.App || d.Test || !d.Example {
		t.Errorf("explicit sections not honored: %+v", d)
	}
}

func TestManifest(t *testing.T) {
	m := Manifest("toml-f", Options{Author: "Jane Doe", Maintainer: "jane@example.org", License: "MIT"})

	if m.Version != InitialVersion {
		t.Errorf("Version = %q, want %q", m.Version, InitialVersion)
	}
	if m.License == nil || *m.License != "MIT" {
		t.Errorf("License = %v", m.License)
	}
	if !reflect.DeepEqual(m.Author, manifest.StringList{"Jane Doe"}) {
		t.Errorf("Author = %v", m.Author)
	}
	if m.Copyright == nil || !strings.HasSuffix(*m.Copyright, ", Jane Doe") {
		t.Errorf("Copyright = %v", m.Copyright)
	}
	if !m.Install.Library {
		t.Error("Install.Library = false for a library package")
	}
	if len(m.Executable) != 1 || m.Executable[0].Name != "toml-f" {
		t.Errorf("Executable = %+v", m.Executable)
	}
	if len(m.Test) != 1 || m.Test[0].Main != "check.f90" {
		t.Errorf("Test = %+v", m.Test)
	}
	if m.Example != nil {
		t.Errorf("Example = %+v, want none", m.Example)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestGenerate(t *testing.T) {
	for _, b := range codec.Backends() {
		t.Run(b.Name(), func(t *testing.T) {
			outDir := filepath.Join(t.TempDir(), "toml-f")
			c := codec.New(codec.WithBackend(b))

			result, err := Generate(c, "toml-f", Options{Author: "Jane Doe"}, outDir)
			if err != nil {
				t.Fatalf("Generate() error: %v", err)
			}

			assertFiles(t, result, []string{"README.md", "app/main.f90", "fpm.toml", "src/toml-f.f90", "test/check.f90"})
			if len(result.Warnings) != 0 {
				t.Errorf("Warnings = %v", result.Warnings)
			}

			module := readGenerated(t, outDir, "src/toml-f.f90")
			assertContains(t, module, "module toml_f")
			assertContains(t, module, "end module toml_f")

			app := readGenerated(t, outDir, "app/main.f90")
			assertContains(t, app, "use toml_f, only: say_hello")

			m, err := c.LoadFile(filepath.Join(outDir, ManifestFile))
			if err != nil {
				t.Fatalf("LoadFile error: %v", err)
			}
			if want := Manifest("toml-f", Options{Author: "Jane Doe"}); !reflect.DeepEqual(m, want) {
				t.Errorf("manifest mismatch\n got: %+v\nwant: %+v", m, want)
			}
		})
	}
}

func TestGenerate_AppOnly(t *testing.T) {
	outDir := t.TempDir()
	result, err := Generate(codec.Detect(), "hello", Options{App: true}, outDir)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	assertFiles(t, result, []string{"README.md", "app/main.f90", "fpm.toml"})

	app := readGenerated(t, outDir, "app/main.f90")
	if strings.Contains(app, "use hello") {
		t.Errorf("app-only package must not use a library module:\n%s", app)
	}
	readme := readGenerated(t, outDir, "README.md")
	if strings.Contains(readme, "fpm test") {
		t.Errorf("README mentions tests for a package without tests:\n%s", readme)
	}
}

func TestGenerate_NonEmptyDir(t *testing.T) {
	outDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(outDir, "existing.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Generate(codec.Detect(), "hello", Options{}, outDir); err == nil {
		t.Fatal("expected error for non-empty directory")
	}
	if _, err := os.Stat(filepath.Join(outDir, ManifestFile)); err == nil {
		t.Error("manifest written into a non-empty directory")
	}
}

func TestGenerate_InvalidName(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "bad")
	if _, err := Generate(codec.Detect(), "1bad", Options{}, outDir); err == nil {
		t.Fatal("expected error for invalid name")
	}
	if _, err := os.Stat(outDir); err == nil {
		t.Error("output directory created for an invalid name")
	}
}

func TestGenerate_NoEmitter(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "pkg")
	_, err := Generate(codec.New(), "pkg", Options{}, outDir)
	if !codec.IsKind(err, codec.KindNoBackendAvailable) {
		t.Fatalf("error = %v, want NoBackendAvailable", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, ManifestFile)); err == nil {
		t.Error("manifest written without an emitter")
	}
}

// --- helpers ---

func assertFiles(t *testing.T, result *Result, expected []string) {
	t.Helper()
	got := append([]string(nil), result.Files...)
	sort.Strings(got)
	sort.Strings(expected)
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Files = %v, want %v", got, expected)
	}
}

func readGenerated(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("content does not contain %q.\nContent:\n%s", substr, content)
	}
}
