package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

// setupHome points the config directory at a temp dir and resets viper
// after the test.
func setupHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("FPMETA_HOME", dir)
	t.Cleanup(viper.Reset)
	viper.Reset()
	return dir
}

func TestDir_EnvOverride(t *testing.T) {
	dir := setupHome(t)
	if got := Dir(); got != dir {
		t.Errorf("Dir() = %q, want %q", got, dir)
	}
	if got, want := FilePath(), filepath.Join(dir, "config.yaml"); got != want {
		t.Errorf("FilePath() = %q, want %q", got, want)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setupHome(t)
	Load()

	if got := Backend(); got != DefaultBackend {
		t.Errorf("Backend() = %q, want %q", got, DefaultBackend)
	}
	if IndentTables() {
		t.Error("IndentTables() = true, want false")
	}
}

func TestLoad_Env(t *testing.T) {
	setupHome(t)
	t.Setenv("FPMETA_BACKEND", "burntsushi")
	t.Setenv("FPMETA_EMIT_INDENT_TABLES", "true")
	Load()

	if got := Backend(); got != "burntsushi" {
		t.Errorf("Backend() = %q, want burntsushi", got)
	}
	if !IndentTables() {
		t.Error("IndentTables() = false, want true")
	}
}

func TestSet_PersistsToFile(t *testing.T) {
	dir := setupHome(t)
	Load()

	if err := Set(KeyBackend, "yaml"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if got := Get(KeyBackend); got != "yaml" {
		t.Errorf("Get(backend) = %q, want yaml", got)
	}

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("reading config file: %v", err)
	}
	if !strings.Contains(string(data), "backend: yaml") {
		t.Errorf("config file does not contain the backend:\n%s", data)
	}

	// A fresh load reads the value back from disk.
	viper.Reset()
	Load()
	if got := Backend(); got != "yaml" {
		t.Errorf("Backend() after reload = %q, want yaml", got)
	}
}
