package codec

import (
	"fmt"

	"github.com/fortran-tools/fpmeta/internal/manifest"
)

// Parser turns manifest text into a generic tree of maps, slices and
// scalars.
type Parser interface {
	Name() string
	Parse(data []byte) (map[string]any, error)
}

// Emitter turns an ordered tree into manifest text.
type Emitter interface {
	Name() string
	Emit(t *manifest.Table) ([]byte, error)
}

// locator is implemented by parsers that can place a syntax error in the
// input.
type locator interface {
	Locate(err error) (line, column int)
}

// Backend is a matching Parser and Emitter.
type Backend interface {
	Parser
	Emitter
}

// Backends returns the compiled-in TOML backends in order of preference.
func Backends() []Backend {
	return []Backend{
		GoTOML{},
		BurntSushi{},
	}
}

// Lookup returns the backend registered under name. Besides the TOML
// backends it knows "yaml", which reads and writes the same tree as YAML.
func Lookup(name string) (Backend, error) {
	for _, b := range Backends() {
		if b.Name() == name {
			return b, nil
		}
	}
	if name == (YAML{}).Name() {
		return YAML{}, nil
	}
	return nil, fmt.Errorf("unknown backend %q", name)
}
