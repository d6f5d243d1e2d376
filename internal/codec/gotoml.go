package codec

import (
	"bytes"
	"errors"

	"github.com/pelletier/go-toml/v2"

	"github.com/fortran-tools/fpmeta/internal/manifest"
)

// GoTOML is the default backend, built on github.com/pelletier/go-toml/v2.
type GoTOML struct {
	// IndentTables indents sub-tables under their parent on output.
	IndentTables bool
}

func (GoTOML) Name() string { return "go-toml" }

func (GoTOML) Parse(data []byte) (map[string]any, error) {
	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	if tree == nil {
		tree = map[string]any{}
	}
	return normalizeTree(tree).(map[string]any), nil
}

func (g GoTOML) Emit(t *manifest.Table) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(g.IndentTables)
	if err := enc.Encode(orderedValue(t, nil)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Locate returns the 1-based row and column of a go-toml decode error.
func (GoTOML) Locate(err error) (int, int) {
	var de *toml.DecodeError
	if !errors.As(err, &de) {
		return 0, 0
	}
	return de.Position()
}
