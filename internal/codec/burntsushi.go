package codec

import (
	"bytes"
	"errors"

	"github.com/BurntSushi/toml"

	"github.com/fortran-tools/fpmeta/internal/manifest"
)

// BurntSushi is a backend built on github.com/BurntSushi/toml.
type BurntSushi struct{}

func (BurntSushi) Name() string { return "burntsushi" }

func (BurntSushi) Parse(data []byte) (map[string]any, error) {
	tree := map[string]any{}
	if _, err := toml.Decode(string(data), &tree); err != nil {
		return nil, err
	}
	return normalizeTree(tree).(map[string]any), nil
}

func (BurntSushi) Emit(t *manifest.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(orderedValue(t, burntSushiLeaf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Locate returns the line of a BurntSushi parse error. The library reports a
// byte offset rather than a column, so the column is always zero.
func (BurntSushi) Locate(err error) (int, int) {
	var pe toml.ParseError
	if !errors.As(err, &pe) {
		return 0, 0
	}
	return pe.Position.Line, 0
}
