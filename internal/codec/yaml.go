package codec

import (
	"fmt"

	"go.yaml.in/yaml/v3"

	"github.com/fortran-tools/fpmeta/internal/manifest"
)

// YAML reads and writes the manifest tree as YAML. It is not a TOML backend
// and is never picked by Detect; it serves conversion and inspection.
type YAML struct{}

func (YAML) Name() string { return "yaml" }

func (YAML) Parse(data []byte) (map[string]any, error) {
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	if tree == nil {
		tree = map[string]any{}
	}
	return normalizeYAML(tree).(map[string]any), nil
}

func (YAML) Emit(t *manifest.Table) ([]byte, error) {
	node, err := yamlNode(t)
	if err != nil {
		return nil, err
	}
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{node}}
	return yaml.Marshal(doc)
}

// yamlNode builds a node tree so mappings keep the table's key order.
func yamlNode(v any) (*yaml.Node, error) {
	switch val := v.(type) {
	case *manifest.Table:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range val.Keys() {
			raw, _ := val.Get(k)
			if raw == nil {
				continue
			}
			child, err := yamlNode(raw)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
			n.Content = append(n.Content, key, child)
		}
		return n, nil
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i, e := range val {
			child, err := yamlNode(e)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			n.Content = append(n.Content, child)
		}
		return n, nil
	default:
		n := &yaml.Node{}
		if err := n.Encode(val); err != nil {
			return nil, err
		}
		return n, nil
	}
}

// normalizeYAML recursively converts YAML-decoded values to the shapes the
// TOML backends produce: integers become int64 and non-string map keys are
// formatted as strings.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, e := range val {
			m[k] = normalizeYAML(e)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, e := range val {
			m[fmt.Sprint(k)] = normalizeYAML(e)
		}
		return m
	case []any:
		a := make([]any, len(val))
		for i, e := range val {
			a[i] = normalizeYAML(e)
		}
		return a
	case int:
		return int64(val)
	default:
		return val
	}
}
