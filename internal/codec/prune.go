package codec

import "github.com/fortran-tools/fpmeta/internal/manifest"

// Prune removes absent values, empty sequences and empty tables from a tree,
// bottom-up: a table or sequence that is empty only after its children were
// pruned is removed too. false, "" and 0 are kept.
//
// The second result is false when v itself should be dropped from its parent.
func Prune(v any) (any, bool) {
	switch val := v.(type) {
	case nil:
		return nil, false
	case *manifest.Table:
		if val == nil {
			return nil, false
		}
		out := manifest.NewTable()
		for _, k := range val.Keys() {
			child, _ := val.Get(k)
			if p, keep := Prune(child); keep {
				out.Set(k, p)
			}
		}
		if out.Len() == 0 {
			return nil, false
		}
		return out, true
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			if p, keep := Prune(child); keep {
				out[k] = p
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	case []any:
		out := make([]any, 0, len(val))
		for _, child := range val {
			if p, keep := Prune(child); keep {
				out = append(out, p)
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	case []string:
		if len(val) == 0 {
			return nil, false
		}
		return val, true
	default:
		return v, true
	}
}
