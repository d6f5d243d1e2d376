package manifest

import "sort"

// Table renders the manifest as an ordered generic tree. Declared fields use
// their manifest keys and appear in declaration order; name-keyed tables
// (dependencies, preprocess) and Extra keys are sorted. Nothing is pruned: an
// unset optional is nil and an empty list is an empty []any.
func (m *Manifest) Table() *Table {
	t := manifestEntity.table(map[string]any{
		"name":             m.Name,
		"version":          m.Version,
		"license":          optional(m.License),
		"maintainer":       stringsValue(m.Maintainer),
		"author":           stringsValue(m.Author),
		"copyright":        optional(m.Copyright),
		"description":      optional(m.Description),
		"categories":       stringsValue(m.Categories),
		"keywords":         stringsValue(m.Keywords),
		"build":            m.Build.table(),
		"install":          m.Install.table(),
		"library":          m.Library.table(),
		"executable":       targetsValue(m.Executable),
		"example":          targetsValue(m.Example),
		"test":             targetsValue(m.Test),
		"dependencies":     dependenciesValue(m.Dependencies),
		"dev_dependencies": dependenciesValue(m.DevDependencies),
		"preprocess":       preprocessValue(m.Preprocess),
	}, m.Extra)
	return t
}

func (b Build) table() *Table {
	return buildEntity.table(map[string]any{
		"auto_tests":       b.AutoTests,
		"auto_executables": b.AutoExecutables,
		"auto_examples":    b.AutoExamples,
		"link":             stringsValue(b.Link),
		"external_modules": stringsValue(b.ExternalModules),
	}, b.Extra)
}

func (i Install) table() *Table {
	return installEntity.table(map[string]any{
		"library": i.Library,
	}, i.Extra)
}

func (l Library) table() *Table {
	return libraryEntity.table(map[string]any{
		"source_dir":  l.SourceDir,
		"include_dir": stringsValue(l.IncludeDir),
	}, l.Extra)
}

func (t Target) table() *Table {
	return targetEntity.table(map[string]any{
		"name":         t.Name,
		"source_dir":   t.SourceDir,
		"main":         t.Main,
		"link":         stringsValue(t.Link),
		"dependencies": dependenciesValue(t.Dependencies),
	}, t.Extra)
}

func (p Preprocess) table() *Table {
	return preprocessEntity.table(map[string]any{
		"macros":      stringsValue(p.Macros),
		"directories": stringsValue(p.Directories),
		"suffixes":    stringsValue(p.Suffixes),
	}, p.Extra)
}

// table lays out values in field order under their manifest keys, followed by
// the extra keys in sorted order.
func (e *entity) table(values map[string]any, extra map[string]any) *Table {
	t := NewTable()
	for _, f := range e.Fields {
		t.Set(f.Key(), values[f.Name])
	}
	for _, k := range sortedKeys(extra) {
		if e.declares(k) {
			continue
		}
		t.Set(k, treeValue(extra[k]))
	}
	return t
}

func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func stringsValue(list []string) []any {
	out := make([]any, len(list))
	for i, s := range list {
		out[i] = s
	}
	return out
}

func targetsValue(targets []Target) []any {
	out := make([]any, len(targets))
	for i, t := range targets {
		out[i] = t.table()
	}
	return out
}

func dependenciesValue(deps map[string]Dependency) *Table {
	t := NewTable()
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if d := deps[name]; d != nil {
			t.Set(name, d.table())
		}
	}
	return t
}

func preprocessValue(pp map[string]Preprocess) *Table {
	t := NewTable()
	names := make([]string, 0, len(pp))
	for name := range pp {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t.Set(name, pp[name].table())
	}
	return t
}

// treeValue converts a parsed value held in Extra into tree form: maps become
// key-sorted tables and arrays become []any.
func treeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		t := NewTable()
		for _, k := range sortedKeys(val) {
			t.Set(k, treeValue(val[k]))
		}
		return t
	case []map[string]any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = treeValue(e)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = treeValue(e)
		}
		return out
	case []string:
		return stringsValue(val)
	default:
		return v
	}
}
