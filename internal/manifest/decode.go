package manifest

import (
	"fmt"
	"sort"
)

// Decode builds a Manifest from a generic tree as produced by a TOML parser.
// Missing optional keys take their defaults, string-or-list keys are
// normalized, dependency tables are resolved to their variant, and undeclared
// keys are kept in the Extra map of the table they appear in.
//
// The returned error is a *SchemaError.
func Decode(tree map[string]any) (*Manifest, error) {
	r := newReader(manifestEntity, tree, "")

	m := &Manifest{
		Name:        r.requiredString("name"),
		Version:     r.stringOr("version", DefaultVersion),
		License:     r.optionalString("license"),
		Maintainer:  r.stringList("maintainer", nil),
		Author:      r.stringList("author", nil),
		Copyright:   r.optionalString("copyright"),
		Description: r.optionalString("description"),
		Categories:  r.stringList("categories", nil),
		Keywords:    r.strictList("keywords"),
	}
	if r.err != nil {
		return nil, r.err
	}

	var err error
	if m.Build, err = decodeBuild(r.table("build")); err != nil {
		return nil, err
	}
	if m.Install, err = decodeInstall(r.table("install")); err != nil {
		return nil, err
	}
	if m.Library, err = decodeLibrary(r.table("library")); err != nil {
		return nil, err
	}
	for _, kind := range []TargetKind{KindExecutable, KindExample, KindTest} {
		raws, path := r.tables(kind.String())
		targets, err := decodeTargets(kind, raws, path)
		if err != nil {
			return nil, err
		}
		switch kind {
		case KindExecutable:
			m.Executable = targets
		case KindExample:
			m.Example = targets
		case KindTest:
			m.Test = targets
		}
	}
	if m.Dependencies, err = decodeDependencies(r.table("dependencies")); err != nil {
		return nil, err
	}
	if m.DevDependencies, err = decodeDependencies(r.table("dev_dependencies")); err != nil {
		return nil, err
	}
	if m.Preprocess, err = decodePreprocess(r.table("preprocess")); err != nil {
		return nil, err
	}
	if r.err != nil {
		return nil, r.err
	}

	m.Extra = r.extra()

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeBuild(raw map[string]any, path string) (Build, error) {
	r := newReader(buildEntity, raw, path)
	b := Build{
		AutoTests:       r.boolOr("auto_tests", true),
		AutoExecutables: r.boolOr("auto_executables", true),
		AutoExamples:    r.boolOr("auto_examples", true),
		Link:            r.stringList("link", nil),
		ExternalModules: r.stringList("external_modules", nil),
		Extra:           r.extra(),
	}
	return b, r.err
}

func decodeInstall(raw map[string]any, path string) (Install, error) {
	r := newReader(installEntity, raw, path)
	i := Install{
		Library: r.boolOr("library", false),
		Extra:   r.extra(),
	}
	return i, r.err
}

func decodeLibrary(raw map[string]any, path string) (Library, error) {
	r := newReader(libraryEntity, raw, path)
	l := Library{
		SourceDir:  r.stringOr("source_dir", DefaultLibraryDir),
		IncludeDir: r.stringList("include_dir", StringList{DefaultIncludeDir}),
		Extra:      r.extra(),
	}
	return l, r.err
}

func decodeTargets(kind TargetKind, raws []map[string]any, path string) ([]Target, error) {
	if len(raws) == 0 {
		return nil, nil
	}
	targets := make([]Target, 0, len(raws))
	for i, raw := range raws {
		p := index(path, i)
		r := newReader(targetEntity, raw, p)
		r.entityName = kind.String()
		t := Target{
			Name:      r.requiredString("name"),
			SourceDir: r.stringOr("source_dir", kind.DefaultSourceDir()),
			Main:      r.stringOr("main", DefaultMain),
			Link:      r.stringList("link", nil),
			Extra:     r.extra(),
		}
		if r.err != nil {
			return nil, r.err
		}
		deps, depsPath := r.table("dependencies")
		var err error
		if t.Dependencies, err = decodeDependencies(deps, depsPath); err != nil {
			return nil, err
		}
		if r.err != nil {
			return nil, r.err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

func decodeDependencies(raw map[string]any, path string) (map[string]Dependency, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	deps := make(map[string]Dependency, len(raw))
	for _, name := range sortedKeys(raw) {
		d, err := ResolveDependency(raw[name], join(path, name))
		if err != nil {
			return nil, err
		}
		deps[name] = d
	}
	return deps, nil
}

func decodePreprocess(raw map[string]any, path string) (map[string]Preprocess, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]Preprocess, len(raw))
	for _, name := range sortedKeys(raw) {
		p := join(path, name)
		tbl, ok := raw[name].(map[string]any)
		if !ok {
			return nil, &SchemaError{
				Kind:   KindInvalidValue,
				Entity: preprocessEntity.Name,
				Path:   path,
				Field:  name,
				Got:    "expected table, got " + typeName(raw[name]),
			}
		}
		r := newReader(preprocessEntity, tbl, p)
		out[name] = Preprocess{
			Macros:      r.stringList("macros", nil),
			Directories: r.stringList("directories", nil),
			Suffixes:    r.stringList("suffixes", nil),
			Extra:       r.extra(),
		}
		if r.err != nil {
			return nil, r.err
		}
	}
	return out, nil
}

// reader pulls declared fields out of one raw table. The first failure is
// kept in err and later calls become no-ops returning zero values.
type reader struct {
	ent        *entity
	entityName string
	raw        map[string]any
	path       string
	err        error
}

func newReader(ent *entity, raw map[string]any, path string) *reader {
	return &reader{ent: ent, entityName: ent.Name, raw: raw, path: path}
}

func (r *reader) fail(kind ErrorKind, key, got string) {
	if r.err != nil {
		return
	}
	r.err = &SchemaError{
		Kind:   kind,
		Entity: r.entityName,
		Path:   r.path,
		Field:  key,
		Got:    got,
	}
}

func (r *reader) lookup(name string) (string, any, bool) {
	key := r.ent.key(name)
	if r.err != nil {
		return key, nil, false
	}
	v, ok := r.raw[key]
	return key, v, ok
}

func (r *reader) requiredString(name string) string {
	key, v, ok := r.lookup(name)
	if !ok {
		r.fail(KindMissingRequiredField, key, "")
		return ""
	}
	s, isString := v.(string)
	switch {
	case !isString:
		r.fail(KindInvalidValue, key, "expected string, got "+typeName(v))
	case s == "":
		r.fail(KindInvalidValue, key, "must not be empty")
	}
	return s
}

func (r *reader) stringOr(name, def string) string {
	key, v, ok := r.lookup(name)
	if !ok {
		return def
	}
	s, isString := v.(string)
	if !isString {
		r.fail(KindInvalidValue, key, "expected string, got "+typeName(v))
	}
	return s
}

func (r *reader) optionalString(name string) *string {
	key, v, ok := r.lookup(name)
	if !ok {
		return nil
	}
	s, isString := v.(string)
	if !isString {
		r.fail(KindInvalidValue, key, "expected string, got "+typeName(v))
		return nil
	}
	return &s
}

func (r *reader) boolOr(name string, def bool) bool {
	key, v, ok := r.lookup(name)
	if !ok {
		return def
	}
	b, isBool := v.(bool)
	if !isBool {
		r.fail(KindInvalidValue, key, "expected boolean, got "+typeName(v))
	}
	return b
}

// stringList reads a string-or-list field.
func (r *reader) stringList(name string, def StringList) StringList {
	key, v, ok := r.lookup(name)
	if !ok {
		return def
	}
	if s, isString := v.(string); isString {
		return StringList{s}
	}
	list, err := toStrings(v)
	if err != nil {
		r.fail(KindInvalidValue, key, err.Error())
		return nil
	}
	return list
}

// strictList reads a field that only accepts an array of strings.
func (r *reader) strictList(name string) []string {
	key, v, ok := r.lookup(name)
	if !ok {
		return nil
	}
	list, err := toStrings(v)
	if err != nil {
		r.fail(KindInvalidValue, key, err.Error())
		return nil
	}
	return list
}

// table returns a nested table and its path. An absent key yields a nil map.
func (r *reader) table(name string) (map[string]any, string) {
	key, v, ok := r.lookup(name)
	path := join(r.path, key)
	if !ok {
		return nil, path
	}
	tbl, isTable := v.(map[string]any)
	if !isTable {
		r.fail(KindInvalidValue, key, "expected table, got "+typeName(v))
		return nil, path
	}
	return tbl, path
}

// tables returns an array of tables and its path.
func (r *reader) tables(name string) ([]map[string]any, string) {
	key, v, ok := r.lookup(name)
	path := join(r.path, key)
	if !ok {
		return nil, path
	}
	switch list := v.(type) {
	case []map[string]any:
		return list, path
	case []any:
		out := make([]map[string]any, len(list))
		for i, e := range list {
			tbl, isTable := e.(map[string]any)
			if !isTable {
				r.fail(KindInvalidValue, key, fmt.Sprintf("element %d: expected table, got %s", i, typeName(e)))
				return nil, path
			}
			out[i] = tbl
		}
		return out, path
	default:
		r.fail(KindInvalidValue, key, "expected array of tables, got "+typeName(v))
		return nil, path
	}
}

// extra collects the keys the entity does not declare.
func (r *reader) extra() map[string]any {
	var out map[string]any
	for k, v := range r.raw {
		if r.ent.declares(k) {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		out[k] = v
	}
	return out
}

func toStrings(v any) ([]string, error) {
	switch list := v.(type) {
	case []string:
		if len(list) == 0 {
			return nil, nil
		}
		return append([]string(nil), list...), nil
	case []any:
		if len(list) == 0 {
			return nil, nil
		}
		out := make([]string, len(list))
		for i, e := range list {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("element %d: expected string, got %s", i, typeName(e))
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected array of strings, got %s", typeName(v))
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// typeName describes a decoded value in TOML terms.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nothing"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case float32, float64:
		return "float"
	case []any, []string, []map[string]any:
		return "array"
	case map[string]any:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}
