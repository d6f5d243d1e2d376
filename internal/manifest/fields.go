package manifest

// field is one declared key of an entity. Name is the identifier used in code;
// Alias, when set, is the only key accepted and written in the manifest.
type field struct {
	Name     string
	Alias    string
	Required bool
}

// Key returns the manifest key of the field.
func (f field) Key() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

// entity is the ordered field table of one manifest table. The order is the
// emission order.
type entity struct {
	Name   string
	Fields []field
}

// key returns the manifest key for the named field. It panics on an unknown
// name since that is a programming error in this package.
func (e *entity) key(name string) string {
	for _, f := range e.Fields {
		if f.Name == name {
			return f.Key()
		}
	}
	panic("manifest: " + e.Name + " has no field " + name)
}

// declares reports whether key is a declared manifest key of the entity.
func (e *entity) declares(key string) bool {
	for _, f := range e.Fields {
		if f.Key() == key {
			return true
		}
	}
	return false
}

var manifestEntity = &entity{
	Name: "manifest",
	Fields: []field{
		{Name: "name", Required: true},
		{Name: "version"},
		{Name: "license"},
		{Name: "maintainer"},
		{Name: "author"},
		{Name: "copyright"},
		{Name: "description"},
		{Name: "categories"},
		{Name: "keywords"},
		{Name: "build"},
		{Name: "install"},
		{Name: "library"},
		{Name: "executable"},
		{Name: "example"},
		{Name: "test"},
		{Name: "dependencies"},
		{Name: "dev_dependencies", Alias: "dev-dependencies"},
		{Name: "preprocess"},
	},
}

var buildEntity = &entity{
	Name: "build",
	Fields: []field{
		{Name: "auto_tests", Alias: "auto-tests"},
		{Name: "auto_executables", Alias: "auto-executables"},
		{Name: "auto_examples", Alias: "auto-examples"},
		{Name: "link"},
		{Name: "external_modules", Alias: "external-modules"},
	},
}

var installEntity = &entity{
	Name: "install",
	Fields: []field{
		{Name: "library"},
	},
}

var libraryEntity = &entity{
	Name: "library",
	Fields: []field{
		{Name: "source_dir", Alias: "source-dir"},
		{Name: "include_dir", Alias: "include-dir"},
	},
}

var targetEntity = &entity{
	Name: "target",
	Fields: []field{
		{Name: "name", Required: true},
		{Name: "source_dir", Alias: "source-dir"},
		{Name: "main"},
		{Name: "link"},
		{Name: "dependencies"},
	},
}

var preprocessEntity = &entity{
	Name: "preprocess",
	Fields: []field{
		{Name: "macros"},
		{Name: "directories"},
		{Name: "suffixes"},
	},
}
