package manifest

// StringList is a field that accepts either a single string or an array of
// strings in the manifest. It is always held as a list in memory.
type StringList []string

// Manifest is the root of an fpm package manifest.
type Manifest struct {
	Name        string
	Version     string
	License     *string
	Maintainer  StringList
	Author      StringList
	Copyright   *string
	Description *string
	Categories  StringList
	Keywords    []string

	Build   Build
	Install Install
	Library Library

	Executable []Target
	Example    []Target
	Test       []Target

	Dependencies    map[string]Dependency
	DevDependencies map[string]Dependency
	Preprocess      map[string]Preprocess

	// Extra holds top-level keys the schema does not declare.
	Extra map[string]any
}

// Build holds target discovery switches and link settings that propagate to
// dependent projects.
type Build struct {
	AutoTests       bool
	AutoExecutables bool
	AutoExamples    bool
	Link            StringList
	ExternalModules StringList

	Extra map[string]any
}

// Install lists what is exported when the project is installed.
type Install struct {
	Library bool

	Extra map[string]any
}

// Library describes the library target exported by the project.
type Library struct {
	SourceDir  string
	IncludeDir StringList

	Extra map[string]any
}

// TargetKind distinguishes the three target tables. They share a shape and
// differ only in the default source directory.
type TargetKind int

const (
	KindExecutable TargetKind = iota
	KindExample
	KindTest
)

// String returns the manifest key of the target table.
func (k TargetKind) String() string {
	switch k {
	case KindExecutable:
		return "executable"
	case KindExample:
		return "example"
	case KindTest:
		return "test"
	default:
		return "unknown"
	}
}

// DefaultSourceDir returns the source directory used when a target does not
// set source-dir.
func (k TargetKind) DefaultSourceDir() string {
	switch k {
	case KindExample:
		return "example"
	case KindTest:
		return "test"
	default:
		return "app"
	}
}

// Target is an executable, example or test entry.
type Target struct {
	Name         string
	SourceDir    string
	Main         string
	Link         StringList
	Dependencies map[string]Dependency

	Extra map[string]any
}

// Preprocess configures one preprocessor, keyed by its name in the manifest
// (e.g. "cpp").
type Preprocess struct {
	Macros      StringList
	Directories StringList
	Suffixes    StringList

	Extra map[string]any
}

const (
	DefaultVersion    = "0"
	DefaultLibraryDir = "src"
	DefaultIncludeDir = "include"
	DefaultMain       = "main.f90"
)

// New returns a manifest named name with every default applied.
func New(name string) *Manifest {
	return &Manifest{
		Name:    name,
		Version: DefaultVersion,
		Build:   DefaultBuild(),
		Library: DefaultLibrary(),
	}
}

// DefaultBuild returns build settings with automatic discovery enabled.
func DefaultBuild() Build {
	return Build{
		AutoTests:       true,
		AutoExecutables: true,
		AutoExamples:    true,
	}
}

// DefaultLibrary returns the conventional src/include library layout.
func DefaultLibrary() Library {
	return Library{
		SourceDir:  DefaultLibraryDir,
		IncludeDir: StringList{DefaultIncludeDir},
	}
}

// NewTarget returns a target of the given kind with its defaults applied.
func NewTarget(kind TargetKind, name string) Target {
	return Target{
		Name:      name,
		SourceDir: kind.DefaultSourceDir(),
		Main:      DefaultMain,
	}
}
