package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
	"time"

	"github.com/fortran-tools/fpmeta/internal/codec"
	"github.com/fortran-tools/fpmeta/internal/manifest"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// ManifestFile is the name of the package manifest written into a new project.
const ManifestFile = "fpm.toml"

// InitialVersion is the version of a freshly generated package.
const InitialVersion = "0.1.0"

var namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// Options selects which parts of a package are generated. With none of Lib,
// App, Test or Example set, a library, an application and a test are created.
type Options struct {
	Lib     bool
	App     bool
	Test    bool
	Example bool

	Author      string
	Maintainer  string
	License     string
	Description string
}

func (o Options) withDefaults() Options {
	if !o.Lib && !o.App && !o.Test && !o.Example {
		o.Lib, o.App, o.Test = true, true, true
	}
	return o
}

// Data holds the template variables available to source templates.
type Data struct {
	Name        string // package name, e.g. "toml-f"
	Module      string // Fortran module name derived from Name, e.g. "toml_f"
	Description string
	Year        int

	Lib     bool
	App     bool
	Test    bool
	Example bool
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// ValidateName checks that name can serve both as a package name and, with
// dashes replaced, as a Fortran module name.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid package name %q: must start with a letter and contain only letters, digits, '-' and '_'", name)
	}
	if len(name) > 63 {
		return fmt.Errorf("invalid package name %q: longer than 63 characters", name)
	}
	return nil
}

// NewData creates template data with derived fields populated.
func NewData(name string, opts Options) *Data {
	opts = opts.withDefaults()
	d := &Data{
		Name:        name,
		Module:      strings.ReplaceAll(name, "-", "_"),
		Description: opts.Description,
		Year:        time.Now().Year(),
		Lib:         opts.Lib,
		App:         opts.App,
		Test:        opts.Test,
		Example:     opts.Example,
	}
	if d.Description == "" {
		d.Description = fmt.Sprintf("A Fortran package named %s", name)
	}
	return d
}

// Manifest returns the manifest of a new package. Only the sections the
// options ask for get targets; automatic discovery stays on for the rest.
func Manifest(name string, opts Options) *manifest.Manifest {
	opts = opts.withDefaults()
	d := NewData(name, opts)

	m := manifest.New(name)
	m.Version = InitialVersion
	m.Description = &d.Description
	if opts.License != "" {
		license := opts.License
		m.License = &license
	}
	if opts.Author != "" {
		m.Author = manifest.StringList{opts.Author}
		copyright := fmt.Sprintf("Copyright %d, %s", d.Year, opts.Author)
		m.Copyright = &copyright
	}
	if opts.Maintainer != "" {
		m.Maintainer = manifest.StringList{opts.Maintainer}
	}
	if opts.Lib {
		m.Install.Library = true
	}
	if opts.App {
		m.Executable = []manifest.Target{manifest.NewTarget(manifest.KindExecutable, name)}
	}
	if opts.Test {
		m.Test = []manifest.Target{manifest.NewTarget(manifest.KindTest, "check")}
		m.Test[0].Main = "check.f90"
	}
	if opts.Example {
		m.Example = []manifest.Target{manifest.NewTarget(manifest.KindExample, "demo")}
		m.Example[0].Main = "demo.f90"
	}
	return m
}

type sourceFile struct {
	template string
	path     func(d *Data) string
	enabled  func(d *Data) bool
}

var sourceFiles = []sourceFile{
	{
		template: "module.f90.tmpl",
		path:     func(d *Data) string { return filepath.Join(manifest.DefaultLibraryDir, d.Name+".f90") },
		enabled:  func(d *Data) bool { return d.Lib },
	},
	{
		template: "main.f90.tmpl",
		path:     inTargetDir(manifest.KindExecutable, manifest.DefaultMain),
		enabled:  func(d *Data) bool { return d.App },
	},
	{
		template: "check.f90.tmpl",
		path:     inTargetDir(manifest.KindTest, "check.f90"),
		enabled:  func(d *Data) bool { return d.Test },
	},
	{
		template: "demo.f90.tmpl",
		path:     inTargetDir(manifest.KindExample, "demo.f90"),
		enabled:  func(d *Data) bool { return d.Example },
	},
	{
		template: "README.md.tmpl",
		path:     func(*Data) string { return "README.md" },
		enabled:  func(*Data) bool { return true },
	},
}

// inTargetDir places file in the default source directory of kind.
func inTargetDir(kind manifest.TargetKind, file string) func(*Data) string {
	return func(*Data) string { return filepath.Join(kind.DefaultSourceDir(), file) }
}

// Generate creates a new package in outputDir: fpm.toml written through c,
// plus Fortran sources rendered from the embedded templates. The generated
// manifest is linted and any findings are returned as warnings.
func Generate(c *codec.Codec, name string, opts Options, outputDir string) (*Result, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	// Check for existing files to prevent accidental overwrites.
	existing, err := os.ReadDir(outputDir)
	if err == nil && len(existing) > 0 {
		return nil, fmt.Errorf("output directory %s is not empty; remove existing files first", outputDir)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	result := &Result{OutputDir: outputDir}

	m := Manifest(name, opts)
	manifestPath := filepath.Join(outputDir, ManifestFile)
	if err := c.DumpFile(m, manifestPath); err != nil {
		return nil, err
	}
	result.Files = append(result.Files, ManifestFile)

	data := NewData(name, opts)
	for _, f := range sourceFiles {
		if !f.enabled(data) {
			continue
		}
		rel := f.path(data)
		if err := render(f.template, data, filepath.Join(outputDir, rel)); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, filepath.ToSlash(rel))
	}

	result.Warnings = lintFile(c, manifestPath)
	return result, nil
}

func render(name string, data *Data, outPath string) error {
	tmplBytes, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return fmt.Errorf("reading template %s: %w", name, err)
	}

	tmpl, err := template.New(name).Parse(string(tmplBytes))
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", outPath, err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return nil
}

// lintFile reads back the written manifest and lints the raw tree.
func lintFile(c *codec.Codec, path string) []string {
	if c.Parser() == nil {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("Could not read back manifest: %v", err)}
	}
	tree, err := c.Parse(raw)
	if err != nil {
		return []string{fmt.Sprintf("Could not parse manifest: %v", err)}
	}
	res, err := manifest.Lint(tree)
	if err != nil {
		return []string{fmt.Sprintf("Could not validate manifest: %v", err)}
	}

	var warnings []string
	for _, issue := range res.Issues {
		msg := issue.Message
		if issue.Path != "" {
			msg = issue.Path + ": " + msg
		}
		warnings = append(warnings, msg)
	}
	return warnings
}
