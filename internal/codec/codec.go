package codec

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/fortran-tools/fpmeta/internal/manifest"
)

// Codec loads and dumps manifests through an explicitly chosen parser and
// emitter. A Codec is immutable after New and safe for concurrent use.
type Codec struct {
	parser  Parser
	emitter Emitter
	logger  *log.Logger
}

// Option configures a Codec.
type Option func(*Codec)

// WithBackend uses b for both loading and dumping.
func WithBackend(b Backend) Option {
	return func(c *Codec) {
		c.parser = b
		c.emitter = b
	}
}

// WithParser sets the backend used by Load and LoadFile.
func WithParser(p Parser) Option {
	return func(c *Codec) { c.parser = p }
}

// WithEmitter sets the backend used by Dump and DumpFile.
func WithEmitter(e Emitter) Option {
	return func(c *Codec) { c.emitter = e }
}

// WithLogger sets the logger for debug output. Nil keeps the default, which
// discards everything.
func WithLogger(l *log.Logger) Option {
	return func(c *Codec) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a Codec configured by opts. Without a backend option, Load and
// Dump fail with KindNoBackendAvailable.
func New(opts ...Option) *Codec {
	c := &Codec{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Detect returns a Codec using the first compiled-in TOML backend. Options
// are applied afterwards and may override it.
func Detect(opts ...Option) *Codec {
	if backends := Backends(); len(backends) > 0 {
		opts = append([]Option{WithBackend(backends[0])}, opts...)
	}
	return New(opts...)
}

// Parser returns the configured parser, or nil.
func (c *Codec) Parser() Parser { return c.parser }

// Emitter returns the configured emitter, or nil.
func (c *Codec) Emitter() Emitter { return c.emitter }

// Parse runs the configured parser and returns the raw tree. Syntax errors
// are returned as a *CodecError of kind KindMalformedInput.
func (c *Codec) Parse(data []byte) (map[string]any, error) {
	if c.parser == nil {
		return nil, &CodecError{Kind: KindNoBackendAvailable, Op: "load"}
	}
	return c.parse(data, "")
}

// Load parses manifest text and builds a validated Manifest. Schema problems
// are returned as *manifest.SchemaError.
func (c *Codec) Load(data []byte) (*manifest.Manifest, error) {
	if c.parser == nil {
		return nil, &CodecError{Kind: KindNoBackendAvailable, Op: "load"}
	}
	return c.load(data, "")
}

// LoadFile reads and loads the manifest at path. No file access happens when
// the codec has no parser.
func (c *Codec) LoadFile(path string) (*manifest.Manifest, error) {
	if c.parser == nil {
		return nil, &CodecError{Kind: KindNoBackendAvailable, Op: "load", Path: path}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return c.load(data, path)
}

func (c *Codec) load(data []byte, path string) (*manifest.Manifest, error) {
	tree, err := c.parse(data, path)
	if err != nil {
		return nil, err
	}
	m, err := manifest.Decode(tree)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("loaded manifest", "name", m.Name, "parser", c.parser.Name(), "path", path, "bytes", len(data))
	return m, nil
}

func (c *Codec) parse(data []byte, path string) (map[string]any, error) {
	tree, err := c.parser.Parse(data)
	if err != nil {
		ce := &CodecError{
			Kind:    KindMalformedInput,
			Op:      "load",
			Backend: c.parser.Name(),
			Path:    path,
			Err:     err,
		}
		if l, ok := c.parser.(locator); ok {
			ce.Line, ce.Column = l.Locate(err)
		}
		return nil, ce
	}
	return tree, nil
}

// Dump renders m as manifest text. Empty lists, empty tables and unset
// optionals are left out; defaults such as install.library = false are
// written.
func (c *Codec) Dump(m *manifest.Manifest) ([]byte, error) {
	if c.emitter == nil {
		return nil, &CodecError{Kind: KindNoBackendAvailable, Op: "dump"}
	}
	return c.dump(m)
}

// DumpFile writes m to path. No file is created when the codec has no emitter
// or m fails validation.
func (c *Codec) DumpFile(m *manifest.Manifest, path string) error {
	if c.emitter == nil {
		return &CodecError{Kind: KindNoBackendAvailable, Op: "dump", Path: path}
	}
	data, err := c.dump(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	c.logger.Debug("wrote manifest", "name", m.Name, "path", path, "bytes", len(data))
	return nil
}

func (c *Codec) dump(m *manifest.Manifest) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	pruned, _ := Prune(m.Table())
	tree, ok := pruned.(*manifest.Table)
	if !ok {
		tree = manifest.NewTable()
	}
	data, err := c.emitter.Emit(tree)
	if err != nil {
		return nil, fmt.Errorf("emitting manifest with %s: %w", c.emitter.Name(), err)
	}
	c.logger.Debug("rendered manifest", "name", m.Name, "emitter", c.emitter.Name(), "bytes", len(data))
	return data, nil
}
