package codec

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a CodecError.
type ErrorKind string

const (
	// KindNoBackendAvailable indicates the codec has no parser (load) or no
	// emitter (dump) configured.
	KindNoBackendAvailable ErrorKind = "NO_BACKEND_AVAILABLE"

	// KindMalformedInput indicates the parser rejected the text.
	KindMalformedInput ErrorKind = "MALFORMED_INPUT"
)

// CodecError is returned for failures of the text layer. Schema problems are
// reported as *manifest.SchemaError instead.
type CodecError struct {
	Kind ErrorKind

	// Op is "load" or "dump".
	Op string

	// Backend names the parser or emitter involved, if any.
	Backend string

	// Path is the file being read or written, empty for in-memory input.
	Path string

	// Line and Column locate a syntax error when the backend reports them.
	// Both are 1-based; zero means unknown.
	Line   int
	Column int

	// Err is the backend error, unchanged.
	Err error
}

func (e *CodecError) Error() string {
	switch e.Kind {
	case KindNoBackendAvailable:
		what := "parser"
		if e.Op == "dump" {
			what = "emitter"
		}
		return fmt.Sprintf("%s: no manifest %s available", e.Op, what)
	case KindMalformedInput:
		loc := e.Path
		if e.Line > 0 {
			if loc != "" {
				loc += ":"
			}
			loc += fmt.Sprintf("%d", e.Line)
			if e.Column > 0 {
				loc += fmt.Sprintf(":%d", e.Column)
			}
		}
		if loc != "" {
			loc += ": "
		}
		return fmt.Sprintf("%smalformed manifest (%s): %v", loc, e.Backend, e.Err)
	default:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
}

func (e *CodecError) Unwrap() error { return e.Err }

// IsKind reports whether err is, or wraps, a CodecError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ce *CodecError
	return errors.As(err, &ce) && ce.Kind == kind
}
