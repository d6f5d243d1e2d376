package manifest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a SchemaError. Kinds are strings so they read well in
// logs and JSON output.
type ErrorKind string

const (
	// KindMissingRequiredField indicates a required key is absent.
	KindMissingRequiredField ErrorKind = "MISSING_REQUIRED_FIELD"

	// KindNoMatchingVariant indicates a dependency table matches no variant.
	KindNoMatchingVariant ErrorKind = "NO_MATCHING_VARIANT"

	// KindAmbiguousVariant indicates a dependency table matches variants that
	// the precedence order cannot rank, e.g. both tag and branch.
	KindAmbiguousVariant ErrorKind = "AMBIGUOUS_VARIANT"

	// KindInvalidValue indicates a key holds a value of the wrong type or an
	// empty required string.
	KindInvalidValue ErrorKind = "INVALID_VALUE"
)

// SchemaError reports why a manifest tree could not be turned into a
// Manifest.
type SchemaError struct {
	Kind ErrorKind

	// Entity is the table kind the error occurred in ("manifest", "build",
	// "executable", "dependency", ...).
	Entity string

	// Path locates the offending table, e.g. "test[0].dependencies.toml-f".
	// Empty for the root.
	Path string

	// Field is the manifest key involved, when there is one.
	Field string

	// Candidates lists the dependency variants involved in a variant error.
	Candidates []string

	// Got describes the received value for KindInvalidValue.
	Got string
}

func (e *SchemaError) Error() string {
	loc := e.Entity
	if e.Path != "" {
		loc = e.Path
	}

	switch e.Kind {
	case KindMissingRequiredField:
		return fmt.Sprintf("%s: missing required field %q", loc, e.Field)
	case KindNoMatchingVariant:
		msg := fmt.Sprintf("%s: does not match any dependency variant (%s)", loc, strings.Join(e.Candidates, ", "))
		if e.Got != "" {
			msg += ": got " + e.Got
		}
		return msg
	case KindAmbiguousVariant:
		return fmt.Sprintf("%s: ambiguous dependency, matches %s", loc, strings.Join(e.Candidates, " and "))
	case KindInvalidValue:
		return fmt.Sprintf("%s: invalid value for %q: %s", loc, e.Field, e.Got)
	default:
		return fmt.Sprintf("%s: %s", loc, e.Kind)
	}
}

// IsKind reports whether err is, or wraps, a SchemaError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var se *SchemaError
	return errors.As(err, &se) && se.Kind == kind
}

// join builds a dotted path below parent.
func join(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// index builds an array element path below parent.
func index(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}
