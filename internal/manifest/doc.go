// Package manifest defines the fpm package manifest (fpm.toml): its tables,
// defaults, key aliases and the dependency variants. Decode turns a parsed
// generic tree into a Manifest, (*Manifest).Table renders one back into an
// ordered tree for an emitter, and Lint checks a raw tree against the JSON
// schema embedded from schema/fpm.schema.json.
package manifest
