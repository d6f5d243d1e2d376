// Package codec reads and writes fpm manifests as text. A Codec pairs a
// Parser and an Emitter chosen by the caller (or by Detect) with the schema in
// package manifest: loading parses then decodes, dumping renders, prunes
// empty values and emits.
//
// Backends: GoTOML (github.com/pelletier/go-toml/v2, the default),
// BurntSushi (github.com/BurntSushi/toml) and YAML (go.yaml.in/yaml/v3, for
// conversion only).
package codec
