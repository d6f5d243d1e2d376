// Package config manages user-level settings stored at ~/.fpmeta/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the backend used to parse and emit manifests.
package config
