package manifest

import "fmt"

// Validate checks the invariants a Manifest must hold before it is written:
// non-empty names, no nil dependencies, and no Extra key shadowing a declared
// key. Decode always returns manifests that pass.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return &SchemaError{Kind: KindMissingRequiredField, Entity: manifestEntity.Name, Field: "name"}
	}
	if err := checkExtra(manifestEntity, "", m.Extra); err != nil {
		return err
	}
	if err := checkExtra(buildEntity, "build", m.Build.Extra); err != nil {
		return err
	}
	if err := checkExtra(installEntity, "install", m.Install.Extra); err != nil {
		return err
	}
	if err := checkExtra(libraryEntity, "library", m.Library.Extra); err != nil {
		return err
	}

	for _, kind := range []TargetKind{KindExecutable, KindExample, KindTest} {
		for i, t := range m.targets(kind) {
			path := index(kind.String(), i)
			if t.Name == "" {
				return &SchemaError{Kind: KindMissingRequiredField, Entity: kind.String(), Path: path, Field: "name"}
			}
			if err := checkExtra(targetEntity, path, t.Extra); err != nil {
				return err
			}
			if err := checkDependencies(join(path, "dependencies"), t.Dependencies); err != nil {
				return err
			}
		}
	}

	if err := checkDependencies("dependencies", m.Dependencies); err != nil {
		return err
	}
	if err := checkDependencies("dev-dependencies", m.DevDependencies); err != nil {
		return err
	}
	for name, p := range m.Preprocess {
		if err := checkExtra(preprocessEntity, join("preprocess", name), p.Extra); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manifest) targets(kind TargetKind) []Target {
	switch kind {
	case KindExample:
		return m.Example
	case KindTest:
		return m.Test
	default:
		return m.Executable
	}
}

func checkExtra(ent *entity, path string, extra map[string]any) error {
	for k := range extra {
		if ent.declares(k) {
			return &SchemaError{
				Kind:   KindInvalidValue,
				Entity: ent.Name,
				Path:   path,
				Field:  k,
				Got:    "extra key shadows a declared field",
			}
		}
	}
	return nil
}

func checkDependencies(path string, deps map[string]Dependency) error {
	for name, d := range deps {
		if d == nil {
			return &SchemaError{
				Kind:       KindNoMatchingVariant,
				Entity:     "dependency",
				Path:       join(path, name),
				Candidates: variantNames(dependencyRules),
				Got:        "nil dependency",
			}
		}
		if err := checkDependencyFields(join(path, name), d); err != nil {
			return err
		}
	}
	return nil
}

// checkDependencyFields rejects programmatically built variants with an empty
// required value.
func checkDependencyFields(path string, d Dependency) error {
	var empty string
	switch v := d.(type) {
	case LocalDependency:
		if v.Path == "" {
			empty = "path"
		}
	case GitDependency:
		if v.Git == "" {
			empty = "git"
		}
	case GitDependencyTag:
		if v.Git == "" {
			empty = "git"
		} else if v.Tag == "" {
			empty = "tag"
		}
	case GitDependencyBranch:
		if v.Git == "" {
			empty = "git"
		} else if v.Branch == "" {
			empty = "branch"
		}
	case GitDependencyRev:
		if v.Git == "" {
			empty = "git"
		} else if v.Rev == "" {
			empty = "rev"
		}
	default:
		return fmt.Errorf("%s: unsupported dependency type %T", path, d)
	}
	if empty != "" {
		return &SchemaError{Kind: KindInvalidValue, Entity: "dependency", Path: path, Field: empty, Got: "must not be empty"}
	}
	return nil
}
