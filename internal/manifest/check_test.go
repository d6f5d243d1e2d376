package manifest

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(m *Manifest)
		kind   ErrorKind
	}{
		{
			name:   "empty name",
			modify: func(m *Manifest) { m.Name = "" },
			kind:   KindMissingRequiredField,
		},
		{
			name:   "target without name",
			modify: func(m *Manifest) { m.Example = []Target{NewTarget(KindExample, "")} },
			kind:   KindMissingRequiredField,
		},
		{
			name:   "nil dependency",
			modify: func(m *Manifest) { m.Dependencies = map[string]Dependency{"x": nil} },
			kind:   KindNoMatchingVariant,
		},
		{
			name:   "empty git url",
			modify: func(m *Manifest) { m.DevDependencies = map[string]Dependency{"x": GitDependency{}} },
			kind:   KindInvalidValue,
		},
		{
			name:   "empty tag",
			modify: func(m *Manifest) { m.Dependencies = map[string]Dependency{"x": GitDependencyTag{Git: "u"}} },
			kind:   KindInvalidValue,
		},
		{
			name: "empty path in target dependency",
			modify: func(m *Manifest) {
				tt := NewTarget(KindTest, "t")
				tt.Dependencies = map[string]Dependency{"x": LocalDependency{}}
				m.Test = []Target{tt}
			},
			kind: KindInvalidValue,
		},
		{
			name:   "extra shadows declared key",
			modify: func(m *Manifest) { m.Extra = map[string]any{"version": "2"} },
			kind:   KindInvalidValue,
		},
		{
			name:   "build extra shadows alias",
			modify: func(m *Manifest) { m.Build.Extra = map[string]any{"auto-tests": false} },
			kind:   KindInvalidValue,
		},
		{
			name: "preprocess extra shadows declared key",
			modify: func(m *Manifest) {
				m.Preprocess = map[string]Preprocess{"cpp": {Extra: map[string]any{"macros": "X"}}}
			},
			kind: KindInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New("valid")
			tt.modify(m)
			err := m.Validate()
			if !IsKind(err, tt.kind) {
				t.Errorf("Validate() = %v, want kind %s", err, tt.kind)
			}
		})
	}
}

func TestValidate_Valid(t *testing.T) {
	m := New("valid")
	m.Build.Extra = map[string]any{"auto_tests": false}
	m.Dependencies = map[string]Dependency{
		"a": LocalDependency{Path: "../a"},
		"b": GitDependencyRev{Git: "u", Rev: "abc"},
	}
	m.Executable = []Target{NewTarget(KindExecutable, "app")}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}
