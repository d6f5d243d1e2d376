package manifest

import (
	"fmt"
	"sort"
)

// DependencyKind identifies a dependency variant.
type DependencyKind int

const (
	DependencyLocal DependencyKind = iota
	DependencyGit
	DependencyGitTag
	DependencyGitBranch
	DependencyGitRev
)

// String returns the variant name used in error messages.
func (k DependencyKind) String() string {
	switch k {
	case DependencyLocal:
		return "local"
	case DependencyGit:
		return "git"
	case DependencyGitTag:
		return "git+tag"
	case DependencyGitBranch:
		return "git+branch"
	case DependencyGitRev:
		return "git+rev"
	default:
		return "unknown"
	}
}

// Dependency is one of LocalDependency, GitDependency, GitDependencyTag,
// GitDependencyBranch or GitDependencyRev.
type Dependency interface {
	Kind() DependencyKind
	table() *Table
}

// LocalDependency points at another fpm project by relative path.
type LocalDependency struct {
	Path string
}

// GitDependency tracks the default branch of a git repository.
type GitDependency struct {
	Git string
}

// GitDependencyTag pins a git repository to a tag.
type GitDependencyTag struct {
	Git string
	Tag string
}

// GitDependencyBranch follows a named branch of a git repository.
type GitDependencyBranch struct {
	Git    string
	Branch string
}

// GitDependencyRev pins a git repository to a commit.
type GitDependencyRev struct {
	Git string
	Rev string
}

func (LocalDependency) Kind() DependencyKind     { return DependencyLocal }
func (GitDependency) Kind() DependencyKind       { return DependencyGit }
func (GitDependencyTag) Kind() DependencyKind    { return DependencyGitTag }
func (GitDependencyBranch) Kind() DependencyKind { return DependencyGitBranch }
func (GitDependencyRev) Kind() DependencyKind    { return DependencyGitRev }

func (d LocalDependency) table() *Table {
	t := NewTable()
	t.Set("path", d.Path)
	return t
}

func (d GitDependency) table() *Table {
	t := NewTable()
	t.Set("git", d.Git)
	return t
}

func (d GitDependencyTag) table() *Table {
	t := NewTable()
	t.Set("git", d.Git)
	t.Set("tag", d.Tag)
	return t
}

func (d GitDependencyBranch) table() *Table {
	t := NewTable()
	t.Set("git", d.Git)
	t.Set("branch", d.Branch)
	return t
}

func (d GitDependencyRev) table() *Table {
	t := NewTable()
	t.Set("git", d.Git)
	t.Set("rev", d.Rev)
	return t
}

// variantRule maps a set of required keys to a variant constructor. A table
// holding any excluded key does not satisfy the rule.
type variantRule struct {
	kind     DependencyKind
	required []string
	excluded []string
	build    func(v map[string]string) Dependency
}

// dependencyRules is the resolution order, most specific first.
var dependencyRules = []variantRule{
	{
		kind:     DependencyGitTag,
		required: []string{"git", "tag"},
		build:    func(v map[string]string) Dependency { return GitDependencyTag{Git: v["git"], Tag: v["tag"]} },
	},
	{
		kind:     DependencyGitBranch,
		required: []string{"git", "branch"},
		build:    func(v map[string]string) Dependency { return GitDependencyBranch{Git: v["git"], Branch: v["branch"]} },
	},
	{
		kind:     DependencyGitRev,
		required: []string{"git", "rev"},
		build:    func(v map[string]string) Dependency { return GitDependencyRev{Git: v["git"], Rev: v["rev"]} },
	},
	{
		kind:     DependencyGit,
		required: []string{"git"},
		build:    func(v map[string]string) Dependency { return GitDependency{Git: v["git"]} },
	},
	{
		kind:     DependencyLocal,
		required: []string{"path"},
		excluded: []string{"git"},
		build:    func(v map[string]string) Dependency { return LocalDependency{Path: v["path"]} },
	},
}

func (r variantRule) satisfiedBy(raw map[string]any) bool {
	for _, k := range r.required {
		if _, ok := raw[k]; !ok {
			return false
		}
	}
	for _, k := range r.excluded {
		if _, ok := raw[k]; ok {
			return false
		}
	}
	return true
}

// subsumedBy reports whether every key r requires is also required by other.
func (r variantRule) subsumedBy(other variantRule) bool {
	for _, k := range r.required {
		found := false
		for _, o := range other.required {
			if k == o {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func variantNames(rules []variantRule) []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.kind.String()
	}
	return names
}

// ResolveDependency selects the variant described by a dependency table.
//
// The first rule whose required keys are all present wins. Any other
// satisfied rule must require a subset of the winner's keys; two satisfied
// rules that cannot be ranked that way (tag and branch) make the table
// ambiguous. A local dependency excludes git, so git and path together resolve
// to plain git. Keys outside the winning variant are ignored.
func ResolveDependency(raw any, path string) (Dependency, error) {
	tbl, ok := raw.(map[string]any)
	if !ok {
		return nil, &SchemaError{
			Kind:       KindNoMatchingVariant,
			Entity:     "dependency",
			Path:       path,
			Candidates: variantNames(dependencyRules),
			Got:        typeName(raw),
		}
	}

	var matched []variantRule
	for _, r := range dependencyRules {
		if r.satisfiedBy(tbl) {
			matched = append(matched, r)
		}
	}
	if len(matched) == 0 {
		return nil, &SchemaError{
			Kind:       KindNoMatchingVariant,
			Entity:     "dependency",
			Path:       path,
			Candidates: variantNames(dependencyRules),
			Got:        describeKeys(tbl),
		}
	}

	winner := matched[0]
	conflicts := []variantRule{winner}
	for _, r := range matched[1:] {
		if !r.subsumedBy(winner) {
			conflicts = append(conflicts, r)
		}
	}
	if len(conflicts) > 1 {
		return nil, &SchemaError{
			Kind:       KindAmbiguousVariant,
			Entity:     "dependency",
			Path:       path,
			Candidates: variantNames(conflicts),
		}
	}

	values := make(map[string]string, len(winner.required))
	for _, k := range winner.required {
		s, ok := tbl[k].(string)
		if !ok {
			return nil, &SchemaError{
				Kind:   KindInvalidValue,
				Entity: "dependency",
				Path:   path,
				Field:  k,
				Got:    fmt.Sprintf("expected string, got %s", typeName(tbl[k])),
			}
		}
		values[k] = s
	}
	return winner.build(values), nil
}

func describeKeys(tbl map[string]any) string {
	keys := make([]string, 0, len(tbl))
	for k := range tbl {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("keys %v", keys)
}
