// Package prompts holds the named system/user prompt templates and renders
// them with caller-supplied values.
//
// A Set is built once at startup (from a YAML file or the embedded default)
// and never changes afterwards, so it is safe to share between goroutines.
package prompts

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultTemplates []byte

// Role selects one half of a template.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Template is the system and user text for one operation.
type Template struct {
	System string `yaml:"system"`
	User   string `yaml:"user"`
}

func (t Template) text(role Role) string {
	switch role {
	case RoleSystem:
		return t.System
	case RoleUser:
		return t.User
	default:
		return ""
	}
}

// Set is an immutable collection of templates keyed by operation name.
type Set struct {
	templates map[string]Template
	parsed    map[string]map[Role][]segment
}

// New builds a Set from the given templates. Every non-empty template is
// checked for brace syntax up front so a bad file fails at startup rather
// than on the first request.
func New(templates map[string]Template) (*Set, error) {
	s := &Set{
		templates: make(map[string]Template, len(templates)),
		parsed:    make(map[string]map[Role][]segment, len(templates)),
	}

	for op, t := range templates {
		s.templates[op] = t
		s.parsed[op] = make(map[Role][]segment, 2)

		for _, role := range []Role{RoleSystem, RoleUser} {
			text := t.text(role)
			if text == "" {
				continue
			}
			segs, err := parse(text)
			if err != nil {
				return nil, &MalformedTemplateError{Operation: op, Role: role, Err: err}
			}
			s.parsed[op][role] = segs
		}
	}

	return s, nil
}

// Default returns the template set compiled into the binary.
func Default() (*Set, error) {
	return Parse(defaultTemplates)
}

// Load reads a template set from a YAML file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prompts: load %s: %w", path, err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("prompts: load %s: %w", path, err)
	}

	return s, nil
}

// Parse decodes a YAML mapping of operation name to {system, user}.
func Parse(data []byte) (*Set, error) {
	var raw map[string]Template
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("prompts: parse: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("prompts: parse: no templates defined")
	}

	return New(raw)
}

// Operations returns the operation names in sorted order.
func (s *Set) Operations() []string {
	ops := make([]string, 0, len(s.templates))
	for op := range s.templates {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

// Lookup returns the raw template for an operation.
func (s *Set) Lookup(op string) (Template, bool) {
	t, ok := s.templates[op]
	return t, ok
}

// Require reports every listed operation that lacks a system or user
// template. A nil result means the set can serve all of them.
func (s *Set) Require(ops ...string) error {
	var errs []error
	for _, op := range ops {
		for _, role := range []Role{RoleSystem, RoleUser} {
			if _, err := s.segments(op, role); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Placeholders lists the distinct placeholder names a template references,
// in order of first appearance.
func (s *Set) Placeholders(op string, role Role) ([]string, error) {
	segs, err := s.segments(op, role)
	if err != nil {
		return nil, err
	}
	return names(segs), nil
}

// Resolve renders the template for op and role, substituting values into
// its placeholders. Non-string values are formatted with fmt.Sprint.
func (s *Set) Resolve(op string, role Role, values map[string]any) (string, error) {
	segs, err := s.segments(op, role)
	if err != nil {
		return "", err
	}

	var missing []string
	for _, name := range names(segs) {
		if _, ok := values[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return "", &MissingPlaceholderError{Operation: op, Role: role, Names: missing}
	}

	return render(segs, values), nil
}

func (s *Set) segments(op string, role Role) ([]segment, error) {
	byRole, ok := s.parsed[op]
	if !ok {
		return nil, &TemplateNotFoundError{Operation: op, Role: role}
	}
	segs, ok := byRole[role]
	if !ok {
		return nil, &TemplateNotFoundError{Operation: op, Role: role}
	}
	return segs, nil
}
