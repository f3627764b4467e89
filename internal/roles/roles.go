// Package roles defines the personas a generated prompt can open with.
package roles

import (
	"embed"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed roles/*.md
var rolesFS embed.FS

// DefaultName is the role used when none is given.
const DefaultName = "developer"

// Role is a persona with a markdown prompt prefix.
type Role struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Aliases     []string `yaml:"aliases" json:"aliases"`
	Order       int      `yaml:"order" json:"-"`
	Prefix      string   `yaml:"-" json:"-"`
}

// UnknownError reports a role name that matches no role or alias.
type UnknownError struct {
	Name string
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("unknown role: '%s'. Available: %s", e.Name, strings.Join(Names(), ", "))
}

var registry = mustLoad()

func mustLoad() []Role {
	entries, err := rolesFS.ReadDir("roles")
	if err != nil {
		panic(fmt.Sprintf("reading embedded roles: %v", err))
	}

	roles := make([]Role, 0, len(entries))
	for _, entry := range entries {
		data, err := rolesFS.ReadFile("roles/" + entry.Name())
		if err != nil {
			panic(fmt.Sprintf("reading embedded role %s: %v", entry.Name(), err))
		}
		role, err := parse(string(data))
		if err != nil {
			panic(fmt.Sprintf("parsing embedded role %s: %v", entry.Name(), err))
		}
		roles = append(roles, role)
	}

	slices.SortFunc(roles, func(a, b Role) int { return a.Order - b.Order })
	return roles
}

func parse(raw string) (Role, error) {
	raw = strings.TrimSpace(raw)
	rest, ok := strings.CutPrefix(raw, "---")
	if !ok {
		return Role{}, fmt.Errorf("missing frontmatter")
	}
	frontmatter, body, ok := strings.Cut(rest, "\n---")
	if !ok {
		return Role{}, fmt.Errorf("unterminated frontmatter")
	}

	var role Role
	if err := yaml.Unmarshal([]byte(frontmatter), &role); err != nil {
		return Role{}, fmt.Errorf("invalid frontmatter: %w", err)
	}
	if role.Name == "" {
		return Role{}, fmt.Errorf("role has no name")
	}
	role.Prefix = strings.TrimSpace(body) + "\n"
	return role, nil
}

// All returns the roles in display order.
func All() []Role {
	return slices.Clone(registry)
}

// Names returns the canonical role names in display order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, r := range registry {
		names = append(names, r.Name)
	}
	return names
}

// Default returns the developer role.
func Default() Role {
	r, _ := Parse(DefaultName)
	return r
}

// Parse resolves a role name or alias, ignoring case.
func Parse(name string) (Role, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, r := range registry {
		if r.Name == key || slices.Contains(r.Aliases, key) {
			return r, nil
		}
	}
	return Role{}, &UnknownError{Name: name}
}
