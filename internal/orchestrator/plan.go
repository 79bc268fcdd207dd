package orchestrator

import (
	"fmt"

	"github.com/mdelgado-io/platformforge/internal/assemble"
)

// Plan is the top-level build request loaded from JSON.
type Plan struct {
	Version    int             `json:"version"`
	FolderName string          `json:"folder_name,omitempty"`
	Components []ComponentSpec `json:"components"`
}

// ComponentSpec is one component to build. Dependencies name other
// components in the same plan that must exist before this one is assembled.
type ComponentSpec struct {
	Name         string   `json:"name"`
	Dependencies []string `json:"dependencies,omitempty"`
	assemble.Definition
}

// Validate checks structural plan invariants: unique non-empty names,
// dependencies referencing plan members, and a typed definition per
// component. Cycles are detected later by the sort.
func (p *Plan) Validate() error {
	if len(p.Components) == 0 {
		return fmt.Errorf("plan has no components")
	}

	names := make(map[string]struct{}, len(p.Components))
	for _, c := range p.Components {
		if c.Name == "" {
			return fmt.Errorf("component with empty name")
		}
		if _, dup := names[c.Name]; dup {
			return fmt.Errorf("duplicate component name %q", c.Name)
		}
		names[c.Name] = struct{}{}
	}

	for _, c := range p.Components {
		for _, dep := range c.Dependencies {
			if dep == c.Name {
				return fmt.Errorf("component %q depends on itself", c.Name)
			}
			if _, ok := names[dep]; !ok {
				return fmt.Errorf("component %q depends on unknown component %q", c.Name, dep)
			}
		}
	}
	return nil
}
