package orchestrator

import (
	"fmt"
	"sort"
	"strings"
)

// SortComponents orders components dependencies-first: every component
// appears after everything it depends on. Ties are broken by name so the
// order is deterministic for identical plans. A dependency cycle is an
// error naming the stuck components.
func SortComponents(components []ComponentSpec) ([]ComponentSpec, error) {
	byName := make(map[string]ComponentSpec, len(components))
	indegree := make(map[string]int, len(components))
	dependents := make(map[string][]string, len(components))

	for _, c := range components {
		byName[c.Name] = c
		indegree[c.Name] = len(c.Dependencies)
		for _, dep := range c.Dependencies {
			dependents[dep] = append(dependents[dep], c.Name)
		}
	}

	var ready []string
	for name, deg := range indegree {
		if deg == 0 {
			ready = append(ready, name)
		}
	}
	sort.Strings(ready)

	ordered := make([]ComponentSpec, 0, len(components))
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]
		ordered = append(ordered, byName[name])

		var unblocked []string
		for _, dep := range dependents[name] {
			indegree[dep]--
			if indegree[dep] == 0 {
				unblocked = append(unblocked, dep)
			}
		}
		if len(unblocked) > 0 {
			ready = append(ready, unblocked...)
			sort.Strings(ready)
		}
	}

	if len(ordered) != len(components) {
		var stuck []string
		for name, deg := range indegree {
			if deg > 0 {
				stuck = append(stuck, name)
			}
		}
		sort.Strings(stuck)
		return nil, fmt.Errorf("dependency cycle involving: %s", strings.Join(stuck, ", "))
	}

	return ordered, nil
}
