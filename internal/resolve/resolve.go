// Package resolve turns human component and folder names into platform IDs.
// Lookups consult the current run's registry first, then fall back to a
// remote metadata query. A name resolves to exactly one ID or the resolution
// fails with a typed error; callers never receive a guess.
package resolve

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mdelgado-io/platformforge/internal/platform"
)

// Registry is the per-run view of components already created or resolved.
type Registry interface {
	// Lookup returns the registered component for name, if any.
	Lookup(name string) (ComponentRef, bool)
}

// ComponentRef is a registered component's identity.
type ComponentRef struct {
	ID   string
	Type string
}

// NotFoundError reports a name with no matching component.
type NotFoundError struct {
	Name string
	Type string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s component named %q found", e.Type, e.Name)
}

// AmbiguousError reports a name matching more than one component. Candidates
// carries the matching IDs so the caller can report them.
type AmbiguousError struct {
	Name       string
	Type       string
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%s name %q is ambiguous: %d matches (%s)",
		e.Type, e.Name, len(e.Candidates), strings.Join(e.Candidates, ", "))
}

// TypeMismatchError reports a registered name whose type differs from the
// requested one.
type TypeMismatchError struct {
	Name string
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("component %q is a %s, not a %s", e.Name, e.Got, e.Want)
}

// Resolver resolves component and folder references for one run.
type Resolver struct {
	client   platform.Client
	registry Registry
}

// New creates a resolver backed by the run's registry and the platform client.
func New(client platform.Client, registry Registry) *Resolver {
	return &Resolver{client: client, registry: registry}
}

// Component resolves name to a component ID of the given type. The run's
// registry wins over the remote account: a component created earlier in the
// same run is always the one referenced.
func (r *Resolver) Component(ctx context.Context, name, componentType string) (string, error) {
	if ref, ok := r.registry.Lookup(name); ok {
		if componentType != "" && ref.Type != componentType {
			return "", &TypeMismatchError{Name: name, Want: componentType, Got: ref.Type}
		}
		return ref.ID, nil
	}

	matches, err := r.client.QueryComponents(ctx, platform.ComponentQuery{
		Name: name,
		Type: componentType,
	})
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", name, err)
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{Name: name, Type: componentType}
	case 1:
		return matches[0].ID, nil
	default:
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.ID
		}
		sort.Strings(ids)
		return "", &AmbiguousError{Name: name, Type: componentType, Candidates: ids}
	}
}

// Folder resolves a folder name or slash-separated path to a folder ID.
// Resolution tries, in order: exact full-path match, full-path suffix match,
// unique leaf-name match. An unresolvable or ambiguous folder is not fatal:
// the component lands in the account root and the returned warning says why.
// Only remote query failures are returned as errors.
func (r *Resolver) Folder(ctx context.Context, name string) (string, string, error) {
	name = strings.Trim(name, "/")
	if name == "" {
		return "", "", nil
	}

	leaf := name
	if i := strings.LastIndex(name, "/"); i >= 0 {
		leaf = name[i+1:]
	}

	folders, err := r.client.QueryFolders(ctx, leaf)
	if err != nil {
		return "", "", fmt.Errorf("querying folder %q: %w", leaf, err)
	}

	if len(folders) == 0 {
		return "", fmt.Sprintf("folder %q not found; using account root", name), nil
	}

	// Exact full path.
	for _, f := range folders {
		if f.FullPath == name {
			return f.ID, "", nil
		}
	}

	// Full-path suffix: "Integrations/Orders" matches "Home/Integrations/Orders".
	var suffixMatches []platform.Folder
	for _, f := range folders {
		if strings.HasSuffix(f.FullPath, "/"+name) {
			suffixMatches = append(suffixMatches, f)
		}
	}
	if len(suffixMatches) == 1 {
		return suffixMatches[0].ID, "", nil
	}
	if len(suffixMatches) > 1 {
		return "", ambiguousFolderWarning(name, suffixMatches), nil
	}

	// Leaf name alone.
	if len(folders) == 1 {
		return folders[0].ID, "", nil
	}
	return "", ambiguousFolderWarning(name, folders), nil
}

func ambiguousFolderWarning(name string, matches []platform.Folder) string {
	paths := make([]string, len(matches))
	for i, f := range matches {
		paths[i] = f.FullPath
	}
	sort.Strings(paths)
	return fmt.Sprintf("folder %q is ambiguous (%s); using account root",
		name, strings.Join(paths, ", "))
}
