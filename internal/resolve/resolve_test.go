package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mdelgado-io/platformforge/internal/platform"
)

type fakeRegistry map[string]ComponentRef

func (r fakeRegistry) Lookup(name string) (ComponentRef, bool) {
	ref, ok := r[name]
	return ref, ok
}

type fakeClient struct {
	components []platform.ComponentMetadata
	folders    []platform.Folder
	queryErr   error
}

func (c *fakeClient) CreateComponent(ctx context.Context, document string) (platform.ComponentMetadata, error) {
	return platform.ComponentMetadata{}, errors.New("not implemented")
}

func (c *fakeClient) QueryComponents(ctx context.Context, q platform.ComponentQuery) ([]platform.ComponentMetadata, error) {
	if c.queryErr != nil {
		return nil, c.queryErr
	}
	var out []platform.ComponentMetadata
	for _, m := range c.components {
		if q.Name != "" && m.Name != q.Name {
			continue
		}
		if q.Type != "" && m.Type != q.Type {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (c *fakeClient) QueryFolders(ctx context.Context, name string) ([]platform.Folder, error) {
	if c.queryErr != nil {
		return nil, c.queryErr
	}
	var out []platform.Folder
	for _, f := range c.folders {
		if f.Name == name {
			out = append(out, f)
		}
	}
	return out, nil
}

func TestComponentRegistryWins(t *testing.T) {
	client := &fakeClient{components: []platform.ComponentMetadata{
		{ID: "remote-1", Name: "Order Map", Type: "transform.map"},
	}}
	registry := fakeRegistry{"Order Map": {ID: "local-1", Type: "transform.map"}}

	got, err := New(client, registry).Component(context.Background(), "Order Map", "transform.map")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got != "local-1" {
		t.Fatalf("registry entry must win over remote, got %q", got)
	}
}

func TestComponentRegistryTypeMismatch(t *testing.T) {
	registry := fakeRegistry{"Order Map": {ID: "local-1", Type: "process"}}
	_, err := New(&fakeClient{}, registry).Component(context.Background(), "Order Map", "transform.map")

	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected TypeMismatchError, got %v", err)
	}
	if mismatch.Got != "process" || mismatch.Want != "transform.map" {
		t.Fatalf("mismatch detail wrong: %+v", mismatch)
	}
}

func TestComponentRemoteSingleMatch(t *testing.T) {
	client := &fakeClient{components: []platform.ComponentMetadata{
		{ID: "remote-1", Name: "Order Map", Type: "transform.map"},
	}}
	got, err := New(client, fakeRegistry{}).Component(context.Background(), "Order Map", "transform.map")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got != "remote-1" {
		t.Fatalf("got %q, want remote-1", got)
	}
}

func TestComponentNotFound(t *testing.T) {
	_, err := New(&fakeClient{}, fakeRegistry{}).Component(context.Background(), "Missing", "process")

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.Name != "Missing" {
		t.Fatalf("detail wrong: %+v", notFound)
	}
}

func TestComponentAmbiguous(t *testing.T) {
	client := &fakeClient{components: []platform.ComponentMetadata{
		{ID: "b", Name: "Dup", Type: "process"},
		{ID: "a", Name: "Dup", Type: "process"},
	}}
	_, err := New(client, fakeRegistry{}).Component(context.Background(), "Dup", "process")

	var ambiguous *AmbiguousError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected AmbiguousError, got %v", err)
	}
	if len(ambiguous.Candidates) != 2 {
		t.Fatalf("expected both candidate IDs, got %v", ambiguous.Candidates)
	}
	if ambiguous.Candidates[0] != "a" || ambiguous.Candidates[1] != "b" {
		t.Fatalf("candidates must be sorted, got %v", ambiguous.Candidates)
	}
	if !strings.Contains(err.Error(), "2 matches") {
		t.Errorf("error must report match count: %v", err)
	}
}

func TestComponentQueryFailure(t *testing.T) {
	client := &fakeClient{queryErr: fmt.Errorf("boom")}
	_, err := New(client, fakeRegistry{}).Component(context.Background(), "X", "process")
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("remote failure must propagate, got %v", err)
	}
}

func TestFolderExactPath(t *testing.T) {
	client := &fakeClient{folders: []platform.Folder{
		{ID: "f1", Name: "Orders", FullPath: "Home/Integrations/Orders"},
		{ID: "f2", Name: "Orders", FullPath: "Home/Archive/Orders"},
	}}
	id, warning, err := New(client, fakeRegistry{}).Folder(context.Background(), "Home/Integrations/Orders")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if id != "f1" || warning != "" {
		t.Fatalf("exact path must resolve cleanly, got id=%q warning=%q", id, warning)
	}
}

func TestFolderSuffixMatch(t *testing.T) {
	client := &fakeClient{folders: []platform.Folder{
		{ID: "f1", Name: "Orders", FullPath: "Home/Integrations/Orders"},
		{ID: "f2", Name: "Orders", FullPath: "Home/Archive/Orders"},
	}}
	id, warning, err := New(client, fakeRegistry{}).Folder(context.Background(), "Integrations/Orders")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if id != "f1" || warning != "" {
		t.Fatalf("suffix match must resolve cleanly, got id=%q warning=%q", id, warning)
	}
}

func TestFolderLeafName(t *testing.T) {
	client := &fakeClient{folders: []platform.Folder{
		{ID: "f1", Name: "Orders", FullPath: "Home/Integrations/Orders"},
	}}
	id, warning, err := New(client, fakeRegistry{}).Folder(context.Background(), "Orders")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if id != "f1" || warning != "" {
		t.Fatalf("unique leaf must resolve cleanly, got id=%q warning=%q", id, warning)
	}
}

func TestFolderAmbiguousFallsBackToRoot(t *testing.T) {
	client := &fakeClient{folders: []platform.Folder{
		{ID: "f1", Name: "Orders", FullPath: "Home/Integrations/Orders"},
		{ID: "f2", Name: "Orders", FullPath: "Home/Archive/Orders"},
	}}
	id, warning, err := New(client, fakeRegistry{}).Folder(context.Background(), "Orders")
	if err != nil {
		t.Fatalf("ambiguity must not be fatal: %v", err)
	}
	if id != "" {
		t.Fatalf("ambiguous folder must fall back to root, got %q", id)
	}
	if !strings.Contains(warning, "ambiguous") || !strings.Contains(warning, "account root") {
		t.Fatalf("warning must explain the fallback: %q", warning)
	}
}

func TestFolderNotFoundFallsBackToRoot(t *testing.T) {
	id, warning, err := New(&fakeClient{}, fakeRegistry{}).Folder(context.Background(), "Nowhere")
	if err != nil {
		t.Fatalf("missing folder must not be fatal: %v", err)
	}
	if id != "" || !strings.Contains(warning, "not found") {
		t.Fatalf("expected root fallback with warning, got id=%q warning=%q", id, warning)
	}
}

func TestFolderEmptyName(t *testing.T) {
	id, warning, err := New(&fakeClient{}, fakeRegistry{}).Folder(context.Background(), "")
	if err != nil || id != "" || warning != "" {
		t.Fatalf("empty name means account root: id=%q warning=%q err=%v", id, warning, err)
	}
}

func TestFolderQueryFailureIsFatal(t *testing.T) {
	client := &fakeClient{queryErr: fmt.Errorf("connection refused")}
	_, _, err := New(client, fakeRegistry{}).Folder(context.Background(), "Orders")
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("query failure must propagate, got %v", err)
	}
}
