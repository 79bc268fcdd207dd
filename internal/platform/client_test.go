package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestStringFieldFallback(t *testing.T) {
	m := map[string]any{"id": "abc"}
	if got := stringField(m, "componentId", "id"); got != "abc" {
		t.Errorf("fallback key not used, got %q", got)
	}
	m = map[string]any{"componentId": "primary", "id": "secondary"}
	if got := stringField(m, "componentId", "id"); got != "primary" {
		t.Errorf("primary key must win, got %q", got)
	}
	if got := stringField(map[string]any{}, "componentId", "id"); got != "" {
		t.Errorf("missing keys must yield empty, got %q", got)
	}
	// Empty string values fall through to the next key.
	m = map[string]any{"componentId": "", "id": "x"}
	if got := stringField(m, "componentId", "id"); got != "x" {
		t.Errorf("empty primary must fall through, got %q", got)
	}
}

func TestBoolFieldForms(t *testing.T) {
	if !boolField(map[string]any{"deleted": true}, "deleted") {
		t.Error("json boolean not decoded")
	}
	if !boolField(map[string]any{"deleted": "true"}, "deleted") {
		t.Error("string token not decoded")
	}
	if boolField(map[string]any{"deleted": "false"}, "deleted") {
		t.Error("false token decoded as true")
	}
	if boolField(map[string]any{}, "deleted") {
		t.Error("missing key must be false")
	}
}

func TestDecodeComponent(t *testing.T) {
	meta := decodeComponent(map[string]any{
		"componentId":    "comp-1",
		"name":           "Order Intake",
		"type":           "process",
		"version":        float64(3),
		"currentVersion": true,
		"modifiedDate":   "2026-08-20T10:00:00Z",
	})
	if meta.ID != "comp-1" || meta.Name != "Order Intake" || meta.Version != 3 {
		t.Fatalf("decoded metadata wrong: %+v", meta)
	}
	if !meta.CurrentVersion || meta.Deleted {
		t.Fatalf("flags wrong: %+v", meta)
	}
	if meta.ModifiedDate.IsZero() {
		t.Fatal("modified date not parsed")
	}
}

func newTestClient(t *testing.T, handler http.Handler) (*HTTPClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewHTTPClient(Options{
		BaseURL:   srv.URL,
		AccountID: "acct-1",
		Username:  "user",
		Password:  "pass",
	})
	if err != nil {
		t.Fatalf("client construction failed: %v", err)
	}
	return c, srv
}

func TestCreateComponent(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/acct-1/Component" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if user, pass, ok := r.BasicAuth(); !ok || user != "user" || pass != "pass" {
			t.Error("basic auth missing")
		}
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(`<bns:Component xmlns:bns="http://api.platform.boomi.com/" componentId="comp-9" name="P" type="process" version="1" currentVersion="true" deleted="false" modifiedDate="2026-08-20T10:00:00Z"/>`))
	}))

	meta, err := c.CreateComponent(context.Background(), `<?xml version="1.0"?><bns:Component/>`)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if meta.ID != "comp-9" || meta.Type != "process" || !meta.CurrentVersion {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
}

func TestCreateComponentAPIError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid document", http.StatusBadRequest)
	}))

	_, err := c.CreateComponent(context.Background(), "<bad/>")
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", apiErr.StatusCode)
	}
}

func TestQueryComponentsFiltersDeletedAndStale(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"numberOfResults": 3,
			"result": []map[string]any{
				{"componentId": "keep", "name": "A", "currentVersion": true, "deleted": false},
				{"componentId": "gone", "name": "B", "currentVersion": true, "deleted": true},
				{"componentId": "old", "name": "C", "currentVersion": false, "deleted": false},
			},
		})
	}))

	got, err := c.QueryComponents(context.Background(), ComponentQuery{Name: "A"})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "keep" {
		t.Fatalf("expected only the live current record, got %+v", got)
	}
}

func TestQueryComponentsFollowsPaging(t *testing.T) {
	var calls int
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch {
		case strings.HasSuffix(r.URL.Path, "/Component/query"):
			json.NewEncoder(w).Encode(map[string]any{
				"queryToken": "tok-1",
				"result": []map[string]any{
					{"componentId": "c1", "currentVersion": true},
				},
			})
		case strings.HasSuffix(r.URL.Path, "/Component/queryMore"):
			json.NewEncoder(w).Encode(map[string]any{
				"result": []map[string]any{
					{"componentId": "c2", "currentVersion": true},
				},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	got, err := c.QueryComponents(context.Background(), ComponentQuery{Type: "process"})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records across pages, got %d", len(got))
	}
	if calls != 2 {
		t.Errorf("expected 2 requests, got %d", calls)
	}
}

func TestQueryComponentsModifiedSinceFilter(t *testing.T) {
	var captured map[string]any
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(map[string]any{"result": []map[string]any{}})
	}))

	since := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	if _, err := c.QueryComponents(context.Background(), ComponentQuery{Name: "P", ModifiedSince: since}); err != nil {
		t.Fatalf("query failed: %v", err)
	}

	raw, _ := json.Marshal(captured)
	for _, want := range []string{"GREATER_THAN_OR_EQUAL", "modifiedDate", "2026-08-20T10:00:00Z"} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("filter missing %q: %s", want, raw)
		}
	}
}

func TestQueryFolders(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/Folder/query") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"result": []map[string]any{
				{"id": "f1", "name": "Orders", "fullPath": "Home/Integrations/Orders"},
				{"id": "f2", "name": "Orders", "fullPath": "Home/Archive/Orders", "deleted": true},
			},
		})
	}))

	got, err := c.QueryFolders(context.Background(), "Orders")
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "f1" {
		t.Fatalf("deleted folders must be filtered, got %+v", got)
	}
	if got[0].FullPath != "Home/Integrations/Orders" {
		t.Errorf("full path wrong: %q", got[0].FullPath)
	}
}

func TestNewHTTPClientValidation(t *testing.T) {
	if _, err := NewHTTPClient(Options{Username: "u", Password: "p"}); err == nil {
		t.Error("missing account id must be rejected")
	}
	if _, err := NewHTTPClient(Options{AccountID: "a"}); err == nil {
		t.Error("missing credentials must be rejected")
	}
}
