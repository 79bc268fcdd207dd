// Package platform is the HTTP client for the integration platform's
// Component API. Responses are decoded into boundary structs exactly once,
// here; the rest of the system never sees raw payload maps.
package platform

import (
	"fmt"
	"time"
)

// ComponentMetadata is the decoded form of a component record.
type ComponentMetadata struct {
	ID             string
	Name           string
	Type           string
	SubType        string
	FolderID       string
	FolderName     string
	Version        int
	CurrentVersion bool
	Deleted        bool
	ModifiedDate   time.Time
	ModifiedBy     string
}

// Folder is the decoded form of a folder record. FullPath is slash-separated
// from the account root, e.g. "Home/Integrations/Orders".
type Folder struct {
	ID       string
	Name     string
	FullPath string
	Deleted  bool
}

// ComponentQuery narrows a component metadata query. Zero-value fields are
// not included in the filter.
type ComponentQuery struct {
	Name          string
	Type          string
	ModifiedSince time.Time
}

// APIError is a non-2xx response from the platform.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("platform api: status %d: %s", e.StatusCode, e.Message)
}

// stringField returns the first present, non-empty string under any of keys.
// Platform payloads spell identifiers inconsistently across endpoints
// (componentId vs id), so lookups carry an ordered fallback list.
func stringField(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// boolField returns the first present boolean under any of keys. JSON payloads
// carry real booleans; XML-derived ones carry "true"/"false" strings.
func boolField(m map[string]any, keys ...string) bool {
	for _, k := range keys {
		switch v := m[k].(type) {
		case bool:
			return v
		case string:
			if v != "" {
				return v == "true"
			}
		}
	}
	return false
}

// intField returns the first present integer under any of keys.
func intField(m map[string]any, keys ...string) int {
	for _, k := range keys {
		switch v := m[k].(type) {
		case float64:
			return int(v)
		case int:
			return v
		}
	}
	return 0
}

// timeField returns the first present RFC 3339 timestamp under any of keys.
func timeField(m map[string]any, keys ...string) time.Time {
	for _, k := range keys {
		if s, _ := m[k].(string); s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

// decodeComponent maps one raw query record to ComponentMetadata.
func decodeComponent(m map[string]any) ComponentMetadata {
	return ComponentMetadata{
		ID:             stringField(m, "componentId", "id"),
		Name:           stringField(m, "name"),
		Type:           stringField(m, "type"),
		SubType:        stringField(m, "subType"),
		FolderID:       stringField(m, "folderId"),
		FolderName:     stringField(m, "folderName"),
		Version:        intField(m, "version"),
		CurrentVersion: boolField(m, "currentVersion"),
		Deleted:        boolField(m, "deleted"),
		ModifiedDate:   timeField(m, "modifiedDate"),
		ModifiedBy:     stringField(m, "modifiedBy"),
	}
}

// decodeFolder maps one raw query record to Folder.
func decodeFolder(m map[string]any) Folder {
	return Folder{
		ID:       stringField(m, "id", "folderId"),
		Name:     stringField(m, "name"),
		FullPath: stringField(m, "fullPath"),
		Deleted:  boolField(m, "deleted"),
	}
}
