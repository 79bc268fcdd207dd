package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is the platform surface the rest of the system depends on. Tests
// substitute an in-memory implementation.
type Client interface {
	// CreateComponent posts a component document and returns the created
	// component's metadata.
	CreateComponent(ctx context.Context, document string) (ComponentMetadata, error)
	// QueryComponents returns current, non-deleted components matching q.
	QueryComponents(ctx context.Context, q ComponentQuery) ([]ComponentMetadata, error)
	// QueryFolders returns non-deleted folders whose name matches exactly.
	QueryFolders(ctx context.Context, name string) ([]Folder, error)
}

const defaultBaseURL = "https://api.boomi.com/api/rest/v1"

// HTTPClient talks to the platform's REST API with basic auth.
type HTTPClient struct {
	baseURL   string
	accountID string
	username  string
	password  string
	httpc     *http.Client
}

// Options configures an HTTPClient.
type Options struct {
	BaseURL   string
	AccountID string
	Username  string
	Password  string
	Timeout   time.Duration
}

// NewHTTPClient creates a platform client. AccountID, Username and Password
// are required; BaseURL defaults to the public API endpoint.
func NewHTTPClient(opts Options) (*HTTPClient, error) {
	if opts.AccountID == "" {
		return nil, fmt.Errorf("platform account id is required")
	}
	if opts.Username == "" || opts.Password == "" {
		return nil, fmt.Errorf("platform credentials are required")
	}
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL:   base,
		accountID: opts.AccountID,
		username:  opts.Username,
		password:  opts.Password,
		httpc:     &http.Client{Timeout: timeout},
	}, nil
}

// componentEnvelope is the attribute view of a created component document.
type componentEnvelope struct {
	ComponentID    string `xml:"componentId,attr"`
	Name           string `xml:"name,attr"`
	Type           string `xml:"type,attr"`
	SubType        string `xml:"subType,attr"`
	FolderID       string `xml:"folderId,attr"`
	FolderName     string `xml:"folderName,attr"`
	Version        int    `xml:"version,attr"`
	CurrentVersion string `xml:"currentVersion,attr"`
	Deleted        string `xml:"deleted,attr"`
	ModifiedDate   string `xml:"modifiedDate,attr"`
	ModifiedBy     string `xml:"modifiedBy,attr"`
}

func (c *HTTPClient) CreateComponent(ctx context.Context, document string) (ComponentMetadata, error) {
	body, err := c.do(ctx, http.MethodPost, "/Component", "application/xml", strings.NewReader(document))
	if err != nil {
		return ComponentMetadata{}, err
	}

	var env componentEnvelope
	if err := xml.Unmarshal(body, &env); err != nil {
		return ComponentMetadata{}, fmt.Errorf("decoding create response: %w", err)
	}

	modified, _ := time.Parse(time.RFC3339, env.ModifiedDate)
	return ComponentMetadata{
		ID:             env.ComponentID,
		Name:           env.Name,
		Type:           env.Type,
		SubType:        env.SubType,
		FolderID:       env.FolderID,
		FolderName:     env.FolderName,
		Version:        env.Version,
		CurrentVersion: env.CurrentVersion == "true",
		Deleted:        env.Deleted == "true",
		ModifiedDate:   modified,
		ModifiedBy:     env.ModifiedBy,
	}, nil
}

func (c *HTTPClient) QueryComponents(ctx context.Context, q ComponentQuery) ([]ComponentMetadata, error) {
	var terms []map[string]any
	if q.Name != "" {
		terms = append(terms, equalsTerm("name", q.Name))
	}
	if q.Type != "" {
		terms = append(terms, equalsTerm("type", q.Type))
	}
	terms = append(terms, equalsTerm("currentVersion", "true"))
	if !q.ModifiedSince.IsZero() {
		terms = append(terms, map[string]any{
			"operator": "GREATER_THAN_OR_EQUAL",
			"property": "modifiedDate",
			"argument": []any{q.ModifiedSince.UTC().Format(time.RFC3339)},
		})
	}

	records, err := c.queryAll(ctx, "/Component/query", "/Component/queryMore", terms)
	if err != nil {
		return nil, err
	}

	out := make([]ComponentMetadata, 0, len(records))
	for _, rec := range records {
		meta := decodeComponent(rec)
		if meta.Deleted || !meta.CurrentVersion {
			continue
		}
		out = append(out, meta)
	}
	return out, nil
}

func (c *HTTPClient) QueryFolders(ctx context.Context, name string) ([]Folder, error) {
	records, err := c.queryAll(ctx, "/Folder/query", "/Folder/queryMore",
		[]map[string]any{equalsTerm("name", name)})
	if err != nil {
		return nil, err
	}

	out := make([]Folder, 0, len(records))
	for _, rec := range records {
		folder := decodeFolder(rec)
		if folder.Deleted {
			continue
		}
		out = append(out, folder)
	}
	return out, nil
}

func equalsTerm(property, value string) map[string]any {
	return map[string]any{
		"operator": "EQUALS",
		"property": property,
		"argument": []any{value},
	}
}

// queryResponse is the paged result envelope shared by query endpoints.
type queryResponse struct {
	NumberOfResults int              `json:"numberOfResults"`
	QueryToken      string           `json:"queryToken"`
	Result          []map[string]any `json:"result"`
}

// queryAll runs a filtered query and follows queryMore tokens until the
// result set is exhausted.
func (c *HTTPClient) queryAll(ctx context.Context, queryPath, morePath string, terms []map[string]any) ([]map[string]any, error) {
	filter := map[string]any{}
	switch len(terms) {
	case 0:
	case 1:
		filter["QueryFilter"] = map[string]any{"expression": terms[0]}
	default:
		filter["QueryFilter"] = map[string]any{
			"expression": map[string]any{
				"operator":         "and",
				"nestedExpression": terms,
			},
		}
	}

	payload, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("encoding query filter: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, queryPath, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	var records []map[string]any
	for {
		var page queryResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decoding query response: %w", err)
		}
		records = append(records, page.Result...)
		if page.QueryToken == "" || len(page.Result) == 0 {
			return records, nil
		}
		body, err = c.do(ctx, http.MethodPost, morePath, "text/plain", strings.NewReader(page.QueryToken))
		if err != nil {
			return nil, err
		}
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	url := c.baseURL + "/" + c.accountID + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if contentType == "application/xml" {
		req.Header.Set("Accept", "application/xml")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(data))
		if len(msg) > 512 {
			msg = msg[:512]
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	return data, nil
}
