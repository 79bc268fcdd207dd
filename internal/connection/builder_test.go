package connection

import (
	"strings"
	"testing"
)

func TestBuildBasicAuthConnection(t *testing.T) {
	doc, err := NewBuilder().Build(Config{
		Name:               "Orders API",
		URL:                "https://api.example.com",
		AuthenticationType: "basic",
		Username:           "svc",
		Password:           "hunter2",
	}, "folder-9")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	for _, want := range []string{
		`type="connector-settings"`,
		`subType="http"`,
		`folderId="folder-9"`,
		`url="https://api.example.com"`,
		`authenticationType="BASIC"`,
		`<AuthSettings user="svc" password="hunter2"/>`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestBuildRequiresURL(t *testing.T) {
	_, err := NewBuilder().Build(Config{Name: "C"}, "")
	if err == nil || !strings.Contains(err.Error(), "url is required") {
		t.Fatalf("expected url-required error, got %v", err)
	}
}

func TestBuildRequiresName(t *testing.T) {
	_, err := NewBuilder().Build(Config{URL: "https://x"}, "")
	if err == nil || !strings.Contains(err.Error(), "name is required") {
		t.Fatalf("expected name-required error, got %v", err)
	}
}

func TestBuildUnknownAuthFallsBack(t *testing.T) {
	doc, err := NewBuilder().Build(Config{Name: "C", URL: "https://x", AuthenticationType: "kerberos"}, "")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !strings.Contains(doc, `authenticationType="NONE"`) {
		t.Error("unknown auth type must fall back to NONE")
	}
	if strings.Contains(doc, "AuthSettings") {
		t.Error("NONE auth must not emit credentials block")
	}
}

func TestBuildOAuth2Ordering(t *testing.T) {
	doc, err := NewBuilder().Build(Config{
		Name:               "C",
		URL:                "https://x",
		AuthenticationType: "oauth2",
		TrustServerCert:    "true",
		OAuthTokenURL:      "https://x/token",
		OAuthClientID:      "cid",
	}, "")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	iSSL := strings.Index(doc, "SSLOptions")
	iOAuth := strings.Index(doc, "OAuth2Settings")
	if iSSL < 0 || iOAuth < 0 {
		t.Fatalf("settings blocks missing:\n%s", doc)
	}
	if iSSL > iOAuth {
		t.Error("SSL options must precede OAuth2 settings")
	}
	if !strings.Contains(doc, `grantType="client_credentials"`) {
		t.Error("grant type must default to client_credentials")
	}
}

func TestBuildIdempotent(t *testing.T) {
	cfg := Config{Name: "C", URL: "https://x", AuthenticationType: "basic", Username: "u"}
	b := NewBuilder()
	first, err := b.Build(cfg, "")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	second, err := b.Build(cfg, "")
	if err != nil {
		t.Fatalf("second build failed: %v", err)
	}
	if first != second {
		t.Fatal("identical config must produce identical documents")
	}
}
