// Package connection builds HTTP connection components. A connection is the
// reusable endpoint half of a connector; operations reference it by ID.
package connection

import (
	"fmt"
	"strconv"

	"github.com/mdelgado-io/platformforge/internal/xmlgen"
)

// Config describes an HTTP connection component.
type Config struct {
	Name        string `json:"name" yaml:"name"`
	FolderName  string `json:"folder_name,omitempty" yaml:"folder_name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	URL                string `json:"url" yaml:"url"`
	AuthenticationType string `json:"authentication_type,omitempty" yaml:"authentication_type,omitempty"`
	Username           string `json:"username,omitempty" yaml:"username,omitempty"`
	Password           string `json:"password,omitempty" yaml:"password,omitempty"`
	ConnectTimeout     int    `json:"connect_timeout,omitempty" yaml:"connect_timeout,omitempty"`
	ReadTimeout        int    `json:"read_timeout,omitempty" yaml:"read_timeout,omitempty"`
	CookieScope        string `json:"cookie_scope,omitempty" yaml:"cookie_scope,omitempty"`

	ClientAuth       string `json:"client_auth,omitempty" yaml:"client_auth,omitempty"`
	TrustServerCert  string `json:"trust_server_cert,omitempty" yaml:"trust_server_cert,omitempty"`
	ClientSSLAlias   string `json:"client_ssl_alias,omitempty" yaml:"client_ssl_alias,omitempty"`
	TrustedCertAlias string `json:"trusted_cert_alias,omitempty" yaml:"trusted_cert_alias,omitempty"`

	OAuthGrantType    string `json:"oauth_grant_type,omitempty" yaml:"oauth_grant_type,omitempty"`
	OAuthTokenURL     string `json:"oauth_token_url,omitempty" yaml:"oauth_token_url,omitempty"`
	OAuthClientID     string `json:"oauth_client_id,omitempty" yaml:"oauth_client_id,omitempty"`
	OAuthClientSecret string `json:"oauth_client_secret,omitempty" yaml:"oauth_client_secret,omitempty"`
	OAuthScope        string `json:"oauth_scope,omitempty" yaml:"oauth_scope,omitempty"`
}

// Builder renders HTTP connection components.
type Builder struct{}

// NewBuilder creates a connection builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build produces the complete connection component document. folderID may be
// empty, in which case the platform places the component in the account root.
func (b *Builder) Build(cfg Config, folderID string) (string, error) {
	inner, err := b.BuildObject(cfg)
	if err != nil {
		return "", err
	}

	return xmlgen.Wrap(xmlgen.Envelope{
		Name:        cfg.Name,
		Type:        "connector-settings",
		SubType:     "http",
		FolderName:  cfg.FolderName,
		FolderID:    folderID,
		Description: cfg.Description,
	}, inner), nil
}

// BuildObject renders the inner connector-settings element. The platform
// requires the settings children in a fixed order: auth, SSL, OAuth2.
func (b *Builder) BuildObject(cfg Config) (*xmlgen.Element, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("connection name is required")
	}
	if cfg.URL == "" {
		return nil, fmt.Errorf("connection %q: url is required", cfg.Name)
	}

	authType := xmlgen.NormalizeEnum(cfg.AuthenticationType, "NONE",
		"NONE", "BASIC", "PASSWORD_DIGEST", "CUSTOM", "OAUTH", "OAUTH2")

	settings := xmlgen.NewElement("HttpSettings").
		Attr("url", cfg.URL).
		Attr("authenticationType", authType).
		AttrIf("cookieScope", xmlgen.NormalizeEnum(cfg.CookieScope, "", "IGNORED", "GLOBAL", "CONNECTOR_SHAPE"))
	if cfg.ConnectTimeout > 0 {
		settings.Attr("connectTimeout", strconv.Itoa(cfg.ConnectTimeout))
	}
	if cfg.ReadTimeout > 0 {
		settings.Attr("readTimeout", strconv.Itoa(cfg.ReadTimeout))
	}

	if authType == "BASIC" || authType == "PASSWORD_DIGEST" {
		settings.Child(xmlgen.NewElement("AuthSettings").
			Attr("user", cfg.Username).
			Attr("password", cfg.Password))
	}

	ssl := xmlgen.NewElement("SSLOptions").
		AttrIf("clientauth", boolTokenIf(cfg.ClientAuth)).
		AttrIf("trustServerCert", boolTokenIf(cfg.TrustServerCert)).
		AttrIf("clientsslalias", cfg.ClientSSLAlias).
		AttrIf("trustedcertalias", cfg.TrustedCertAlias)
	if len(ssl.Attrs) > 0 {
		settings.Child(ssl)
	}

	if authType == "OAUTH2" {
		grant := xmlgen.NormalizeEnumLower(cfg.OAuthGrantType, "client_credentials",
			"client_credentials", "password", "code")
		oauth := xmlgen.NewElement("OAuth2Settings").Attr("grantType", grant)
		if cfg.OAuthClientID != "" || cfg.OAuthClientSecret != "" {
			oauth.Child(xmlgen.NewElement("credentials").
				AttrIf("clientId", cfg.OAuthClientID).
				AttrIf("clientSecret", cfg.OAuthClientSecret))
		}
		if cfg.OAuthTokenURL != "" {
			oauth.Child(xmlgen.NewElement("accessTokenEndpoint").
				Attr("url", cfg.OAuthTokenURL).
				Child(xmlgen.NewElement("sslOptions")))
		}
		if cfg.OAuthScope != "" {
			oauth.Child(xmlgen.TextElement("scope", cfg.OAuthScope))
		}
		settings.Child(oauth)
	}

	return xmlgen.NewElement("connector-settings").
		Attr("xmlns", "").
		Child(settings), nil
}

func boolTokenIf(s string) string {
	if s == "" {
		return ""
	}
	return xmlgen.BoolToken(xmlgen.ParseBoolToken(s))
}
