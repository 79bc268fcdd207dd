package tradingpartner

import (
	"strconv"

	"github.com/mdelgado-io/platformforge/internal/xmlgen"
)

// Protocol option structs are flat on purpose: the tool surface accepts flat
// parameters and the builders produce the nested settings blocks. Optional
// booleans are platform string tokens ("true"/"false"); empty means unset
// and the attribute is omitted. A builder returns nil when the protocol's
// key field is absent — an unconfigured protocol, not an error.

// DiskOptions configures the disk communication method.
type DiskOptions struct {
	GetDirectory    string `json:"get_directory,omitempty" yaml:"get_directory,omitempty"`
	SendDirectory   string `json:"send_directory,omitempty" yaml:"send_directory,omitempty"`
	FileFilter      string `json:"file_filter,omitempty" yaml:"file_filter,omitempty"`
	FilterMatchType string `json:"filter_match_type,omitempty" yaml:"filter_match_type,omitempty"`
	DeleteAfterRead string `json:"delete_after_read,omitempty" yaml:"delete_after_read,omitempty"`
	MaxFileCount    int    `json:"max_file_count,omitempty" yaml:"max_file_count,omitempty"`
	CreateDirectory string `json:"create_directory,omitempty" yaml:"create_directory,omitempty"`
	WriteOption     string `json:"write_option,omitempty" yaml:"write_option,omitempty"`
}

// Fragment renders DiskCommunicationOptions, or nil when neither directory
// is set.
func (o DiskOptions) Fragment() *xmlgen.Element {
	if o.GetDirectory == "" && o.SendDirectory == "" {
		return nil
	}

	root := xmlgen.NewElement("DiskCommunicationOptions")

	if o.GetDirectory != "" {
		filter := o.FileFilter
		if filter == "" {
			filter = "*"
		}
		get := xmlgen.NewElement("DiskGetOptions").
			Attr("fileFilter", filter).
			Attr("getDirectory", o.GetDirectory).
			AttrIf("filterMatchType", xmlgen.NormalizeEnumLower(o.FilterMatchType, "", "wildcard", "regex")).
			AttrIf("deleteAfterRead", boolTokenIf(o.DeleteAfterRead))
		if o.MaxFileCount > 0 {
			get.Attr("maxFileCount", strconv.Itoa(o.MaxFileCount))
		}
		root.Child(get)
	}

	if o.SendDirectory != "" {
		send := xmlgen.NewElement("DiskSendOptions").
			Attr("sendDirectory", o.SendDirectory).
			AttrIf("createDirectory", boolTokenIf(o.CreateDirectory)).
			AttrIf("writeOption", xmlgen.NormalizeEnumLower(o.WriteOption, "", "unique", "over", "append", "abort"))
		root.Child(send)
	}

	return root
}

// FTPOptions configures the FTP communication method.
type FTPOptions struct {
	Host            string `json:"host,omitempty" yaml:"host,omitempty"`
	Port            int    `json:"port,omitempty" yaml:"port,omitempty"`
	Username        string `json:"username,omitempty" yaml:"username,omitempty"`
	Password        string `json:"password,omitempty" yaml:"password,omitempty"`
	RemoteDirectory string `json:"remote_directory,omitempty" yaml:"remote_directory,omitempty"`
	SSLMode         string `json:"ssl_mode,omitempty" yaml:"ssl_mode,omitempty"`
	ConnectionMode  string `json:"connection_mode,omitempty" yaml:"connection_mode,omitempty"`
	TransferType    string `json:"transfer_type,omitempty" yaml:"transfer_type,omitempty"`
	GetAction       string `json:"get_action,omitempty" yaml:"get_action,omitempty"`
	SendAction      string `json:"send_action,omitempty" yaml:"send_action,omitempty"`
	MaxFileCount    int    `json:"max_file_count,omitempty" yaml:"max_file_count,omitempty"`
	FileToMove      string `json:"file_to_move,omitempty" yaml:"file_to_move,omitempty"`
	MoveToDirectory string `json:"move_to_directory,omitempty" yaml:"move_to_directory,omitempty"`
	ClientSSLAlias  string `json:"client_ssl_alias,omitempty" yaml:"client_ssl_alias,omitempty"`
}

// Fragment renders FTPCommunicationOptions, or nil when no host is set.
func (o FTPOptions) Fragment() *xmlgen.Element {
	if o.Host == "" {
		return nil
	}

	port := o.Port
	if port == 0 {
		port = 21
	}

	settings := xmlgen.NewElement("FTPSettings").
		Attr("host", o.Host).
		Attr("port", strconv.Itoa(port)).
		Attr("user", o.Username).
		Attr("password", o.Password).
		Attr("connectionMode", xmlgen.NormalizeEnumLower(o.ConnectionMode, "passive", "active", "passive"))

	sslMode := xmlgen.NormalizeEnumLower(o.SSLMode, "none", "none", "explicit", "implicit")
	if sslMode != "none" || o.ClientSSLAlias != "" {
		ssl := xmlgen.NewElement("FTPSSLOptions")
		if sslMode != "none" {
			ssl.Attr("sslmode", sslMode)
		}
		if o.ClientSSLAlias != "" {
			ssl.Attr("useClientAuthentication", "true")
			ssl.Child(xmlgen.NewElement("clientSSLCertificate").Attr("alias", o.ClientSSLAlias))
		}
		settings.Child(ssl)
	}

	root := xmlgen.NewElement("FTPCommunicationOptions").Child(settings)

	transfer := xmlgen.NormalizeEnumLower(o.TransferType, "", "ascii", "binary")

	get := xmlgen.NewElement("FTPGetOptions").
		AttrIf("remoteDirectory", o.RemoteDirectory).
		AttrIf("transferType", transfer).
		AttrIf("ftpAction", xmlgen.NormalizeEnumLower(o.GetAction, "",
			"actionget", "actiongetdelete", "actiongetmove")).
		AttrIf("fileToMove", o.FileToMove)
	if o.MaxFileCount > 0 {
		get.Attr("maxFileCount", strconv.Itoa(o.MaxFileCount))
	}
	if len(get.Attrs) > 0 {
		get.Attr("useDefaultGetOptions", "false")
		root.Child(get)
	}

	send := xmlgen.NewElement("FTPSendOptions").
		AttrIf("remoteDirectory", o.RemoteDirectory).
		AttrIf("transferType", transfer).
		AttrIf("ftpAction", xmlgen.NormalizeEnumLower(o.SendAction, "",
			"actionputrename", "actionputappend", "actionputerror", "actionputoverwrite")).
		AttrIf("moveToDirectory", o.MoveToDirectory)
	if len(send.Attrs) > 0 {
		send.Attr("useDefaultSendOptions", "false")
		root.Child(send)
	}

	return root
}

// SFTPOptions configures the SFTP communication method.
type SFTPOptions struct {
	Host              string `json:"host,omitempty" yaml:"host,omitempty"`
	Port              int    `json:"port,omitempty" yaml:"port,omitempty"`
	Username          string `json:"username,omitempty" yaml:"username,omitempty"`
	Password          string `json:"password,omitempty" yaml:"password,omitempty"`
	RemoteDirectory   string `json:"remote_directory,omitempty" yaml:"remote_directory,omitempty"`
	SSHKeyAuth        string `json:"ssh_key_auth,omitempty" yaml:"ssh_key_auth,omitempty"`
	KnownHostEntry    string `json:"known_host_entry,omitempty" yaml:"known_host_entry,omitempty"`
	SSHKeyPath        string `json:"ssh_key_path,omitempty" yaml:"ssh_key_path,omitempty"`
	SSHKeyPassword    string `json:"ssh_key_password,omitempty" yaml:"ssh_key_password,omitempty"`
	GetAction         string `json:"get_action,omitempty" yaml:"get_action,omitempty"`
	SendAction        string `json:"send_action,omitempty" yaml:"send_action,omitempty"`
	MaxFileCount      int    `json:"max_file_count,omitempty" yaml:"max_file_count,omitempty"`
	FileToMove        string `json:"file_to_move,omitempty" yaml:"file_to_move,omitempty"`
	MoveToDirectory   string `json:"move_to_directory,omitempty" yaml:"move_to_directory,omitempty"`
	MoveForceOverride string `json:"move_force_override,omitempty" yaml:"move_force_override,omitempty"`
	ProxyEnabled      string `json:"proxy_enabled,omitempty" yaml:"proxy_enabled,omitempty"`
	ProxyHost         string `json:"proxy_host,omitempty" yaml:"proxy_host,omitempty"`
	ProxyPort         int    `json:"proxy_port,omitempty" yaml:"proxy_port,omitempty"`
	ProxyUser         string `json:"proxy_user,omitempty" yaml:"proxy_user,omitempty"`
	ProxyPassword     string `json:"proxy_password,omitempty" yaml:"proxy_password,omitempty"`
	ProxyType         string `json:"proxy_type,omitempty" yaml:"proxy_type,omitempty"`
}

// Fragment renders SFTPCommunicationOptions, or nil when no host is set.
func (o SFTPOptions) Fragment() *xmlgen.Element {
	if o.Host == "" {
		return nil
	}

	port := o.Port
	if port == 0 {
		port = 22
	}

	settings := xmlgen.NewElement("SFTPSettings").
		Attr("host", o.Host).
		Attr("port", strconv.Itoa(port)).
		Attr("user", o.Username).
		Attr("password", o.Password)

	ssh := xmlgen.NewElement("SFTPSSHOptions").
		AttrIf("sshkeyauth", boolTokenIf(o.SSHKeyAuth)).
		AttrIf("knownHostEntry", o.KnownHostEntry).
		AttrIf("sshkeypath", o.SSHKeyPath).
		AttrIf("sshkeypassword", o.SSHKeyPassword)
	if len(ssh.Attrs) > 0 {
		settings.Child(ssh)
	}

	if o.ProxyEnabled != "" || o.ProxyHost != "" {
		proxy := xmlgen.NewElement("SFTPProxySettings").
			AttrIf("proxyEnabled", boolTokenIf(o.ProxyEnabled)).
			AttrIf("host", o.ProxyHost).
			AttrIf("user", o.ProxyUser).
			AttrIf("password", o.ProxyPassword).
			AttrIf("type", xmlgen.NormalizeEnum(o.ProxyType, "", "ATOM", "HTTP", "SOCKS4", "SOCKS5"))
		if o.ProxyPort > 0 {
			proxy.Attr("port", strconv.Itoa(o.ProxyPort))
		}
		settings.Child(proxy)
	}

	root := xmlgen.NewElement("SFTPCommunicationOptions").Child(settings)

	get := xmlgen.NewElement("SFTPGetOptions").
		AttrIf("remoteDirectory", o.RemoteDirectory).
		AttrIf("ftpAction", xmlgen.NormalizeEnumLower(o.GetAction, "",
			"actionget", "actiongetdelete", "actiongetmove")).
		AttrIf("fileToMove", o.FileToMove).
		AttrIf("moveToDirectory", o.MoveToDirectory).
		AttrIf("moveToForceOverride", boolTokenIf(o.MoveForceOverride))
	if o.MaxFileCount > 0 {
		get.Attr("maxFileCount", strconv.Itoa(o.MaxFileCount))
	}
	if len(get.Attrs) > 0 {
		get.Attr("useDefaultGetOptions", "false")
		root.Child(get)
	}

	send := xmlgen.NewElement("SFTPSendOptions").
		AttrIf("remoteDirectory", o.RemoteDirectory).
		AttrIf("ftpAction", xmlgen.NormalizeEnumLower(o.SendAction, "",
			"actionputrename", "actionputappend", "actionputerror", "actionputoverwrite")).
		AttrIf("moveToDirectory", o.MoveToDirectory).
		AttrIf("moveToForceOverride", boolTokenIf(o.MoveForceOverride))
	if len(send.Attrs) > 0 {
		send.Attr("useDefaultSendOptions", "false")
		root.Child(send)
	}

	return root
}

// HTTPOptions configures the HTTP communication method.
type HTTPOptions struct {
	URL                 string `json:"url,omitempty" yaml:"url,omitempty"`
	AuthenticationType  string `json:"authentication_type,omitempty" yaml:"authentication_type,omitempty"`
	Username            string `json:"username,omitempty" yaml:"username,omitempty"`
	Password            string `json:"password,omitempty" yaml:"password,omitempty"`
	ConnectTimeout      int    `json:"connect_timeout,omitempty" yaml:"connect_timeout,omitempty"`
	ReadTimeout         int    `json:"read_timeout,omitempty" yaml:"read_timeout,omitempty"`
	ClientAuth          string `json:"client_auth,omitempty" yaml:"client_auth,omitempty"`
	TrustServerCert     string `json:"trust_server_cert,omitempty" yaml:"trust_server_cert,omitempty"`
	ClientSSLAlias      string `json:"client_ssl_alias,omitempty" yaml:"client_ssl_alias,omitempty"`
	TrustedCertAlias    string `json:"trusted_cert_alias,omitempty" yaml:"trusted_cert_alias,omitempty"`
	CookieScope         string `json:"cookie_scope,omitempty" yaml:"cookie_scope,omitempty"`
	MethodType          string `json:"method_type,omitempty" yaml:"method_type,omitempty"`
	DataContentType     string `json:"data_content_type,omitempty" yaml:"data_content_type,omitempty"`
	FollowRedirects     string `json:"follow_redirects,omitempty" yaml:"follow_redirects,omitempty"`
	ReturnErrors        string `json:"return_errors,omitempty" yaml:"return_errors,omitempty"`
	ReturnResponses     string `json:"return_responses,omitempty" yaml:"return_responses,omitempty"`
	RequestProfile      string `json:"request_profile,omitempty" yaml:"request_profile,omitempty"`
	RequestProfileType  string `json:"request_profile_type,omitempty" yaml:"request_profile_type,omitempty"`
	ResponseProfile     string `json:"response_profile,omitempty" yaml:"response_profile,omitempty"`
	ResponseProfileType string `json:"response_profile_type,omitempty" yaml:"response_profile_type,omitempty"`
	OAuthTokenURL       string `json:"oauth_token_url,omitempty" yaml:"oauth_token_url,omitempty"`
	OAuthClientID       string `json:"oauth_client_id,omitempty" yaml:"oauth_client_id,omitempty"`
	OAuthClientSecret   string `json:"oauth_client_secret,omitempty" yaml:"oauth_client_secret,omitempty"`
	OAuthScope          string `json:"oauth_scope,omitempty" yaml:"oauth_scope,omitempty"`
}

// Fragment renders HTTPCommunicationOptions, or nil when no URL is set.
func (o HTTPOptions) Fragment() *xmlgen.Element {
	if o.URL == "" {
		return nil
	}

	authType := xmlgen.NormalizeEnum(o.AuthenticationType, "NONE",
		"NONE", "BASIC", "PASSWORD_DIGEST", "CUSTOM", "OAUTH", "OAUTH2")

	settings := xmlgen.NewElement("HTTPSettings").
		Attr("url", o.URL).
		Attr("authenticationType", authType).
		AttrIf("cookieScope", xmlgen.NormalizeEnum(o.CookieScope, "", "IGNORED", "GLOBAL", "CONNECTOR_SHAPE"))
	if o.ConnectTimeout > 0 {
		settings.Attr("connectTimeout", strconv.Itoa(o.ConnectTimeout))
	}
	if o.ReadTimeout > 0 {
		settings.Attr("readTimeout", strconv.Itoa(o.ReadTimeout))
	}

	if authType == "BASIC" && (o.Username != "" || o.Password != "") {
		settings.Child(xmlgen.NewElement("HTTPAuthSettings").
			Attr("user", o.Username).
			Attr("password", o.Password))
	}

	if authType == "OAUTH2" {
		oauth := xmlgen.NewElement("HTTPOAuth2Settings").Attr("grantType", "client_credentials")
		if o.OAuthClientID != "" || o.OAuthClientSecret != "" {
			oauth.Child(xmlgen.NewElement("credentials").
				AttrIf("clientId", o.OAuthClientID).
				AttrIf("clientSecret", o.OAuthClientSecret))
		}
		if o.OAuthTokenURL != "" {
			oauth.Child(xmlgen.NewElement("accessTokenEndpoint").
				Attr("url", o.OAuthTokenURL).
				Child(xmlgen.NewElement("sslOptions")))
		}
		if o.OAuthScope != "" {
			oauth.Child(xmlgen.TextElement("scope", o.OAuthScope))
		}
		settings.Child(oauth)
	}

	ssl := xmlgen.NewElement("HTTPSSLOptions").
		AttrIf("clientauth", boolTokenIf(o.ClientAuth)).
		AttrIf("trustServerCert", boolTokenIf(o.TrustServerCert)).
		AttrIf("clientsslalias", o.ClientSSLAlias).
		AttrIf("trustedcertalias", o.TrustedCertAlias)
	if len(ssl.Attrs) > 0 {
		settings.Child(ssl)
	}

	root := xmlgen.NewElement("HTTPCommunicationOptions").Child(settings)

	send := xmlgen.NewElement("HTTPSendOptions").
		AttrIf("methodType", xmlgen.NormalizeEnum(o.MethodType, "", "GET", "POST", "PUT", "DELETE", "PATCH")).
		AttrIf("dataContentType", o.DataContentType).
		AttrIf("followRedirects", boolTokenIf(o.FollowRedirects)).
		AttrIf("returnErrors", boolTokenIf(o.ReturnErrors)).
		AttrIf("returnResponses", boolTokenIf(o.ReturnResponses)).
		AttrIf("requestProfile", o.RequestProfile).
		AttrIf("requestProfileType", xmlgen.NormalizeEnum(o.RequestProfileType, "", "NONE", "XML", "JSON")).
		AttrIf("responseProfile", o.ResponseProfile).
		AttrIf("responseProfileType", xmlgen.NormalizeEnum(o.ResponseProfileType, "", "NONE", "XML", "JSON"))
	if len(send.Attrs) > 0 {
		send.Attr("useDefaultOptions", "false")
		root.Child(send)

		// The platform mirrors send options onto the get path.
		get := xmlgen.NewElement("HTTPGetOptions")
		get.Attrs = append(get.Attrs, send.Attrs...)
		root.Child(get)
	}

	return root
}

// AS2Options configures the AS2 communication method.
type AS2Options struct {
	URL                  string `json:"url,omitempty" yaml:"url,omitempty"`
	Identifier           string `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	PartnerIdentifier    string `json:"partner_identifier,omitempty" yaml:"partner_identifier,omitempty"`
	AuthenticationType   string `json:"authentication_type,omitempty" yaml:"authentication_type,omitempty"`
	VerifyHostname       string `json:"verify_hostname,omitempty" yaml:"verify_hostname,omitempty"`
	Username             string `json:"username,omitempty" yaml:"username,omitempty"`
	Password             string `json:"password,omitempty" yaml:"password,omitempty"`
	Signed               string `json:"signed,omitempty" yaml:"signed,omitempty"`
	Encrypted            string `json:"encrypted,omitempty" yaml:"encrypted,omitempty"`
	Compressed           string `json:"compressed,omitempty" yaml:"compressed,omitempty"`
	EncryptionAlgorithm  string `json:"encryption_algorithm,omitempty" yaml:"encryption_algorithm,omitempty"`
	SigningDigestAlg     string `json:"signing_digest_alg,omitempty" yaml:"signing_digest_alg,omitempty"`
	DataContentType      string `json:"data_content_type,omitempty" yaml:"data_content_type,omitempty"`
	Subject              string `json:"subject,omitempty" yaml:"subject,omitempty"`
	MultipleAttachments  string `json:"multiple_attachments,omitempty" yaml:"multiple_attachments,omitempty"`
	MaxDocumentCount     int    `json:"max_document_count,omitempty" yaml:"max_document_count,omitempty"`
	AttachmentOption     string `json:"attachment_option,omitempty" yaml:"attachment_option,omitempty"`
	AttachmentCache      string `json:"attachment_cache,omitempty" yaml:"attachment_cache,omitempty"`
	RequestMDN           string `json:"request_mdn,omitempty" yaml:"request_mdn,omitempty"`
	MDNSigned            string `json:"mdn_signed,omitempty" yaml:"mdn_signed,omitempty"`
	MDNDigestAlg         string `json:"mdn_digest_alg,omitempty" yaml:"mdn_digest_alg,omitempty"`
	SynchronousMDN       string `json:"synchronous_mdn,omitempty" yaml:"synchronous_mdn,omitempty"`
	MDNExternalURL       string `json:"mdn_external_url,omitempty" yaml:"mdn_external_url,omitempty"`
	MDNUseExternalURL    string `json:"mdn_use_external_url,omitempty" yaml:"mdn_use_external_url,omitempty"`
	MDNUseSSL            string `json:"mdn_use_ssl,omitempty" yaml:"mdn_use_ssl,omitempty"`
	MDNClientSSLCert     string `json:"mdn_client_ssl_cert,omitempty" yaml:"mdn_client_ssl_cert,omitempty"`
	MDNSSLCert           string `json:"mdn_ssl_cert,omitempty" yaml:"mdn_ssl_cert,omitempty"`
	RejectDuplicates     string `json:"reject_duplicates,omitempty" yaml:"reject_duplicates,omitempty"`
	DuplicateCheckCount  int    `json:"duplicate_check_count,omitempty" yaml:"duplicate_check_count,omitempty"`
	LegacySMIME          string `json:"legacy_smime,omitempty" yaml:"legacy_smime,omitempty"`
}

// Fragment renders AS2CommunicationOptions, or nil when no URL is set.
func (o AS2Options) Fragment() *xmlgen.Element {
	if o.URL == "" {
		return nil
	}

	authType := xmlgen.NormalizeEnum(o.AuthenticationType, "NONE", "NONE", "BASIC")

	sendSettings := xmlgen.NewElement("AS2SendSettings").
		Attr("url", o.URL).
		Attr("authenticationType", authType).
		AttrIf("verifyHostname", boolTokenIf(o.VerifyHostname))
	if authType == "BASIC" && (o.Username != "" || o.Password != "") {
		sendSettings.Child(xmlgen.NewElement("AuthSettings").
			Attr("user", o.Username).
			Attr("password", o.Password))
	}

	root := xmlgen.NewElement("AS2CommunicationOptions").Child(sendSettings)

	message := xmlgen.NewElement("AS2MessageOptions").
		AttrIf("signed", boolTokenIf(o.Signed)).
		AttrIf("encrypted", boolTokenIf(o.Encrypted)).
		AttrIf("compressed", boolTokenIf(o.Compressed)).
		AttrIf("encryptionAlgorithm", xmlgen.HyphenateAlgorithm(o.EncryptionAlgorithm)).
		AttrIf("signingDigestAlg", xmlgen.NormalizeEnum(o.SigningDigestAlg, "", "SHA1", "SHA256", "SHA384", "SHA512")).
		AttrIf("dataContentType", o.DataContentType).
		AttrIf("subject", o.Subject).
		AttrIf("multipleAttachments", boolTokenIf(o.MultipleAttachments)).
		AttrIf("attachmentOption", xmlgen.NormalizeEnum(o.AttachmentOption, "", "BATCH", "DOCUMENT_CACHE")).
		AttrIf("attachmentCache", o.AttachmentCache)
	if o.MaxDocumentCount > 0 {
		message.Attr("maxDocumentCount", strconv.Itoa(o.MaxDocumentCount))
	}

	mdn := xmlgen.NewElement("AS2MDNOptions").
		AttrIf("requestMDN", boolTokenIf(o.RequestMDN)).
		AttrIf("signed", boolTokenIf(o.MDNSigned)).
		AttrIf("mdnDigestAlg", xmlgen.NormalizeEnum(o.MDNDigestAlg, "", "SHA1", "SHA256", "SHA384", "SHA512")).
		AttrIf("externalURL", o.MDNExternalURL).
		AttrIf("useExternalURL", boolTokenIf(o.MDNUseExternalURL)).
		AttrIf("useSSL", boolTokenIf(o.MDNUseSSL))
	if o.SynchronousMDN != "" {
		sync := "async"
		if xmlgen.ParseBoolToken(o.SynchronousMDN) {
			sync = "sync"
		}
		mdn.Attr("synchronous", sync)
	}
	if o.MDNClientSSLCert != "" {
		mdn.Child(xmlgen.NewElement("mdnClientSSLCert").Attr("alias", o.MDNClientSSLCert))
	}
	if o.MDNSSLCert != "" {
		mdn.Child(xmlgen.NewElement("mdnSSLCert").Attr("alias", o.MDNSSLCert))
	}

	partner := xmlgen.NewElement("AS2PartnerInfo").
		AttrIf("as2Id", o.PartnerIdentifier).
		AttrIf("rejectDuplicateMessages", boolTokenIf(o.RejectDuplicates)).
		AttrIf("enabledLegacySMIME", boolTokenIf(o.LegacySMIME))
	if o.DuplicateCheckCount > 0 {
		partner.Attr("messagesToCheckForDuplicates", strconv.Itoa(o.DuplicateCheckCount))
	}

	// The platform requires MDN and message options to both be present
	// whenever send options exist at all.
	if len(message.Attrs) > 0 || len(mdn.Attrs) > 0 || len(mdn.Children) > 0 || len(partner.Attrs) > 0 {
		sendOptions := xmlgen.NewElement("AS2SendOptions").Child(mdn, message)
		if len(partner.Attrs) > 0 {
			sendOptions.Child(partner)
		}
		root.Child(sendOptions)
	}

	return root
}

// MLLPOptions configures the MLLP communication method (HL7 messaging).
type MLLPOptions struct {
	Host              string `json:"host,omitempty" yaml:"host,omitempty"`
	Port              int    `json:"port,omitempty" yaml:"port,omitempty"`
	UseSSL            string `json:"use_ssl,omitempty" yaml:"use_ssl,omitempty"`
	Persistent        string `json:"persistent,omitempty" yaml:"persistent,omitempty"`
	ReceiveTimeout    int    `json:"receive_timeout,omitempty" yaml:"receive_timeout,omitempty"`
	SendTimeout       int    `json:"send_timeout,omitempty" yaml:"send_timeout,omitempty"`
	MaxConnections    int    `json:"max_connections,omitempty" yaml:"max_connections,omitempty"`
	InactivityTimeout int    `json:"inactivity_timeout,omitempty" yaml:"inactivity_timeout,omitempty"`
	MaxRetry          int    `json:"max_retry,omitempty" yaml:"max_retry,omitempty"`
	HaltTimeout       string `json:"halt_timeout,omitempty" yaml:"halt_timeout,omitempty"`
	UseClientSSL      string `json:"use_client_ssl,omitempty" yaml:"use_client_ssl,omitempty"`
	ClientSSLAlias    string `json:"client_ssl_alias,omitempty" yaml:"client_ssl_alias,omitempty"`
	SSLAlias          string `json:"ssl_alias,omitempty" yaml:"ssl_alias,omitempty"`
}

// Fragment renders MLLPCommunicationOptions, or nil when host or port is
// missing (both are required for MLLP).
func (o MLLPOptions) Fragment() *xmlgen.Element {
	if o.Host == "" || o.Port == 0 {
		return nil
	}

	// Retry must be 1..5 per the platform API.
	retry := o.MaxRetry
	if retry < 1 {
		retry = 1
	} else if retry > 5 {
		retry = 5
	}

	settings := xmlgen.NewElement("MLLPSendSettings").
		Attr("host", o.Host).
		Attr("port", strconv.Itoa(o.Port)).
		Attr("maxRetry", strconv.Itoa(retry)).
		AttrIf("persistent", boolTokenIf(o.Persistent)).
		AttrIf("haltTimeout", boolTokenIf(o.HaltTimeout))
	if o.ReceiveTimeout > 0 {
		settings.Attr("receiveTimeout", strconv.Itoa(o.ReceiveTimeout))
	}
	if o.SendTimeout > 0 {
		settings.Attr("sendTimeout", strconv.Itoa(o.SendTimeout))
	}
	if o.MaxConnections > 0 {
		settings.Attr("maxConnections", strconv.Itoa(o.MaxConnections))
	}
	if o.InactivityTimeout > 0 {
		settings.Attr("inactivityTimeout", strconv.Itoa(o.InactivityTimeout))
	}

	ssl := xmlgen.NewElement("MLLPSSLOptions").
		Attr("useSSL", xmlgen.BoolToken(xmlgen.ParseBoolToken(o.UseSSL))).
		AttrIf("useClientSSL", boolTokenIf(o.UseClientSSL)).
		AttrIf("clientSSLAlias", o.ClientSSLAlias).
		AttrIf("sslAlias", o.SSLAlias)
	settings.Child(ssl)

	// Standard MLLP block delimiters: 0x0B start, 0x1C 0x0D end.
	settings.Child(
		delimiter("startBlock", "0B"),
		delimiter("endBlock", "1C"),
		delimiter("endData", "0D"),
	)

	return xmlgen.NewElement("MLLPCommunicationOptions").Child(settings)
}

func delimiter(name, hex string) *xmlgen.Element {
	return xmlgen.NewElement(name).
		Attr("delimiterValue", "bytecharacter").
		Attr("delimiterSpecial", hex)
}

// OFTPOptions configures the OFTP communication method (ODETTE transfer).
type OFTPOptions struct {
	Host           string `json:"host,omitempty" yaml:"host,omitempty"`
	Port           int    `json:"port,omitempty" yaml:"port,omitempty"`
	TLS            string `json:"tls,omitempty" yaml:"tls,omitempty"`
	SSIDCode       string `json:"ssid_code,omitempty" yaml:"ssid_code,omitempty"`
	SSIDPassword   string `json:"ssid_password,omitempty" yaml:"ssid_password,omitempty"`
	Compress       string `json:"compress,omitempty" yaml:"compress,omitempty"`
	SSIDAuth       string `json:"ssid_auth,omitempty" yaml:"ssid_auth,omitempty"`
	SFIDCipher     int    `json:"sfid_cipher,omitempty" yaml:"sfid_cipher,omitempty"`
	UseGateway     string `json:"use_gateway,omitempty" yaml:"use_gateway,omitempty"`
	UseClientSSL   string `json:"use_client_ssl,omitempty" yaml:"use_client_ssl,omitempty"`
	ClientSSLAlias string `json:"client_ssl_alias,omitempty" yaml:"client_ssl_alias,omitempty"`
	SFIDSign       string `json:"sfid_sign,omitempty" yaml:"sfid_sign,omitempty"`
	SFIDEncrypt    string `json:"sfid_encrypt,omitempty" yaml:"sfid_encrypt,omitempty"`
}

// Fragment renders OFTPCommunicationOptions, or nil when no host is set.
func (o OFTPOptions) Fragment() *xmlgen.Element {
	if o.Host == "" {
		return nil
	}

	port := o.Port
	if port == 0 {
		port = 3305
	}

	partnerInfo := xmlgen.NewElement("myPartnerInfo").
		AttrIf("ssidcode", o.SSIDCode).
		AttrIf("ssidpswd", o.SSIDPassword).
		AttrIf("ssidcmpr", boolTokenIf(o.Compress)).
		AttrIf("sfidsign", boolTokenIf(o.SFIDSign)).
		AttrIf("sfidsec-encrypt", boolTokenIf(o.SFIDEncrypt))

	defaults := xmlgen.NewElement("DefaultOFTPConnectionSettings").
		Attr("host", o.Host).
		Attr("port", strconv.Itoa(port)).
		AttrIf("tls", boolTokenIf(o.TLS)).
		AttrIf("ssidauth", boolTokenIf(o.SSIDAuth)).
		AttrIf("useGateway", boolTokenIf(o.UseGateway)).
		AttrIf("useClientSSL", boolTokenIf(o.UseClientSSL)).
		AttrIf("clientSSLAlias", o.ClientSSLAlias)
	// Cipher strength 0 means "none" and is a valid value, but 0 is also the
	// zero value; only emit when sign/encrypt suggests ciphering is in play
	// or a positive strength was given.
	if o.SFIDCipher > 0 {
		defaults.Attr("sfidciph", strconv.Itoa(o.SFIDCipher))
	}
	defaults.Child(partnerInfo)

	return xmlgen.NewElement("OFTPCommunicationOptions").Child(
		xmlgen.NewElement("OFTPConnectionSettings").Child(defaults),
	)
}

// boolTokenIf normalizes an optional boolean token: empty stays empty
// (attribute omitted), anything else becomes the canonical token.
func boolTokenIf(s string) string {
	if s == "" {
		return ""
	}
	return xmlgen.BoolToken(xmlgen.ParseBoolToken(s))
}
