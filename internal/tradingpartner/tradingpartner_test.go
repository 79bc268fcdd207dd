package tradingpartner

import (
	"strings"
	"testing"
)

func TestBuildX12Partner(t *testing.T) {
	b := NewBuilder()
	doc, err := b.Build(Config{
		Name:     "Acme Corp",
		Standard: "x12",
		X12:      X12Info{ISAID: "ACME", ISAQualifier: "ZZ", GSID: "ACMEGS"},
		Disk:     DiskOptions{GetDirectory: "/in", SendDirectory: "/out"},
	}, "folder-1")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	for _, want := range []string{
		`type="tradingpartner"`,
		`subType="x12"`,
		`standard="x12"`,
		`classification="tradingpartner"`,
		`interchangeId="ACME"`,
		`interchangeIdQualifier="X12IDQUAL_ZZ"`,
		`applicationcode="ACMEGS"`,
		`getDirectory="/in"`,
		`sendDirectory="/out"`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestBuildUnsupportedStandard(t *testing.T) {
	_, err := NewBuilder().Build(Config{Name: "P", Standard: "ansi"}, "")
	if err == nil {
		t.Fatal("expected error for unsupported standard")
	}
	msg := err.Error()
	if !strings.Contains(msg, "unsupported trading partner standard") {
		t.Fatalf("unexpected error: %v", err)
	}
	// The error enumerates the supported set.
	for _, std := range []string{"x12", "edifact", "hl7", "rosettanet", "tradacoms", "odette", "custom"} {
		if !strings.Contains(msg, std) {
			t.Errorf("error must list %q: %v", std, err)
		}
	}
}

func TestBuildStandardCaseInsensitive(t *testing.T) {
	doc, err := NewBuilder().Build(Config{Name: "P", Standard: "X12"}, "")
	if err != nil {
		t.Fatalf("uppercase standard rejected: %v", err)
	}
	if !strings.Contains(doc, `standard="x12"`) {
		t.Error("standard must be stored lowercase")
	}
}

func TestBuildRequiresName(t *testing.T) {
	_, err := NewBuilder().Build(Config{Standard: "x12"}, "")
	if err == nil || !strings.Contains(err.Error(), "name is required") {
		t.Fatalf("expected name-required error, got %v", err)
	}
}

func TestQualifierAlreadyPrefixed(t *testing.T) {
	doc, err := NewBuilder().Build(Config{
		Name:     "P",
		Standard: "x12",
		X12:      X12Info{ISAID: "A", ISAQualifier: "X12IDQUAL_01"},
	}, "")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if strings.Contains(doc, "X12IDQUAL_X12IDQUAL_") {
		t.Error("qualifier prefix applied twice")
	}
	if !strings.Contains(doc, `interchangeIdQualifier="X12IDQUAL_01"`) {
		t.Error("prefixed qualifier missing")
	}
}

func TestBuildEdifactPartner(t *testing.T) {
	doc, err := NewBuilder().Build(Config{
		Name:     "Euro Partner",
		Standard: "edifact",
		Edifact:  EdifactInfo{InterchangeID: "EURO", InterchangeQualifier: "14"},
	}, "")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	for _, want := range []string{
		"EdifactPartnerInfo",
		`interchangeIdQualifier="EDIFACTIDQUAL_14"`,
		`elementDelimiter="plussign"`,
		`segmentTerminator="singlequote"`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestBuildCustomPartnerHasEmptyInfo(t *testing.T) {
	doc, err := NewBuilder().Build(Config{Name: "P", Standard: "custom"}, "")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !strings.Contains(doc, "<PartnerInfo/>") {
		t.Error("custom standard must render an empty PartnerInfo element")
	}
}

func TestUnconfiguredProtocolsOmitted(t *testing.T) {
	doc, err := NewBuilder().Build(Config{
		Name:     "P",
		Standard: "x12",
		FTP:      FTPOptions{Host: "ftp.example.com", Username: "u", Password: "p"},
	}, "")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !strings.Contains(doc, "FTPCommunicationOptions") {
		t.Error("configured FTP protocol missing")
	}
	for _, absent := range []string{"SFTPCommunicationOptions", "HTTPCommunicationOptions", "AS2CommunicationOptions", "MLLPCommunicationOptions", "OFTPCommunicationOptions", "DiskCommunicationOptions"} {
		if strings.Contains(doc, absent) {
			t.Errorf("unconfigured protocol %q must be absent", absent)
		}
	}
}

func TestBuildIdempotent(t *testing.T) {
	cfg := Config{
		Name:     "P",
		Standard: "x12",
		X12:      X12Info{ISAID: "A", ISAQualifier: "ZZ"},
		FTP:      FTPOptions{Host: "ftp.example.com"},
	}
	b := NewBuilder()
	first, err := b.Build(cfg, "f1")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	second, err := b.Build(cfg, "f1")
	if err != nil {
		t.Fatalf("second build failed: %v", err)
	}
	if first != second {
		t.Fatal("identical config must produce identical documents")
	}
}

func TestFTPDefaults(t *testing.T) {
	frag := FTPOptions{Host: "h"}.Fragment()
	got := frag.Render()
	if !strings.Contains(got, `port="21"`) {
		t.Error("FTP port must default to 21")
	}
	if !strings.Contains(got, `connectionMode="passive"`) {
		t.Error("FTP connection mode must default to passive")
	}
}

func TestFTPNilWhenUnconfigured(t *testing.T) {
	if frag := (FTPOptions{}).Fragment(); frag != nil {
		t.Fatal("FTP without host must yield no fragment")
	}
}

func TestFTPGetOptionsDisableDefaults(t *testing.T) {
	got := FTPOptions{Host: "h", RemoteDirectory: "/inbox", GetAction: "actionget"}.Fragment().Render()
	if !strings.Contains(got, `useDefaultGetOptions="false"`) {
		t.Error("explicit get options must disable platform defaults")
	}
}

func TestSFTPDefaults(t *testing.T) {
	got := SFTPOptions{Host: "h"}.Fragment().Render()
	if !strings.Contains(got, `port="22"`) {
		t.Error("SFTP port must default to 22")
	}
}

func TestHTTPAuthTypes(t *testing.T) {
	got := HTTPOptions{URL: "https://x", AuthenticationType: "basic", Username: "u", Password: "p"}.Fragment().Render()
	if !strings.Contains(got, `authenticationType="BASIC"`) {
		t.Error("auth type must be normalized to uppercase")
	}
	if !strings.Contains(got, "HTTPAuthSettings") {
		t.Error("basic auth must emit auth settings")
	}

	got = HTTPOptions{URL: "https://x", AuthenticationType: "bogus"}.Fragment().Render()
	if !strings.Contains(got, `authenticationType="NONE"`) {
		t.Error("unknown auth type must fall back to NONE")
	}
	if strings.Contains(got, "HTTPAuthSettings") {
		t.Error("no credentials: auth settings must be absent")
	}
}

func TestHTTPOAuth2(t *testing.T) {
	got := HTTPOptions{
		URL:                "https://x",
		AuthenticationType: "oauth2",
		OAuthTokenURL:      "https://x/token",
		OAuthClientID:      "cid",
		OAuthClientSecret:  "secret",
		OAuthScope:         "read",
	}.Fragment().Render()
	for _, want := range []string{
		"HTTPOAuth2Settings",
		`grantType="client_credentials"`,
		`clientId="cid"`,
		`url="https://x/token"`,
		"<scope>read</scope>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("oauth2 fragment missing %q in:\n%s", want, got)
		}
	}
}

func TestAS2EncryptionAlgorithmHyphenated(t *testing.T) {
	got := AS2Options{URL: "https://as2", Encrypted: "true", EncryptionAlgorithm: "aes256"}.Fragment().Render()
	if !strings.Contains(got, `encryptionAlgorithm="aes-256"`) {
		t.Errorf("cipher name not hyphenated:\n%s", got)
	}
}

func TestAS2SendOptionsCarryMDNAndMessage(t *testing.T) {
	got := AS2Options{URL: "https://as2", Signed: "true", RequestMDN: "true"}.Fragment().Render()
	iMDN := strings.Index(got, "AS2MDNOptions")
	iMsg := strings.Index(got, "AS2MessageOptions")
	if iMDN < 0 || iMsg < 0 {
		t.Fatalf("send options must include both MDN and message blocks:\n%s", got)
	}
	if iMDN > iMsg {
		t.Error("MDN options must precede message options")
	}
}

func TestMLLPRetryClamped(t *testing.T) {
	got := MLLPOptions{Host: "h", Port: 2575, MaxRetry: 99}.Fragment().Render()
	if !strings.Contains(got, `maxRetry="5"`) {
		t.Errorf("retry above 5 must clamp to 5:\n%s", got)
	}
	got = MLLPOptions{Host: "h", Port: 2575}.Fragment().Render()
	if !strings.Contains(got, `maxRetry="1"`) {
		t.Errorf("unset retry must clamp to 1:\n%s", got)
	}
}

func TestMLLPDelimiters(t *testing.T) {
	got := MLLPOptions{Host: "h", Port: 2575}.Fragment().Render()
	for _, want := range []string{
		`<startBlock delimiterValue="bytecharacter" delimiterSpecial="0B"/>`,
		`<endBlock delimiterValue="bytecharacter" delimiterSpecial="1C"/>`,
		`<endData delimiterValue="bytecharacter" delimiterSpecial="0D"/>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("MLLP fragment missing %q", want)
		}
	}
}

func TestMLLPRequiresHostAndPort(t *testing.T) {
	if frag := (MLLPOptions{Host: "h"}).Fragment(); frag != nil {
		t.Error("MLLP without port must yield no fragment")
	}
	if frag := (MLLPOptions{Port: 2575}).Fragment(); frag != nil {
		t.Error("MLLP without host must yield no fragment")
	}
}

func TestOFTPDefaults(t *testing.T) {
	got := OFTPOptions{Host: "h", SSIDCode: "O0123"}.Fragment().Render()
	if !strings.Contains(got, `port="3305"`) {
		t.Error("OFTP port must default to 3305")
	}
	if !strings.Contains(got, `ssidcode="O0123"`) {
		t.Error("OFTP partner info missing")
	}
}

func TestDiskFileFilterDefault(t *testing.T) {
	got := DiskOptions{GetDirectory: "/in"}.Fragment().Render()
	if !strings.Contains(got, `fileFilter="*"`) {
		t.Error("disk get filter must default to *")
	}
}
