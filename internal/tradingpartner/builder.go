// Package tradingpartner builds trading partner component documents. Each
// partner combines a standard-specific control block with zero or more
// communication methods; unconfigured protocols are simply absent from the
// rendered document.
package tradingpartner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mdelgado-io/platformforge/internal/xmlgen"
)

// Config describes a complete trading partner component.
type Config struct {
	Name           string `json:"name" yaml:"name"`
	Standard       string `json:"standard" yaml:"standard"`
	Classification string `json:"classification,omitempty" yaml:"classification,omitempty"`
	FolderName     string `json:"folder_name,omitempty" yaml:"folder_name,omitempty"`
	Description    string `json:"description,omitempty" yaml:"description,omitempty"`
	Identifier     string `json:"identifier,omitempty" yaml:"identifier,omitempty"`

	Contact xmlgen.ContactInfo `json:"contact,omitempty" yaml:"contact,omitempty"`

	X12        X12Info        `json:"x12,omitempty" yaml:"x12,omitempty"`
	Edifact    EdifactInfo    `json:"edifact,omitempty" yaml:"edifact,omitempty"`
	HL7        HL7Info        `json:"hl7,omitempty" yaml:"hl7,omitempty"`
	RosettaNet RosettaNetInfo `json:"rosettanet,omitempty" yaml:"rosettanet,omitempty"`
	Tradacoms  TradacomsInfo  `json:"tradacoms,omitempty" yaml:"tradacoms,omitempty"`
	Odette     OdetteInfo     `json:"odette,omitempty" yaml:"odette,omitempty"`

	Disk DiskOptions `json:"disk,omitempty" yaml:"disk,omitempty"`
	FTP  FTPOptions  `json:"ftp,omitempty" yaml:"ftp,omitempty"`
	SFTP SFTPOptions `json:"sftp,omitempty" yaml:"sftp,omitempty"`
	HTTP HTTPOptions `json:"http,omitempty" yaml:"http,omitempty"`
	AS2  AS2Options  `json:"as2,omitempty" yaml:"as2,omitempty"`
	MLLP MLLPOptions `json:"mllp,omitempty" yaml:"mllp,omitempty"`
	OFTP OFTPOptions `json:"oftp,omitempty" yaml:"oftp,omitempty"`
}

// Builder renders trading partner components. The standard dispatch table is
// built once at construction; there is no package-level mutable state.
type Builder struct {
	standards map[string]func(Config) *xmlgen.Element
}

// NewBuilder creates a trading partner builder supporting every known
// standard.
func NewBuilder() *Builder {
	return &Builder{
		standards: map[string]func(Config) *xmlgen.Element{
			StandardX12:        func(c Config) *xmlgen.Element { return c.X12.fragment() },
			StandardEdifact:    func(c Config) *xmlgen.Element { return c.Edifact.fragment() },
			StandardHL7:        func(c Config) *xmlgen.Element { return c.HL7.fragment() },
			StandardRosettaNet: func(c Config) *xmlgen.Element { return c.RosettaNet.fragment() },
			StandardTradacoms:  func(c Config) *xmlgen.Element { return c.Tradacoms.fragment() },
			StandardOdette:     func(c Config) *xmlgen.Element { return c.Odette.fragment() },
			StandardCustom:     func(Config) *xmlgen.Element { return nil },
		},
	}
}

// Supported returns the accepted standard names, sorted.
func (b *Builder) Supported() []string {
	names := make([]string, 0, len(b.standards))
	for name := range b.standards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build produces the complete trading partner component document. folderID
// may be empty, in which case the platform places the component in the
// account root.
func (b *Builder) Build(cfg Config, folderID string) (string, error) {
	inner, err := b.BuildObject(cfg)
	if err != nil {
		return "", err
	}

	return xmlgen.Wrap(xmlgen.Envelope{
		Name:        cfg.Name,
		Type:        "tradingpartner",
		SubType:     strings.ToLower(cfg.Standard),
		FolderName:  cfg.FolderName,
		FolderID:    folderID,
		Description: cfg.Description,
	}, inner), nil
}

// BuildObject renders the inner partner element without the component
// envelope.
func (b *Builder) BuildObject(cfg Config) (*xmlgen.Element, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("trading partner name is required")
	}

	standard := strings.ToLower(strings.TrimSpace(cfg.Standard))
	partnerInfo, ok := b.standards[standard]
	if !ok {
		return nil, fmt.Errorf("unsupported trading partner standard %q (supported: %s)",
			cfg.Standard, strings.Join(b.Supported(), ", "))
	}

	classification := xmlgen.NormalizeEnumLower(cfg.Classification, "tradingpartner",
		"tradingpartner", "mycompany")

	root := xmlgen.NewElement("PartnerArchetype").
		Attr("xmlns", "").
		Attr("standard", standard).
		Attr("classification", classification).
		AttrIf("identifier", cfg.Identifier)

	root.Child(cfg.Contact.Fragment())

	info := xmlgen.NewElement("PartnerInfo")
	if frag := partnerInfo(cfg); frag != nil {
		info.Child(frag)
	}
	root.Child(info)

	comms := xmlgen.NewElement("PartnerCommunication")
	for _, frag := range []*xmlgen.Element{
		cfg.Disk.Fragment(),
		cfg.FTP.Fragment(),
		cfg.SFTP.Fragment(),
		cfg.HTTP.Fragment(),
		cfg.AS2.Fragment(),
		cfg.MLLP.Fragment(),
		cfg.OFTP.Fragment(),
	} {
		if frag != nil {
			comms.Child(frag)
		}
	}
	root.Child(comms)

	return root, nil
}
