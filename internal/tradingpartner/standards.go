package tradingpartner

import (
	"github.com/mdelgado-io/platformforge/internal/xmlgen"
)

// Standard identifiers accepted by the builder. The assembler owns the
// dispatch table; these constants are the canonical lowercase forms.
const (
	StandardX12        = "x12"
	StandardEdifact    = "edifact"
	StandardHL7        = "hl7"
	StandardRosettaNet = "rosettanet"
	StandardTradacoms  = "tradacoms"
	StandardOdette     = "odette"
	StandardCustom     = "custom"
)

// X12Info holds the ISA/GS identifiers for an X12 partner.
type X12Info struct {
	ISAID          string `json:"isa_id,omitempty" yaml:"isa_id,omitempty"`
	ISAQualifier   string `json:"isa_qualifier,omitempty" yaml:"isa_qualifier,omitempty"`
	GSID           string `json:"gs_id,omitempty" yaml:"gs_id,omitempty"`
	Version        string `json:"version,omitempty" yaml:"version,omitempty"`
	AckRequested   string `json:"ack_requested,omitempty" yaml:"ack_requested,omitempty"`
	TestIndicator  string `json:"test_indicator,omitempty" yaml:"test_indicator,omitempty"`
	ElementDelim   string `json:"element_delimiter,omitempty" yaml:"element_delimiter,omitempty"`
	SegmentTerm    string `json:"segment_terminator,omitempty" yaml:"segment_terminator,omitempty"`
	RespAgencyCode string `json:"responsible_agency_code,omitempty" yaml:"responsible_agency_code,omitempty"`
}

func (i X12Info) fragment() *xmlgen.Element {
	isa := xmlgen.NewElement("X12ControlInfo").Child(
		xmlgen.NewElement("ISAControlInfo").
			AttrIf("interchangeId", i.ISAID).
			AttrIf("interchangeIdQualifier", qualifierAttr(i.ISAQualifier, "X12IDQUAL_")).
			AttrIf("ackrequested", boolTokenIf(i.AckRequested)).
			AttrIf("testindicator", xmlgen.NormalizeEnum(i.TestIndicator, "", "P", "T")),
		xmlgen.NewElement("GSControlInfo").
			AttrIf("applicationcode", i.GSID).
			AttrIf("gsVersion", i.Version).
			AttrIf("respagencycode", xmlgen.NormalizeEnum(i.RespAgencyCode, "", "T", "X")),
	)

	partner := xmlgen.NewElement("X12PartnerInfo").Child(isa)

	opts := xmlgen.NewElement("X12Options").
		AttrIf("envelopeoption", "groupall").
		AttrIf("acknowledgementoption", "donotackitem").
		AttrIf("elementDelimiter", delimiterToken(i.ElementDelim)).
		AttrIf("segmentTerminator", delimiterToken(i.SegmentTerm)).
		AttrIf("outboundInterchangeValidation", "true").
		AttrIf("outboundValidationOption", "filterError")
	partner.Child(opts)

	return partner
}

// EdifactInfo holds the UNB identifiers for an EDIFACT partner.
type EdifactInfo struct {
	InterchangeID        string `json:"interchange_id,omitempty" yaml:"interchange_id,omitempty"`
	InterchangeQualifier string `json:"interchange_qualifier,omitempty" yaml:"interchange_qualifier,omitempty"`
	SyntaxID             string `json:"syntax_id,omitempty" yaml:"syntax_id,omitempty"`
	SyntaxVersion        string `json:"syntax_version,omitempty" yaml:"syntax_version,omitempty"`
	TestIndicator        string `json:"test_indicator,omitempty" yaml:"test_indicator,omitempty"`
}

func (i EdifactInfo) fragment() *xmlgen.Element {
	unb := xmlgen.NewElement("UNBControlInfo").
		AttrIf("interchangeId", i.InterchangeID).
		AttrIf("interchangeIdQualifier", qualifierAttr(i.InterchangeQualifier, "EDIFACTIDQUAL_")).
		AttrIf("syntaxId", i.SyntaxID).
		AttrIf("syntaxVersion", i.SyntaxVersion).
		AttrIf("testIndicator", boolTokenIf(i.TestIndicator))

	return xmlgen.NewElement("EdifactPartnerInfo").Child(
		xmlgen.NewElement("EdifactControlInfo").Child(unb),
		xmlgen.NewElement("EdifactOptions").
			Attr("elementDelimiter", "plussign").
			Attr("segmentTerminator", "singlequote").
			Attr("compositeDelimiter", "colon"),
	)
}

// HL7Info holds the MSH identifiers for an HL7 partner.
type HL7Info struct {
	ApplicationID string `json:"application_id,omitempty" yaml:"application_id,omitempty"`
	FacilityID    string `json:"facility_id,omitempty" yaml:"facility_id,omitempty"`
	NetworkID     string `json:"network_id,omitempty" yaml:"network_id,omitempty"`
	IDType        string `json:"id_type,omitempty" yaml:"id_type,omitempty"`
}

func (i HL7Info) fragment() *xmlgen.Element {
	msh := xmlgen.NewElement("MSHControlInfo")
	if i.ApplicationID != "" || i.IDType != "" {
		msh.Child(xmlgen.NewElement("application").
			AttrIf("namespaceId", i.ApplicationID).
			AttrIf("HdType", xmlgen.NormalizeEnum(i.IDType, "", "GUID", "DNS", "HCD", "ISO", "URI", "UUID", "X400", "X500")))
	}
	if i.FacilityID != "" {
		msh.Child(xmlgen.NewElement("facility").Attr("namespaceId", i.FacilityID))
	}
	if i.NetworkID != "" {
		msh.Child(xmlgen.NewElement("networkAddress").Attr("namespaceId", i.NetworkID))
	}

	return xmlgen.NewElement("HL7PartnerInfo").Child(
		xmlgen.NewElement("HL7ControlInfo").Child(msh),
		xmlgen.NewElement("HL7Options").
			Attr("elementDelimiter", "pipe").
			Attr("segmentTerminator", "carriagereturn").
			Attr("acceptackoption", "AL").
			Attr("appackoption", "AL").
			Attr("batchoption", "none"),
	)
}

// RosettaNetInfo holds the PIP identifiers for a RosettaNet partner.
type RosettaNetInfo struct {
	PartnerID        string `json:"partner_id,omitempty" yaml:"partner_id,omitempty"`
	PartnerIDType    string `json:"partner_id_type,omitempty" yaml:"partner_id_type,omitempty"`
	PartnerLocation  string `json:"partner_location,omitempty" yaml:"partner_location,omitempty"`
	Version          string `json:"version,omitempty" yaml:"version,omitempty"`
	SupplyChainCode  string `json:"supply_chain_code,omitempty" yaml:"supply_chain_code,omitempty"`
	ClassificationID string `json:"classification_id,omitempty" yaml:"classification_id,omitempty"`
}

func (i RosettaNetInfo) fragment() *xmlgen.Element {
	version := xmlgen.NormalizeEnum(i.Version, "V2_0", "V1_1", "V2_0")

	control := xmlgen.NewElement("RosettaNetControlInfo").
		AttrIf("partnerId", i.PartnerID).
		AttrIf("partnerIdType", i.PartnerIDType).
		AttrIf("partnerLocation", i.PartnerLocation).
		AttrIf("supplyChainCode", i.SupplyChainCode).
		AttrIf("classificationCode", i.ClassificationID)

	return xmlgen.NewElement("RosettaNetPartnerInfo").Child(
		control,
		xmlgen.NewElement("RosettaNetOptions").
			Attr("version", version).
			Attr("contentTransferEncoding", "binary").
			Attr("encryptServiceHeader", "false"),
	)
}

// TradacomsInfo holds the STX identifiers for a Tradacoms partner.
type TradacomsInfo struct {
	InterchangeID   string `json:"interchange_id,omitempty" yaml:"interchange_id,omitempty"`
	InterchangeName string `json:"interchange_name,omitempty" yaml:"interchange_name,omitempty"`
}

func (i TradacomsInfo) fragment() *xmlgen.Element {
	stx := xmlgen.NewElement("STXControlInfo").
		AttrIf("interchangeId", i.InterchangeID).
		AttrIf("interchangeName", i.InterchangeName)

	return xmlgen.NewElement("TradacomsPartnerInfo").Child(
		xmlgen.NewElement("TradacomsControlInfo").Child(stx),
		xmlgen.NewElement("TradacomsOptions").
			Attr("compositeDelimiter", "colon").
			Attr("elementDelimiter", "plussign").
			Attr("segmentTerminator", "singlequote"),
	)
}

// OdetteInfo holds the UNB identifiers for an ODETTE partner.
type OdetteInfo struct {
	InterchangeID        string `json:"interchange_id,omitempty" yaml:"interchange_id,omitempty"`
	InterchangeQualifier string `json:"interchange_qualifier,omitempty" yaml:"interchange_qualifier,omitempty"`
	SyntaxID             string `json:"syntax_id,omitempty" yaml:"syntax_id,omitempty"`
	SyntaxVersion        string `json:"syntax_version,omitempty" yaml:"syntax_version,omitempty"`
	TestIndicator        string `json:"test_indicator,omitempty" yaml:"test_indicator,omitempty"`
}

func (i OdetteInfo) fragment() *xmlgen.Element {
	unb := xmlgen.NewElement("UNBControlInfo").
		AttrIf("interchangeId", i.InterchangeID).
		AttrIf("interchangeIdQualifier", qualifierAttr(i.InterchangeQualifier, "ODETTEIDQUAL_")).
		AttrIf("syntaxId", i.SyntaxID).
		AttrIf("syntaxVersion", i.SyntaxVersion).
		AttrIf("testIndicator", boolTokenIf(i.TestIndicator))

	return xmlgen.NewElement("OdettePartnerInfo").Child(
		xmlgen.NewElement("OdetteControlInfo").Child(unb),
		xmlgen.NewElement("OdetteOptions").
			Attr("elementDelimiter", "plussign").
			Attr("segmentTerminator", "singlequote").
			Attr("compositeDelimiter", "colon"),
	)
}

// qualifierAttr applies the standard's qualifier prefix to a short code.
// Values already carrying the prefix pass through unchanged; empty stays
// empty so the attribute is omitted.
func qualifierAttr(value, prefix string) string {
	if value == "" {
		return ""
	}
	return xmlgen.EnsurePrefix(value, prefix)
}

// delimiterToken maps a literal delimiter character to the platform's token
// name. Already-tokenized values pass through.
func delimiterToken(value string) string {
	switch value {
	case "":
		return ""
	case "*":
		return "stardelimited"
	case "|":
		return "pipe"
	case "~":
		return "tildedelimited"
	case "^":
		return "caratdelimited"
	case "\n":
		return "newline"
	case "\r":
		return "carriagereturn"
	default:
		return value
	}
}
