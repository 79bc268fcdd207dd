package xmlgen

import "strings"

const (
	componentNamespace = "http://api.platform.boomi.com/"
	xsiNamespace       = "http://www.w3.org/2001/XMLSchema-instance"
)

// Envelope carries the component-level attributes required by the platform's
// generic Component element. Name, Type and FolderName are always emitted;
// the rest only when set.
type Envelope struct {
	Name        string
	Type        string
	SubType     string
	FolderName  string
	FolderID    string
	Description string
}

// Wrap embeds inner in the platform's Component envelope. Envelope text is
// escaped here regardless of what the inner builder did, so a fault in one
// path cannot corrupt the other.
func Wrap(env Envelope, inner *Element) string {
	folder := env.FolderName
	if folder == "" {
		folder = "Home"
	}

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString(`<bns:Component xmlns:bns="` + componentNamespace + `"` + "\n")
	sb.WriteString(`               xmlns:xsi="` + xsiNamespace + `"` + "\n")
	sb.WriteString(`               type="` + Escape(env.Type) + `"`)
	if env.SubType != "" {
		sb.WriteString(` subType="` + Escape(env.SubType) + `"`)
	}
	sb.WriteString("\n")
	sb.WriteString(`               name="` + Escape(env.Name) + `"` + "\n")
	sb.WriteString(`               folderName="` + Escape(folder) + `"`)
	if env.FolderID != "" {
		sb.WriteString("\n")
		sb.WriteString(`               folderId="` + Escape(env.FolderID) + `"`)
	}
	sb.WriteString(">\n")
	sb.WriteString("  <bns:encryptedValues/>\n")
	sb.WriteString("  <bns:description>" + Escape(env.Description) + "</bns:description>\n")
	sb.WriteString("  <bns:object>\n")
	sb.WriteString(indentLines(inner.Render(), "    "))
	sb.WriteString("\n  </bns:object>\n")
	if env.Type == "process" {
		sb.WriteString("  <bns:processOverrides/>\n")
	}
	sb.WriteString("</bns:Component>")
	return sb.String()
}

func indentLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
