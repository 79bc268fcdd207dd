// Package xmlgen builds component document fragments for the integration
// platform's Component API. Fragments are plain element trees rendered
// deterministically; builders never talk to the network.
package xmlgen

import "strings"

// Attr is a single XML attribute. Attribute order is preserved as written
// so rendered documents are byte-stable for identical input.
type Attr struct {
	Name  string
	Value string
}

// Element is one node in a fragment tree.
type Element struct {
	Name     string
	Attrs    []Attr
	Text     string
	Children []*Element
}

// NewElement creates an element with the given tag name.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// Attr appends an attribute and returns the element for chaining.
func (e *Element) Attr(name, value string) *Element {
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// AttrIf appends an attribute only when value is non-empty. Unset fields are
// omitted entirely; the platform treats attribute presence as "configured".
func (e *Element) AttrIf(name, value string) *Element {
	if value == "" {
		return e
	}
	return e.Attr(name, value)
}

// Child appends child elements and returns the parent for chaining.
func (e *Element) Child(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// SetText sets the element's text content.
func (e *Element) SetText(text string) *Element {
	e.Text = text
	return e
}

// TextElement creates a leaf element containing only text.
func TextElement(name, text string) *Element {
	return &Element{Name: name, Text: text}
}

// Render serializes the fragment with two-space indentation. All attribute
// values and text content are escaped; callers embed the result verbatim.
func (e *Element) Render() string {
	var sb strings.Builder
	e.render(&sb, 0)
	return sb.String()
}

func (e *Element) render(sb *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	sb.WriteString(indent)
	sb.WriteString("<")
	sb.WriteString(e.Name)
	for _, a := range e.Attrs {
		sb.WriteString(" ")
		sb.WriteString(a.Name)
		sb.WriteString(`="`)
		sb.WriteString(Escape(a.Value))
		sb.WriteString(`"`)
	}

	if len(e.Children) == 0 && e.Text == "" {
		sb.WriteString("/>")
		return
	}

	sb.WriteString(">")
	if e.Text != "" {
		sb.WriteString(Escape(e.Text))
	}
	for _, c := range e.Children {
		sb.WriteString("\n")
		c.render(sb, depth+1)
	}
	if len(e.Children) > 0 {
		sb.WriteString("\n")
		sb.WriteString(indent)
	}
	sb.WriteString("</")
	sb.WriteString(e.Name)
	sb.WriteString(">")
}
