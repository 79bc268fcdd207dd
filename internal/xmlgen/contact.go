package xmlgen

// ContactInfo is the contact block shared by every trading partner standard.
// All fields are optional.
type ContactInfo struct {
	Name       string `json:"contact_name,omitempty" yaml:"contact_name,omitempty"`
	Email      string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone      string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Fax        string `json:"fax,omitempty" yaml:"fax,omitempty"`
	Address    string `json:"address,omitempty" yaml:"address,omitempty"`
	Address2   string `json:"address2,omitempty" yaml:"address2,omitempty"`
	City       string `json:"city,omitempty" yaml:"city,omitempty"`
	State      string `json:"state,omitempty" yaml:"state,omitempty"`
	Country    string `json:"country,omitempty" yaml:"country,omitempty"`
	PostalCode string `json:"postal_code,omitempty" yaml:"postal_code,omitempty"`
}

// IsZero reports whether no contact field is set.
func (c ContactInfo) IsZero() bool {
	return c == ContactInfo{}
}

// Fragment renders the ContactInfo element. When every field is blank the
// platform still expects the element to exist, so an empty one is returned.
func (c ContactInfo) Fragment() *Element {
	if c.IsZero() {
		return NewElement("ContactInfo")
	}
	return NewElement("ContactInfo").Child(
		TextElement("name", c.Name),
		TextElement("emailAddress", c.Email),
		TextElement("phoneNumber", c.Phone),
		TextElement("faxNumber", c.Fax),
		TextElement("address", c.Address),
		TextElement("address2", c.Address2),
		TextElement("city", c.City),
		TextElement("state", c.State),
		TextElement("country", c.Country),
		TextElement("postalCode", c.PostalCode),
	)
}
