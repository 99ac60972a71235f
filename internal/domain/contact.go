package domain

// Contact is an address-book entry (contacts table).
type Contact struct {
	Meta
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone"`
	Company  string      `json:"company"`
	Position string      `json:"position"`
	Type     ContactType `json:"type"`
	Notes    string      `json:"notes"`
}

func (*Contact) Kind() Kind { return KindContact }

type ContactType string

const (
	ContactTypeClient   ContactType = "client"
	ContactTypeProspect ContactType = "prospect"
	ContactTypePartner  ContactType = "partner"
	ContactTypeVendor   ContactType = "vendor"
	ContactTypeOther    ContactType = "other"
)

var contactDescriptor = Descriptor{
	Kind:  KindContact,
	Table: "contacts",
	Fields: []Field{
		{Name: "name", Type: FieldString, Required: true},
		{Name: "email", Type: FieldString},
		{Name: "phone", Type: FieldString},
		{Name: "company", Type: FieldString},
		{Name: "position", Type: FieldString},
		{Name: "type", Type: FieldString, Required: true, Default: string(ContactTypeProspect), Enum: enum(
			ContactTypeClient, ContactTypeProspect, ContactTypePartner, ContactTypeVendor, ContactTypeOther,
		)},
		{Name: "notes", Type: FieldString},
	},
	New: func() Record { return &Contact{} },
}
