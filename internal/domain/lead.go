package domain

// Lead is an inbound prospect (leads table).
type Lead struct {
	Meta
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Company   string     `json:"company"`
	Website   string     `json:"website"`
	Source    string     `json:"source"`
	Status    LeadStatus `json:"status"`
	Value     float64    `json:"value"`
	Notes     string     `json:"notes"`
}

func (*Lead) Kind() Kind { return KindLead }

// LeadStatus lead lifecycle
type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "new"
	LeadStatusContacted   LeadStatus = "contacted"
	LeadStatusQualified   LeadStatus = "qualified"
	LeadStatusProposal    LeadStatus = "proposal"
	LeadStatusNegotiation LeadStatus = "negotiation"
	LeadStatusWon         LeadStatus = "won"
	LeadStatusLost        LeadStatus = "lost"
)

var leadDescriptor = Descriptor{
	Kind:  KindLead,
	Table: "leads",
	Fields: []Field{
		{Name: "first_name", Type: FieldString, Required: true},
		{Name: "last_name", Type: FieldString},
		{Name: "email", Type: FieldString, Required: true},
		{Name: "phone", Type: FieldString},
		{Name: "company", Type: FieldString},
		{Name: "website", Type: FieldString},
		{Name: "source", Type: FieldString},
		{Name: "status", Type: FieldString, Required: true, Default: string(LeadStatusNew), Enum: enum(
			LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusProposal,
			LeadStatusNegotiation, LeadStatusWon, LeadStatusLost,
		)},
		{Name: "value", Type: FieldNumber},
		{Name: "notes", Type: FieldString},
	},
	New: func() Record { return &Lead{} },
}
