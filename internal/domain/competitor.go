package domain

// Competitor is a SWOT profile of a rival agency (competitors table).
// The four SWOT lists are text[] columns, upsell_opportunities is jsonb.
type Competitor struct {
	Meta
	Name                string              `json:"name"`
	Website             string              `json:"website"`
	ThreatLevel         ThreatLevel         `json:"threat_level"`
	Strengths           []string            `json:"strengths"`
	Weaknesses          []string            `json:"weaknesses"`
	Opportunities       []string            `json:"opportunities"`
	Threats             []string            `json:"threats"`
	UpsellOpportunities []UpsellOpportunity `json:"upsell_opportunities"`
	Notes               string              `json:"notes"`
}

func (*Competitor) Kind() Kind { return KindCompetitor }

// UpsellOpportunity is a {service, priority, value} triple.
type UpsellOpportunity struct {
	Service  string   `json:"service"`
	Priority Priority `json:"priority"`
	Value    float64  `json:"value"`
}

type ThreatLevel string

const (
	ThreatLow    ThreatLevel = "low"
	ThreatMedium ThreatLevel = "medium"
	ThreatHigh   ThreatLevel = "high"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var priorityEnum = enum(PriorityLow, PriorityMedium, PriorityHigh)

var competitorDescriptor = Descriptor{
	Kind:  KindCompetitor,
	Table: "competitors",
	Fields: []Field{
		{Name: "name", Type: FieldString, Required: true},
		{Name: "website", Type: FieldString},
		{Name: "threat_level", Type: FieldString, Required: true, Default: string(ThreatMedium), Enum: enum(
			ThreatLow, ThreatMedium, ThreatHigh,
		)},
		{Name: "strengths", Type: FieldStringList},
		{Name: "weaknesses", Type: FieldStringList},
		{Name: "opportunities", Type: FieldStringList},
		{Name: "threats", Type: FieldStringList},
		{Name: "upsell_opportunities", Type: FieldUpsellList},
		{Name: "notes", Type: FieldString},
	},
	New: func() Record { return &Competitor{} },
}
