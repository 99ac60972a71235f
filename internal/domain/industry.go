package domain

// Industry is a vertical the agency researches or targets (industries table).
type Industry struct {
	Meta
	Name        string         `json:"name"`
	Description string         `json:"description"`
	MarketSize  float64        `json:"market_size"`
	GrowthRate  float64        `json:"growth_rate"`
	Status      IndustryStatus `json:"status"`
}

func (*Industry) Kind() Kind { return KindIndustry }

type IndustryStatus string

const (
	IndustryResearching IndustryStatus = "researching"
	IndustryTargeting   IndustryStatus = "targeting"
	IndustryActive      IndustryStatus = "active"
	IndustryPaused      IndustryStatus = "paused"
)

var industryDescriptor = Descriptor{
	Kind:  KindIndustry,
	Table: "industries",
	Fields: []Field{
		{Name: "name", Type: FieldString, Required: true},
		{Name: "description", Type: FieldString},
		{Name: "market_size", Type: FieldNumber},
		{Name: "growth_rate", Type: FieldNumber},
		{Name: "status", Type: FieldString, Required: true, Default: string(IndustryResearching), Enum: enum(
			IndustryResearching, IndustryTargeting, IndustryActive, IndustryPaused,
		)},
	},
	New: func() Record { return &Industry{} },
}
