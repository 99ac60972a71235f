package domain

// Target is a goal tracked over periods (targets table).
// Values is an ordered double precision[] series, oldest first.
type Target struct {
	Meta
	Name   string       `json:"name"`
	Metric string       `json:"metric"`
	Period TargetPeriod `json:"period"`
	Goal   float64      `json:"goal"`
	Values []float64    `json:"values"`
	Status TargetStatus `json:"status"`
}

func (*Target) Kind() Kind { return KindTarget }

// Latest returns the most recent value, or 0 for an empty series.
func (t *Target) Latest() float64 {
	if len(t.Values) == 0 {
		return 0
	}
	return t.Values[len(t.Values)-1]
}

type TargetPeriod string

const (
	PeriodWeekly    TargetPeriod = "weekly"
	PeriodMonthly   TargetPeriod = "monthly"
	PeriodQuarterly TargetPeriod = "quarterly"
	PeriodYearly    TargetPeriod = "yearly"
)

type TargetStatus string

const (
	TargetOnTrack  TargetStatus = "on_track"
	TargetAtRisk   TargetStatus = "at_risk"
	TargetBehind   TargetStatus = "behind"
	TargetAchieved TargetStatus = "achieved"
)

var targetDescriptor = Descriptor{
	Kind:  KindTarget,
	Table: "targets",
	Fields: []Field{
		{Name: "name", Type: FieldString, Required: true},
		{Name: "metric", Type: FieldString},
		{Name: "period", Type: FieldString, Required: true, Default: string(PeriodMonthly), Enum: enum(
			PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly,
		)},
		{Name: "goal", Type: FieldNumber},
		{Name: "values", Type: FieldNumberList},
		{Name: "status", Type: FieldString, Required: true, Default: string(TargetOnTrack), Enum: enum(
			TargetOnTrack, TargetAtRisk, TargetBehind, TargetAchieved,
		)},
	},
	New: func() Record { return &Target{} },
}
