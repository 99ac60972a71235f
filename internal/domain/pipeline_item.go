package domain

// PipelineItem is a sales opportunity (pipeline_items table).
type PipelineItem struct {
	Meta
	Title             string        `json:"title"`
	ClientName        string        `json:"client_name"`
	Stage             PipelineStage `json:"stage"`
	Value             float64       `json:"value"`
	Probability       int           `json:"probability"` // 0-100
	ExpectedCloseDate string        `json:"expected_close_date"`
	Notes             string        `json:"notes"`
}

func (*PipelineItem) Kind() Kind { return KindPipelineItem }

type PipelineStage string

const (
	StageProspecting   PipelineStage = "prospecting"
	StageQualification PipelineStage = "qualification"
	StageProposal      PipelineStage = "proposal"
	StageNegotiation   PipelineStage = "negotiation"
	StageClosedWon     PipelineStage = "closed_won"
	StageClosedLost    PipelineStage = "closed_lost"
)

var pipelineItemDescriptor = Descriptor{
	Kind:  KindPipelineItem,
	Table: "pipeline_items",
	Fields: []Field{
		{Name: "title", Type: FieldString, Required: true},
		{Name: "client_name", Type: FieldString},
		{Name: "stage", Type: FieldString, Required: true, Default: string(StageProspecting), Enum: enum(
			StageProspecting, StageQualification, StageProposal,
			StageNegotiation, StageClosedWon, StageClosedLost,
		)},
		{Name: "value", Type: FieldNumber},
		{Name: "probability", Type: FieldInteger},
		{Name: "expected_close_date", Type: FieldDate},
		{Name: "notes", Type: FieldString},
	},
	New: func() Record { return &PipelineItem{} },
}
