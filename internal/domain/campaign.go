package domain

// Campaign is a marketing campaign (campaigns table).
type Campaign struct {
	Meta
	Name           string         `json:"name"`
	Type           CampaignType   `json:"type"`
	Status         CampaignStatus `json:"status"`
	Budget         float64        `json:"budget"`
	Spent          float64        `json:"spent"`
	LeadsGenerated int            `json:"leads_generated"`
	StartDate      string         `json:"start_date"`
	EndDate        string         `json:"end_date"`
	Notes          string         `json:"notes"`
}

func (*Campaign) Kind() Kind { return KindCampaign }

type CampaignType string

const (
	CampaignTypeEmail   CampaignType = "email"
	CampaignTypeSocial  CampaignType = "social"
	CampaignTypePPC     CampaignType = "ppc"
	CampaignTypeSEO     CampaignType = "seo"
	CampaignTypeContent CampaignType = "content"
	CampaignTypeEvent   CampaignType = "event"
)

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
)

var campaignDescriptor = Descriptor{
	Kind:  KindCampaign,
	Table: "campaigns",
	Fields: []Field{
		{Name: "name", Type: FieldString, Required: true},
		{Name: "type", Type: FieldString, Required: true, Enum: enum(
			CampaignTypeEmail, CampaignTypeSocial, CampaignTypePPC,
			CampaignTypeSEO, CampaignTypeContent, CampaignTypeEvent,
		)},
		{Name: "status", Type: FieldString, Required: true, Default: string(CampaignStatusDraft), Enum: enum(
			CampaignStatusDraft, CampaignStatusActive, CampaignStatusPaused, CampaignStatusCompleted,
		)},
		{Name: "budget", Type: FieldNumber},
		{Name: "spent", Type: FieldNumber},
		{Name: "leads_generated", Type: FieldInteger},
		{Name: "start_date", Type: FieldDate},
		{Name: "end_date", Type: FieldDate},
		{Name: "notes", Type: FieldString},
	},
	New: func() Record { return &Campaign{} },
}
