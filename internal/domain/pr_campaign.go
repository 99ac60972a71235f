package domain

// PRCampaign is a press/public-relations push (pr_campaigns table).
type PRCampaign struct {
	Meta
	Title      string           `json:"title"`
	Outlet     string           `json:"outlet"`
	Type       PRCampaignType   `json:"type"`
	Status     PRCampaignStatus `json:"status"`
	Reach      int              `json:"reach"`
	Budget     float64          `json:"budget"`
	LaunchDate string           `json:"launch_date"`
	Notes      string           `json:"notes"`
}

func (*PRCampaign) Kind() Kind { return KindPRCampaign }

type PRCampaignType string

const (
	PRTypePressRelease PRCampaignType = "press_release"
	PRTypeMediaPitch   PRCampaignType = "media_pitch"
	PRTypeInterview    PRCampaignType = "interview"
	PRTypeEvent        PRCampaignType = "event"
	PRTypeAward        PRCampaignType = "award"
)

type PRCampaignStatus string

const (
	PRStatusPlanning  PRCampaignStatus = "planning"
	PRStatusPitched   PRCampaignStatus = "pitched"
	PRStatusActive    PRCampaignStatus = "active"
	PRStatusPublished PRCampaignStatus = "published"
	PRStatusCompleted PRCampaignStatus = "completed"
	PRStatusCancelled PRCampaignStatus = "cancelled"
)

var prCampaignDescriptor = Descriptor{
	Kind:  KindPRCampaign,
	Table: "pr_campaigns",
	Fields: []Field{
		{Name: "title", Type: FieldString, Required: true},
		{Name: "outlet", Type: FieldString},
		{Name: "type", Type: FieldString, Required: true, Default: string(PRTypePressRelease), Enum: enum(
			PRTypePressRelease, PRTypeMediaPitch, PRTypeInterview, PRTypeEvent, PRTypeAward,
		)},
		{Name: "status", Type: FieldString, Required: true, Default: string(PRStatusPlanning), Enum: enum(
			PRStatusPlanning, PRStatusPitched, PRStatusActive, PRStatusPublished, PRStatusCompleted, PRStatusCancelled,
		)},
		{Name: "reach", Type: FieldInteger},
		{Name: "budget", Type: FieldNumber},
		{Name: "launch_date", Type: FieldDate},
		{Name: "notes", Type: FieldString},
	},
	New: func() Record { return &PRCampaign{} },
}
