package domain

// Partnership is a referral or strategic partner (partnerships table).
type Partnership struct {
	Meta
	PartnerName  string            `json:"partner_name"`
	ContactName  string            `json:"contact_name"`
	Email        string            `json:"email"`
	Type         PartnershipType   `json:"type"`
	Status       PartnershipStatus `json:"status"`
	RevenueShare float64           `json:"revenue_share"` // percent
	Notes        string            `json:"notes"`
}

func (*Partnership) Kind() Kind { return KindPartnership }

type PartnershipType string

const (
	PartnershipReferral  PartnershipType = "referral"
	PartnershipStrategic PartnershipType = "strategic"
	PartnershipAffiliate PartnershipType = "affiliate"
	PartnershipReseller  PartnershipType = "reseller"
	PartnershipVendor    PartnershipType = "vendor"
)

type PartnershipStatus string

const (
	PartnershipStatusProspect    PartnershipStatus = "prospect"
	PartnershipStatusNegotiating PartnershipStatus = "negotiating"
	PartnershipStatusActive      PartnershipStatus = "active"
	PartnershipStatusInactive    PartnershipStatus = "inactive"
)

var partnershipDescriptor = Descriptor{
	Kind:  KindPartnership,
	Table: "partnerships",
	Fields: []Field{
		{Name: "partner_name", Type: FieldString, Required: true},
		{Name: "contact_name", Type: FieldString},
		{Name: "email", Type: FieldString},
		{Name: "type", Type: FieldString, Required: true, Default: string(PartnershipReferral), Enum: enum(
			PartnershipReferral, PartnershipStrategic, PartnershipAffiliate, PartnershipReseller, PartnershipVendor,
		)},
		{Name: "status", Type: FieldString, Required: true, Default: string(PartnershipStatusProspect), Enum: enum(
			PartnershipStatusProspect, PartnershipStatusNegotiating, PartnershipStatusActive, PartnershipStatusInactive,
		)},
		{Name: "revenue_share", Type: FieldNumber},
		{Name: "notes", Type: FieldString},
	},
	New: func() Record { return &Partnership{} },
}
