package domain

import "time"

// Kind names a collection in the record store. The same string is the
// reserved local-cache key for that entity.
type Kind string

const (
	KindLead         Kind = "leads"
	KindPipelineItem Kind = "pipeline_items"
	KindCampaign     Kind = "campaigns"
	KindCompetitor   Kind = "competitors"
	KindContact      Kind = "contacts"
	KindBooking      Kind = "bookings"
	KindPartnership  Kind = "partnerships"
	KindIndustry     Kind = "industries"
	KindTarget       Kind = "targets"
	KindPRCampaign   Kind = "pr_campaigns"
	KindMediaContact Kind = "media_contacts"
)

// Meta holds the store-managed columns shared by every entity.
// ID and both timestamps are assigned by the store, never by the client.
type Meta struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetMeta exposes the embedded Meta so generic code can read ids and owners.
func (m *Meta) GetMeta() *Meta { return m }

// Record is implemented by the pointer type of every entity.
type Record interface {
	Kind() Kind
	GetMeta() *Meta
}

// FieldType describes how a JSON value for a column is checked.
type FieldType int

const (
	FieldString FieldType = iota
	FieldNumber
	FieldInteger
	FieldDate // YYYY-MM-DD, kept as text
	FieldTime // HH:MM, kept as text
	FieldStringList
	FieldNumberList
	FieldUpsellList
)

// Field is one writable column of a collection.
type Field struct {
	Name     string
	Type     FieldType
	Required bool
	Enum     []string
	Default  string // applied on create when the value is absent or blank
}

// Descriptor ties a Kind to its table, writable fields and typed record.
type Descriptor struct {
	Kind   Kind
	Table  string
	Fields []Field
	New    func() Record
}

// Field looks up a writable field by column name.
func (d *Descriptor) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Columns returns the insertable columns: the owner plus every writable field.
func (d *Descriptor) Columns() []string {
	cols := make([]string, 0, len(d.Fields)+1)
	cols = append(cols, ColumnUserID)
	for _, f := range d.Fields {
		cols = append(cols, f.Name)
	}
	return cols
}

const (
	ColumnID        = "id"
	ColumnUserID    = "user_id"
	ColumnCreatedAt = "created_at"
	ColumnUpdatedAt = "updated_at"
)

// Kinds lists every collection in a stable order.
var Kinds = []Kind{
	KindLead,
	KindPipelineItem,
	KindCampaign,
	KindCompetitor,
	KindContact,
	KindBooking,
	KindPartnership,
	KindIndustry,
	KindTarget,
	KindPRCampaign,
	KindMediaContact,
}

var descriptors = map[Kind]*Descriptor{
	KindLead:         &leadDescriptor,
	KindPipelineItem: &pipelineItemDescriptor,
	KindCampaign:     &campaignDescriptor,
	KindCompetitor:   &competitorDescriptor,
	KindContact:      &contactDescriptor,
	KindBooking:      &bookingDescriptor,
	KindPartnership:  &partnershipDescriptor,
	KindIndustry:     &industryDescriptor,
	KindTarget:       &targetDescriptor,
	KindPRCampaign:   &prCampaignDescriptor,
	KindMediaContact: &mediaContactDescriptor,
}

// Lookup resolves a collection name.
func Lookup(kind Kind) (*Descriptor, error) {
	d, ok := descriptors[kind]
	if !ok {
		return nil, &ValidationError{Field: "collection", Reason: "unknown collection " + string(kind)}
	}
	return d, nil
}

// ParseKind resolves a collection name coming from a URL or payload.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, err := Lookup(k); err != nil {
		return "", err
	}
	return k, nil
}

func enum[T ~string](values ...T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
