package domain

// MediaContact is a journalist or creator (media_contacts table).
type MediaContact struct {
	Meta
	Name   string             `json:"name"`
	Outlet string             `json:"outlet"`
	Email  string             `json:"email"`
	Phone  string             `json:"phone"`
	Beat   string             `json:"beat"`
	Type   MediaContactType   `json:"type"`
	Status MediaContactStatus `json:"status"`
	Notes  string             `json:"notes"`
}

func (*MediaContact) Kind() Kind { return KindMediaContact }

type MediaContactType string

const (
	MediaJournalist MediaContactType = "journalist"
	MediaEditor     MediaContactType = "editor"
	MediaBlogger    MediaContactType = "blogger"
	MediaInfluencer MediaContactType = "influencer"
	MediaPodcaster  MediaContactType = "podcaster"
	MediaProducer   MediaContactType = "producer"
)

type MediaContactStatus string

const (
	MediaStatusNew          MediaContactStatus = "new"
	MediaStatusContacted    MediaContactStatus = "contacted"
	MediaStatusResponsive   MediaContactStatus = "responsive"
	MediaStatusUnresponsive MediaContactStatus = "unresponsive"
)

var mediaContactDescriptor = Descriptor{
	Kind:  KindMediaContact,
	Table: "media_contacts",
	Fields: []Field{
		{Name: "name", Type: FieldString, Required: true},
		{Name: "outlet", Type: FieldString},
		{Name: "email", Type: FieldString},
		{Name: "phone", Type: FieldString},
		{Name: "beat", Type: FieldString},
		{Name: "type", Type: FieldString, Required: true, Default: string(MediaJournalist), Enum: enum(
			MediaJournalist, MediaEditor, MediaBlogger, MediaInfluencer, MediaPodcaster, MediaProducer,
		)},
		{Name: "status", Type: FieldString, Required: true, Default: string(MediaStatusNew), Enum: enum(
			MediaStatusNew, MediaStatusContacted, MediaStatusResponsive, MediaStatusUnresponsive,
		)},
		{Name: "notes", Type: FieldString},
	},
	New: func() Record { return &MediaContact{} },
}
