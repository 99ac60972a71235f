package domain

// Booking is a scheduled client session (bookings table).
type Booking struct {
	Meta
	ClientName  string        `json:"client_name"`
	ClientEmail string        `json:"client_email"`
	Service     string        `json:"service"`
	Date        string        `json:"date"`
	Time        string        `json:"time"`
	Duration    int           `json:"duration"` // minutes
	Status      BookingStatus `json:"status"`
	Amount      float64       `json:"amount"`
	Notes       string        `json:"notes"`
}

func (*Booking) Kind() Kind { return KindBooking }

type BookingStatus string

const (
	BookingStatusScheduled BookingStatus = "scheduled"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusNoShow    BookingStatus = "no_show"
)

var bookingDescriptor = Descriptor{
	Kind:  KindBooking,
	Table: "bookings",
	Fields: []Field{
		{Name: "client_name", Type: FieldString, Required: true},
		{Name: "client_email", Type: FieldString},
		{Name: "service", Type: FieldString, Required: true},
		{Name: "date", Type: FieldDate, Required: true},
		{Name: "time", Type: FieldTime},
		{Name: "duration", Type: FieldInteger},
		{Name: "status", Type: FieldString, Required: true, Default: string(BookingStatusScheduled), Enum: enum(
			BookingStatusScheduled, BookingStatusConfirmed, BookingStatusCompleted,
			BookingStatusCancelled, BookingStatusNoShow,
		)},
		{Name: "amount", Type: FieldNumber},
		{Name: "notes", Type: FieldString},
	},
	New: func() Record { return &Booking{} },
}
