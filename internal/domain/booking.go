package domain

import "time"

type BookingStatus string

const (
	// BookingStatusConfirmed is the only status the engine produces; there is
	// no cancellation, so no transition away from it exists.
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
)

// Booking is one committed reservation of a slot on a date.
type Booking struct {
	ID        int64
	UserID    string
	Name      string
	Date      string // YYYY-MM-DD
	Slot      string // catalog time label, e.g. "09:30"
	Note      string
	Status    BookingStatus
	CreatedAt time.Time
}
