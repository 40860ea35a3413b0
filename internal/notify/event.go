package notify

import "github.com/Golffzza/wellness-server/internal/domain"

// Routing key for confirmation events on the topic exchange.
const RoutingKeyBookingConfirmed = "booking.confirmed"

// Event is the payload published to the broker after a booking commits. The
// notification worker consumes it to produce the confirmation message.
type Event struct {
	MessageID string `json:"message_id"`
	UserID    string `json:"user_id"`
	BookingID int64  `json:"booking_id"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	Slot      string `json:"time"`
}

func NewEvent(messageID, userID string, b domain.Booking) Event {
	return Event{
		MessageID: messageID,
		UserID:    userID,
		BookingID: b.ID,
		Name:      b.Name,
		Date:      b.Date,
		Slot:      b.Slot,
	}
}
