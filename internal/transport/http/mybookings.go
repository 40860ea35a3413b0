package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/Golffzza/wellness-server/internal/domain"
)

// BookingLister is the minimal interface needed to list a user's bookings.
type BookingLister interface {
	UserBookings(ctx context.Context, userID string) ([]domain.Booking, error)
}

// HandleMyBookings returns an HTTP handler for GET /my-bookings?userId=...
func HandleMyBookings(svc BookingLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		userID := r.URL.Query().Get("userId")
		bookings, err := svc.UserBookings(r.Context(), userID)
		if err != nil {
			if errors.Is(err, domain.ErrUserIDRequired) {
				writeError(w, http.StatusBadRequest, codeUserIDRequired, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		out := myBookingsResponse{Bookings: make([]bookingJSON, 0, len(bookings))}
		for _, b := range bookings {
			out.Bookings = append(out.Bookings, toBookingJSON(b))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type myBookingsResponse struct {
	Bookings []bookingJSON `json:"bookings"`
}
