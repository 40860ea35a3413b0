package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/Golffzza/wellness-server/internal/domain"
)

// AvailabilityLister is the minimal interface needed to report slot
// availability for a date.
type AvailabilityLister interface {
	Availability(ctx context.Context, date string) ([]domain.SlotAvailability, error)
}

// HandleSlots returns an HTTP handler for GET /slots?date=YYYY-MM-DD.
func HandleSlots(svc AvailabilityLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		date := r.URL.Query().Get("date")
		slots, err := svc.Availability(r.Context(), date)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrDateRequired):
				writeError(w, http.StatusBadRequest, codeDateRequired, err.Error())
			case errors.Is(err, domain.ErrInvalidDate):
				writeError(w, http.StatusBadRequest, codeInvalidDate, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		out := slotsResponse{Date: date, Slots: make([]slotJSON, 0, len(slots))}
		for _, s := range slots {
			out.Slots = append(out.Slots, slotJSON{
				Time:      s.Slot,
				Capacity:  s.Capacity,
				Booked:    s.Booked,
				Available: s.Available,
				IsFull:    s.IsFull,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type slotsResponse struct {
	Date  string     `json:"date"`
	Slots []slotJSON `json:"slots"`
}

type slotJSON struct {
	Time      string `json:"time"`
	Capacity  int    `json:"capacity"`
	Booked    int    `json:"booked"`
	Available int    `json:"available"`
	IsFull    bool   `json:"is_full"`
}
