package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Golffzza/wellness-server/internal/app"
	"github.com/Golffzza/wellness-server/internal/domain"
	"github.com/Golffzza/wellness-server/internal/metrics"
)

// Reserver is the minimal interface needed to commit a reservation.
type Reserver interface {
	Reserve(ctx context.Context, in app.ReserveInput) (domain.Booking, error)
}

// HandleBook returns an HTTP handler for POST /book. m may be nil.
func HandleBook(svc Reserver, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req bookRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		booking, err := svc.Reserve(r.Context(), app.ReserveInput{
			UserID: req.UserID,
			Name:   req.Name,
			Date:   req.Date,
			Slot:   req.Time,
			Note:   req.Note,
		})
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrUserIDRequired):
				writeError(w, http.StatusBadRequest, codeUserIDRequired, err.Error())
			case errors.Is(err, domain.ErrNameRequired):
				writeError(w, http.StatusBadRequest, codeNameRequired, err.Error())
			case errors.Is(err, domain.ErrDateRequired):
				writeError(w, http.StatusBadRequest, codeDateRequired, err.Error())
			case errors.Is(err, domain.ErrInvalidDate):
				writeError(w, http.StatusBadRequest, codeInvalidDate, err.Error())
			case errors.Is(err, domain.ErrSlotRequired):
				writeError(w, http.StatusBadRequest, codeTimeRequired, err.Error())
			case errors.Is(err, domain.ErrUnknownSlot):
				writeError(w, http.StatusBadRequest, codeUnknownSlot, err.Error())
			case errors.Is(err, domain.ErrSlotFull):
				m.SlotFull()
				writeError(w, http.StatusConflict, codeSlotFull, err.Error())
			default:
				m.StorageError()
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		m.ReservationCommitted()
		writeJSON(w, http.StatusCreated, toBookingJSON(booking))
	}
}

type bookRequest struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Note   string `json:"note"`
}

type bookingJSON struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Note      string    `json:"note"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func toBookingJSON(b domain.Booking) bookingJSON {
	return bookingJSON{
		ID:        b.ID,
		UserID:    b.UserID,
		Name:      b.Name,
		Date:      b.Date,
		Time:      b.Slot,
		Note:      b.Note,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
	}
}
