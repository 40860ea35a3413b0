package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Golffzza/wellness-server/internal/app"
	"github.com/Golffzza/wellness-server/internal/domain"
)

func TestHandleBook(t *testing.T) {
	t.Parallel()

	committed := domain.Booking{
		ID:        7,
		UserID:    "u1",
		Name:      "Alice",
		Date:      "2024-01-01",
		Slot:      "09:00",
		Status:    domain.BookingStatusConfirmed,
		CreatedAt: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	}

	const validBody = `{"user_id":"u1","name":"Alice","date":"2024-01-01","time":"09:00","note":"hi"}`

	tests := []struct {
		name           string
		method         string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			method:         http.MethodPost,
			body:           validBody,
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"id":7`,
		},
		{
			name:           "method not allowed",
			method:         http.MethodGet,
			body:           "",
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			name:           "invalid json",
			method:         http.MethodPost,
			body:           `{"user_id":`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "invalid_request_body",
		},
		{
			name:           "missing name",
			method:         http.MethodPost,
			body:           validBody,
			serviceErr:     domain.ErrNameRequired,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "name_required",
		},
		{
			name:           "malformed date",
			method:         http.MethodPost,
			body:           validBody,
			serviceErr:     domain.ErrInvalidDate,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "invalid_date",
		},
		{
			name:           "unknown slot",
			method:         http.MethodPost,
			body:           validBody,
			serviceErr:     domain.ErrUnknownSlot,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "unknown_slot",
		},
		{
			name:           "slot full",
			method:         http.MethodPost,
			body:           validBody,
			serviceErr:     domain.ErrSlotFull,
			expectedStatus: http.StatusConflict,
			expectedSubstr: "slot_full",
		},
		{
			name:           "storage failure",
			method:         http.MethodPost,
			body:           validBody,
			serviceErr:     errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedSubstr: "internal_error",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubReserver{booking: committed, err: tt.serviceErr}
			req := httptest.NewRequest(tt.method, "/book", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			HandleBook(svc, nil).ServeHTTP(rec, req)

			res := rec.Result()
			if res.StatusCode != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, res.StatusCode)
			}
			if tt.expectedSubstr != "" {
				body := rec.Body.String()
				if !strings.Contains(body, tt.expectedSubstr) {
					t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, body)
				}
			}
		})
	}
}

type stubReserver struct {
	booking domain.Booking
	err     error
}

func (s *stubReserver) Reserve(_ context.Context, _ app.ReserveInput) (domain.Booking, error) {
	if s.err != nil {
		return domain.Booking{}, s.err
	}
	return s.booking, nil
}
