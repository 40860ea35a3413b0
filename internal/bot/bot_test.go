package bot

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/Golffzza/wellness-server/internal/domain"
)

func TestResponder_Reply(t *testing.T) {
	t.Parallel()

	bookings := []domain.Booking{
		{ID: 3, UserID: "42", Name: "Alice", Date: "2024-01-01", Slot: "09:30"},
		{ID: 5, UserID: "42", Name: "Alice", Date: "2024-01-02", Slot: "14:00"},
	}
	quiet := log.New(io.Discard, "", 0)

	t.Run("my bookings lists them", func(t *testing.T) {
		t.Parallel()
		r := NewResponder(&stubLister{bookings: bookings}, quiet)

		for _, cmd := range []string{"my bookings", "My Bookings", "/mybookings", "  mybookings  "} {
			reply := r.Reply(context.Background(), "42", cmd)
			if !strings.Contains(reply, "2024-01-01 at 09:30 (#3)") {
				t.Fatalf("command %q: expected first booking in reply, got %q", cmd, reply)
			}
			if !strings.Contains(reply, "2024-01-02 at 14:00 (#5)") {
				t.Fatalf("command %q: expected second booking in reply, got %q", cmd, reply)
			}
		}
	})

	t.Run("no bookings", func(t *testing.T) {
		t.Parallel()
		r := NewResponder(&stubLister{}, quiet)

		reply := r.Reply(context.Background(), "42", "my bookings")
		if reply != "You have no bookings yet." {
			t.Fatalf("unexpected reply: %q", reply)
		}
	})

	t.Run("anything else gets help", func(t *testing.T) {
		t.Parallel()
		r := NewResponder(&stubLister{bookings: bookings}, quiet)

		for _, text := range []string{"hello", "/start", "book me in", ""} {
			reply := r.Reply(context.Background(), "42", text)
			if !strings.Contains(reply, "my bookings") {
				t.Fatalf("text %q: expected help reply, got %q", text, reply)
			}
		}
	})

	t.Run("service failure gets an apology", func(t *testing.T) {
		t.Parallel()
		r := NewResponder(&stubLister{err: errors.New("db down")}, quiet)

		reply := r.Reply(context.Background(), "42", "my bookings")
		if !strings.Contains(reply, "could not load") {
			t.Fatalf("unexpected reply: %q", reply)
		}
	})
}

type stubLister struct {
	bookings []domain.Booking
	err      error
}

func (s *stubLister) UserBookings(_ context.Context, _ string) ([]domain.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.bookings, nil
}
