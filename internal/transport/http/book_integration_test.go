package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Golffzza/wellness-server/internal/app"
	"github.com/Golffzza/wellness-server/internal/catalog"
	"github.com/Golffzza/wellness-server/internal/clock"
	"github.com/Golffzza/wellness-server/internal/domain"
	"github.com/Golffzza/wellness-server/internal/notify"
	"github.com/Golffzza/wellness-server/internal/storage/postgres"
	"github.com/Golffzza/wellness-server/internal/testutil"
)

func TestBookingEndpointsIntegration(t *testing.T) {
	pool := testutil.NewTestPool(t)
	testutil.ApplyMigrations(t, context.Background(), pool)

	cat, err := catalog.Default(1)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	repo := postgres.NewBookingRepository(pool)
	svc := app.NewReservationService(repo, cat, notify.NewLogDispatcher(nil), clock.NewSystem())

	mux := http.NewServeMux()
	mux.Handle("/slots", HandleSlots(svc))
	mux.Handle("/book", HandleBook(svc, nil))
	mux.Handle("/my-bookings", HandleMyBookings(svc))
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	post := func(t *testing.T, body string) *http.Response {
		t.Helper()
		res, err := http.Post(server.URL+"/book", "application/json", bytes.NewBufferString(body))
		if err != nil {
			t.Fatalf("post: %v", err)
		}
		t.Cleanup(func() { _ = res.Body.Close() })
		return res
	}

	t.Run("book then conflict at capacity", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		res := post(t, `{"user_id":"u1","name":"Alice","date":"2024-01-01","time":"09:00"}`)
		if res.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d", res.StatusCode)
		}
		var booking bookingJSON
		if err := json.NewDecoder(res.Body).Decode(&booking); err != nil {
			t.Fatalf("decode booking: %v", err)
		}
		if booking.ID == 0 || booking.Status != string(domain.BookingStatusConfirmed) {
			t.Fatalf("unexpected booking: %+v", booking)
		}

		res = post(t, `{"user_id":"u2","name":"Bob","date":"2024-01-01","time":"09:00"}`)
		if res.StatusCode != http.StatusConflict {
			t.Fatalf("expected 409, got %d", res.StatusCode)
		}

		count, err := repo.CountConfirmed(ctx, "2024-01-01", "09:00")
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if count != 1 {
			t.Fatalf("expected final count 1, got %d", count)
		}
	})

	t.Run("validation failure writes nothing", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		res := post(t, `{"user_id":"u1","name":"","date":"2024-01-01","time":"09:00"}`)
		if res.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", res.StatusCode)
		}

		count, err := repo.CountConfirmed(ctx, "2024-01-01", "09:00")
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if count != 0 {
			t.Fatalf("expected no writes, got %d", count)
		}
	})

	t.Run("availability reflects committed bookings", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		res := post(t, `{"user_id":"u1","name":"Alice","date":"2024-01-01","time":"10:00"}`)
		if res.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d", res.StatusCode)
		}

		slotsRes, err := http.Get(server.URL + "/slots?date=2024-01-01")
		if err != nil {
			t.Fatalf("get slots: %v", err)
		}
		defer slotsRes.Body.Close()
		if slotsRes.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", slotsRes.StatusCode)
		}
		var resp slotsResponse
		if err := json.NewDecoder(slotsRes.Body).Decode(&resp); err != nil {
			t.Fatalf("decode slots: %v", err)
		}
		for _, s := range resp.Slots {
			if s.Time == "10:00" {
				if s.Booked != 1 || s.Available != 0 || !s.IsFull {
					t.Fatalf("unexpected availability: %+v", s)
				}
				return
			}
		}
		t.Fatalf("slot 10:00 missing from response")
	})

	t.Run("my bookings sorted by date and time", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		for _, pair := range [][2]string{{"2024-01-02", "09:00"}, {"2024-01-01", "15:00"}, {"2024-01-01", "09:30"}} {
			res := post(t, fmt.Sprintf(`{"user_id":"u1","name":"Alice","date":"%s","time":"%s"}`, pair[0], pair[1]))
			if res.StatusCode != http.StatusCreated {
				t.Fatalf("expected 201, got %d", res.StatusCode)
			}
		}

		listRes, err := http.Get(server.URL + "/my-bookings?userId=u1")
		if err != nil {
			t.Fatalf("get my-bookings: %v", err)
		}
		defer listRes.Body.Close()
		var resp myBookingsResponse
		if err := json.NewDecoder(listRes.Body).Decode(&resp); err != nil {
			t.Fatalf("decode bookings: %v", err)
		}
		if len(resp.Bookings) != 3 {
			t.Fatalf("expected 3 bookings, got %d", len(resp.Bookings))
		}
		want := [][2]string{{"2024-01-01", "09:30"}, {"2024-01-01", "15:00"}, {"2024-01-02", "09:00"}}
		for i, b := range resp.Bookings {
			if b.Date != want[i][0] || b.Time != want[i][1] {
				t.Fatalf("expected %v at index %d, got (%s, %s)", want[i], i, b.Date, b.Time)
			}
		}
	})
}
