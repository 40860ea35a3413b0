package notify

import (
	"bytes"
	"encoding/json"
	"log"
	"strings"
	"testing"

	"github.com/Golffzza/wellness-server/internal/domain"
)

func TestLogDispatcher(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	d := NewLogDispatcher(log.New(&buf, "", 0))

	d.Notify("42", domain.Booking{ID: 9, Date: "2024-01-01", Slot: "09:30"})

	line := buf.String()
	for _, want := range []string{"user=42", "id=9", "date=2024-01-01", "time=09:30"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in log line %q", want, line)
		}
	}
}

func TestEventPayload(t *testing.T) {
	t.Parallel()

	ev := NewEvent("m1", "42", domain.Booking{
		ID:   9,
		Name: "Alice",
		Date: "2024-01-01",
		Slot: "09:30",
	})

	raw, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["time"] != "09:30" {
		t.Fatalf("expected slot under the \"time\" key, got %v", decoded["time"])
	}
	if decoded["booking_id"] != float64(9) {
		t.Fatalf("expected booking_id 9, got %v", decoded["booking_id"])
	}
	if decoded["user_id"] != "42" {
		t.Fatalf("expected user_id 42, got %v", decoded["user_id"])
	}
}
