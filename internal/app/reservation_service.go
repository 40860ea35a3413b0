package app

import (
	"context"
	"time"

	"github.com/Golffzza/wellness-server/internal/catalog"
	"github.com/Golffzza/wellness-server/internal/clock"
	"github.com/Golffzza/wellness-server/internal/domain"
)

// ReservationStore is the ledger of bookings. InsertAtomic is its core
// obligation: the capacity check and the write must be a single atomic unit
// with respect to all other callers for the same (date, slot) key.
type ReservationStore interface {
	// InsertAtomic commits b only if fewer than capacity CONFIRMED bookings
	// exist for (b.Date, b.Slot) at the moment of commit, returning the
	// booking with its store-assigned ID. Returns domain.ErrSlotFull when the
	// slot is at capacity; never partially commits.
	InsertAtomic(ctx context.Context, capacity int, b domain.Booking) (domain.Booking, error)
	CountConfirmed(ctx context.Context, date, slot string) (int, error)
	CountConfirmedByDate(ctx context.Context, date string) (map[string]int, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	ListBySlot(ctx context.Context, date, slot string) ([]domain.Booking, error)
}

// NotificationDispatcher delivers a best-effort confirmation after a booking
// commits. Failures are the dispatcher's concern and are never observed here.
type NotificationDispatcher interface {
	Notify(userID string, b domain.Booking)
}

type ReservationService struct {
	store      ReservationStore
	catalog    *catalog.Catalog
	dispatcher NotificationDispatcher
	clock      clock.Clock
}

func NewReservationService(store ReservationStore, cat *catalog.Catalog, dispatcher NotificationDispatcher, clk clock.Clock) *ReservationService {
	return &ReservationService{
		store:      store,
		catalog:    cat,
		dispatcher: dispatcher,
		clock:      clk,
	}
}

type ReserveInput struct {
	UserID string
	Name   string
	Date   string
	Slot   string
	Note   string
}

func (in ReserveInput) validate(cat *catalog.Catalog) error {
	if in.UserID == "" {
		return domain.ErrUserIDRequired
	}
	if in.Name == "" {
		return domain.ErrNameRequired
	}
	if in.Date == "" {
		return domain.ErrDateRequired
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return domain.ErrInvalidDate
	}
	if in.Slot == "" {
		return domain.ErrSlotRequired
	}
	// A time outside the catalog is rejected up front rather than treated as
	// a zero-capacity slot.
	if !cat.Contains(in.Slot) {
		return domain.ErrUnknownSlot
	}
	return nil
}

// Reserve validates the request and asks the store to atomically check
// capacity and commit. Admission is decided entirely inside InsertAtomic;
// counting here first would reopen the check-then-write race the store
// exists to close.
func (s *ReservationService) Reserve(ctx context.Context, in ReserveInput) (domain.Booking, error) {
	if err := in.validate(s.catalog); err != nil {
		return domain.Booking{}, err
	}

	booking := domain.Booking{
		UserID:    in.UserID,
		Name:      in.Name,
		Date:      in.Date,
		Slot:      in.Slot,
		Note:      in.Note,
		Status:    domain.BookingStatusConfirmed,
		CreatedAt: s.clock.Now(),
	}

	committed, err := s.store.InsertAtomic(ctx, s.catalog.Capacity(), booking)
	if err != nil {
		return domain.Booking{}, err
	}

	// Fire and forget, strictly after commit. The response never waits on
	// delivery and a delivery failure never unwinds the booking.
	go s.dispatcher.Notify(committed.UserID, committed)

	return committed, nil
}

// Availability reports the booked and remaining counts for every catalog slot
// on the given date, in catalog order. It is a plain read; it is not
// linearized with concurrent reservations.
func (s *ReservationService) Availability(ctx context.Context, date string) ([]domain.SlotAvailability, error) {
	if date == "" {
		return nil, domain.ErrDateRequired
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, domain.ErrInvalidDate
	}

	counts, err := s.store.CountConfirmedByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	capacity := s.catalog.Capacity()
	slots := s.catalog.Slots()
	out := make([]domain.SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		booked := counts[slot]
		available := capacity - booked
		out = append(out, domain.SlotAvailability{
			Slot:      slot,
			Capacity:  capacity,
			Booked:    booked,
			Available: available,
			IsFull:    available <= 0,
		})
	}
	return out, nil
}

// UserBookings lists the user's bookings ordered by (date, slot) ascending.
func (s *ReservationService) UserBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	if userID == "" {
		return nil, domain.ErrUserIDRequired
	}
	return s.store.ListByUser(ctx, userID)
}
