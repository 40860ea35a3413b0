package domain

// SlotAvailability is the derived view of remaining capacity for one slot on a date.
type SlotAvailability struct {
	Slot      string
	Capacity  int
	Booked    int
	Available int // Capacity - Booked, may be <= 0
	IsFull    bool
}
