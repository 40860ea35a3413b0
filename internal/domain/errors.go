package domain

import "errors"

var (
	ErrUserIDRequired = errors.New("user id required")
	ErrNameRequired   = errors.New("name required")
	ErrDateRequired   = errors.New("date required")
	ErrInvalidDate    = errors.New("invalid date, expected YYYY-MM-DD")
	ErrSlotRequired   = errors.New("time required")
	ErrUnknownSlot    = errors.New("time is not a bookable slot")
	ErrSlotFull       = errors.New("slot is fully booked")
)

// IsValidation reports whether err is a request-validation failure, as opposed
// to capacity exhaustion or a storage fault.
func IsValidation(err error) bool {
	switch {
	case errors.Is(err, ErrUserIDRequired),
		errors.Is(err, ErrNameRequired),
		errors.Is(err, ErrDateRequired),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrSlotRequired),
		errors.Is(err, ErrUnknownSlot):
		return true
	}
	return false
}
