package model

import "errors"

var (
	ErrBookingEndBeforeStart = errors.New("booking end must be after start")
	ErrBookingZeroDuration   = errors.New("booking must have a non-zero duration")
	ErrBookingNoEquipment    = errors.New("booking requires an equipment name")
)

// ValidateBookingRange rejects degenerate ranges before any commit.
// Inverted or zero-duration ranges are errors, never silently clamped.
func ValidateBookingRange(b Booking) error {
	if b.Equipment == "" {
		return ErrBookingNoEquipment
	}
	if b.End.Before(b.Start) {
		return ErrBookingEndBeforeStart
	}
	if !b.End.After(b.Start) {
		return ErrBookingZeroDuration
	}
	return nil
}
