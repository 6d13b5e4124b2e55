package booking

import (
	"time"

	"github.com/BruksfildServices01/garage-booking/internal/httperr"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// IsActive reports whether a booking in this status occupies its slot.
func (s Status) IsActive() bool {
	return s != StatusCancelled
}

func InitialStatus() Status {
	return StatusConfirmed
}

// CanCancel and CanReschedule share the same rule: only active bookings move.
func CanCancel(current Status) error {
	if !current.IsActive() {
		return httperr.ErrNotFound("booking_already_cancelled")
	}
	return nil
}

func CanReschedule(current Status) error {
	return CanCancel(current)
}

// SlotKey is the value stored in the unique active-slot column.
func SlotKey(date, slot string) string {
	return date + " " + slot
}

// Target is a validated (date, slot) pair.
type Target struct {
	Date  string
	Time  string
	Start time.Time
}

func (t Target) Key() string {
	return SlotKey(t.Date, t.Time)
}

// ValidateTarget checks that date and value parse, that the slot lies on the
// grid and that it starts strictly after now.
func ValidateTarget(grid *Grid, date, value string, now time.Time) (Target, error) {
	day, err := ParseDate(date, now.Location())
	if err != nil {
		return Target{}, httperr.ErrValidation("invalid_date_or_time")
	}

	slot, err := ParseSlot(value)
	if err != nil {
		return Target{}, httperr.ErrValidation("invalid_date_or_time")
	}

	start := slotStart(day, slot)
	if !start.After(now) {
		return Target{}, httperr.ErrValidation("past_date")
	}

	if !grid.Contains(slot) {
		return Target{}, httperr.ErrValidation("outside_business_hours")
	}

	return Target{
		Date:  day.Format(DateLayout),
		Time:  slot,
		Start: start,
	}, nil
}
