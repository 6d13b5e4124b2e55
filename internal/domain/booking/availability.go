package booking

import (
	"time"

	"github.com/BruksfildServices01/garage-booking/internal/httperr"
)

type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
	SlotPast      SlotStatus = "past"
)

type Slot struct {
	Value  string     `json:"value"`
	Status SlotStatus `json:"status"`
}

type Availability struct {
	Date    string `json:"date"`
	IsToday bool   `json:"is_today"`
	Slots   []Slot `json:"all_times"`
}

// Available returns the bookable values in grid order.
func (a Availability) Available() []string {
	out := make([]string, 0, len(a.Slots))
	for _, s := range a.Slots {
		if s.Status == SlotAvailable {
			out = append(out, s.Value)
		}
	}
	return out
}

func (a Availability) Booked() []string {
	out := make([]string, 0)
	for _, s := range a.Slots {
		if s.Status == SlotBooked {
			out = append(out, s.Value)
		}
	}
	return out
}

// ParseDate parses a YYYY-MM-DD calendar date in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, loc)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CheckQueryDate parses date for an availability query. Dates before today
// are rejected as a whole.
func CheckQueryDate(date string, now time.Time) (time.Time, error) {
	day, err := ParseDate(date, now.Location())
	if err != nil {
		return time.Time{}, httperr.ErrInvalidDate("invalid_date")
	}

	if day.Before(startOfDay(now)) {
		return time.Time{}, httperr.ErrPastDate("past_date")
	}

	return day, nil
}

// ComputeAvailability tags every grid slot of date against the booked times
// of that date. booked must only hold times of active bookings.
func ComputeAvailability(
	grid *Grid,
	date string,
	now time.Time,
	booked []string,
) (Availability, error) {

	day, err := CheckQueryDate(date, now)
	if err != nil {
		return Availability{Date: date}, err
	}

	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		if v, err := ParseSlot(b); err == nil {
			taken[v] = struct{}{}
		}
	}

	isToday := sameDay(day, now)
	out := Availability{
		Date:    day.Format(DateLayout),
		IsToday: isToday,
		Slots:   make([]Slot, 0, grid.Len()),
	}

	for _, v := range grid.slots {
		status := SlotAvailable

		if _, ok := taken[v]; ok {
			status = SlotBooked
		} else if isToday && !slotStart(day, v).After(now) {
			status = SlotPast
		}

		out.Slots = append(out.Slots, Slot{Value: v, Status: status})
	}

	return out, nil
}

func slotStart(day time.Time, value string) time.Time {
	t, _ := time.Parse(SlotLayout, value)
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0,
		day.Location(),
	)
}
