package booking

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	SlotLayout = "15:04"
)

// Hours is the business-day configuration the slot grid is built from.
type Hours struct {
	Open  string
	Close string
	Step  time.Duration
}

func DefaultHours() Hours {
	return Hours{Open: "08:00", Close: "17:00", Step: 30 * time.Minute}
}

// Grid is the ordered set of slot start times of a business day.
type Grid struct {
	hours Hours
	slots []string
	index map[string]struct{}
}

func NewGrid(h Hours) (*Grid, error) {
	open, err := time.Parse(SlotLayout, h.Open)
	if err != nil {
		return nil, fmt.Errorf("invalid open time %q: %w", h.Open, err)
	}
	closeAt, err := time.Parse(SlotLayout, h.Close)
	if err != nil {
		return nil, fmt.Errorf("invalid close time %q: %w", h.Close, err)
	}
	if !open.Before(closeAt) {
		return nil, fmt.Errorf("open time %s must be before close time %s", h.Open, h.Close)
	}
	if h.Step <= 0 {
		return nil, fmt.Errorf("slot step must be positive, got %s", h.Step)
	}

	g := &Grid{
		hours: h,
		index: make(map[string]struct{}),
	}

	// last slot is the last start strictly before close
	for cur := open; cur.Before(closeAt); cur = cur.Add(h.Step) {
		v := cur.Format(SlotLayout)
		g.slots = append(g.slots, v)
		g.index[v] = struct{}{}
	}

	return g, nil
}

// MustGrid panics on an invalid configuration. Meant for tests and constants.
func MustGrid(h Hours) *Grid {
	g, err := NewGrid(h)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Grid) Hours() Hours {
	return g.hours
}

// Slots returns a copy of the grid values in ascending order.
func (g *Grid) Slots() []string {
	out := make([]string, len(g.slots))
	copy(out, g.slots)
	return out
}

func (g *Grid) Len() int {
	return len(g.slots)
}

func (g *Grid) Contains(value string) bool {
	_, ok := g.index[value]
	return ok
}

// ParseSlot parses an HH:MM value and returns it zero padded ("8:00" -> "08:00").
func ParseSlot(value string) (string, error) {
	t, err := time.Parse(SlotLayout, value)
	if err != nil {
		return "", err
	}
	return t.Format(SlotLayout), nil
}
