package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/garage-booking/internal/models"
)

// Clock returns the current wall-clock time in the garage's location.
type Clock func() time.Time

type Stats struct {
	NewPendingToday int64
	TotalBookings   int64
	Recent          []models.Booking
}

type Repository interface {
	// -------- Availability --------
	ListActiveTimes(
		ctx context.Context,
		date string,
	) ([]string, error)

	// -------- Booking (create / conflict) --------
	// CreateBooking inserts b unless an active booking holds its slot.
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (state change) --------
	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	CancelBooking(
		ctx context.Context,
		id uint,
		now time.Time,
	) (*models.Booking, error)

	// RescheduleBooking moves an active booking to target. The booking's own
	// slot never conflicts with itself.
	RescheduleBooking(
		ctx context.Context,
		id uint,
		target Target,
	) (*models.Booking, error)

	// -------- Admin --------
	ListRecentBookings(
		ctx context.Context,
		limit int,
	) ([]models.Booking, error)

	// Stats counts pending bookings created after since and all bookings, and
	// returns the five most recent ones.
	Stats(
		ctx context.Context,
		since time.Time,
	) (*Stats, error)
}
