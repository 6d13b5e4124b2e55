package booking

import (
	"context"

	"github.com/BruksfildServices01/garage-booking/internal/audit"
	domain "github.com/BruksfildServices01/garage-booking/internal/domain/booking"
	"github.com/BruksfildServices01/garage-booking/internal/httperr"
	"github.com/BruksfildServices01/garage-booking/internal/models"
)

type RescheduleBookingInput struct {
	BookingID uint
	Date      string
	Time      string
}

type RescheduleBooking struct {
	repo     domain.Repository
	grid     *domain.Grid
	clock    domain.Clock
	audit    *audit.Dispatcher
	notifier Notifier
}

func NewRescheduleBooking(
	repo domain.Repository,
	grid *domain.Grid,
	clock domain.Clock,
	audit *audit.Dispatcher,
	notifier Notifier,
) *RescheduleBooking {
	return &RescheduleBooking{
		repo:     repo,
		grid:     grid,
		clock:    clock,
		audit:    audit,
		notifier: notifierOrNoop(notifier),
	}
}

// Execute moves an active booking to a new slot. The confirmation mails use
// the stored customer data, not anything sent with the request.
func (uc *RescheduleBooking) Execute(
	ctx context.Context,
	in RescheduleBookingInput,
) (*models.Booking, error) {

	if in.BookingID == 0 {
		return nil, httperr.ErrValidation("invalid_booking_id")
	}

	target, err := domain.ValidateTarget(uc.grid, in.Date, in.Time, uc.clock())
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.RescheduleBooking(ctx, in.BookingID, target)
	if err != nil {
		return nil, err
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			Actor:    actorPublic,
			Action:   audit.ActionBookingRescheduled,
			Entity:   "booking",
			EntityID: &b.ID,
			Metadata: map[string]string{
				"date": b.Date,
				"time": b.Time,
			},
		})
	}

	uc.notifier.BookingConfirmed(*b, true)

	return b, nil
}
