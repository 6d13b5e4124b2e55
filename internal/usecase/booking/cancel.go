package booking

import (
	"context"

	"github.com/BruksfildServices01/garage-booking/internal/audit"
	domain "github.com/BruksfildServices01/garage-booking/internal/domain/booking"
	"github.com/BruksfildServices01/garage-booking/internal/httperr"
	"github.com/BruksfildServices01/garage-booking/internal/models"
)

type CancelBooking struct {
	repo  domain.Repository
	clock domain.Clock
	audit *audit.Dispatcher
}

func NewCancelBooking(
	repo domain.Repository,
	clock domain.Clock,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		clock: clock,
		audit: audit,
	}
}

// Execute frees the booking's slot. A missing booking and one that is already
// cancelled both fail with a not-found error.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	bookingID uint,
) (*models.Booking, error) {

	if bookingID == 0 {
		return nil, httperr.ErrValidation("invalid_booking_id")
	}

	b, err := uc.repo.CancelBooking(ctx, bookingID, uc.clock())
	if err != nil {
		return nil, err
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			Actor:    actorPublic,
			Action:   audit.ActionBookingCancelled,
			Entity:   "booking",
			EntityID: &b.ID,
			Metadata: map[string]string{
				"date": b.Date,
				"time": b.Time,
			},
		})
	}

	return b, nil
}
