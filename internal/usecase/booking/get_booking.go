package booking

import (
	"context"

	domain "github.com/BruksfildServices01/garage-booking/internal/domain/booking"
	"github.com/BruksfildServices01/garage-booking/internal/httperr"
	"github.com/BruksfildServices01/garage-booking/internal/models"
)

type GetBooking struct {
	repo domain.Repository
}

func NewGetBooking(repo domain.Repository) *GetBooking {
	return &GetBooking{repo: repo}
}

func (uc *GetBooking) Execute(
	ctx context.Context,
	bookingID uint,
) (*models.Booking, error) {

	if bookingID == 0 {
		return nil, httperr.ErrValidation("invalid_booking_id")
	}

	return uc.repo.GetBooking(ctx, bookingID)
}
