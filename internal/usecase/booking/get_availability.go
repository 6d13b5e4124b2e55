package booking

import (
	"context"

	domain "github.com/BruksfildServices01/garage-booking/internal/domain/booking"
)

type GetAvailability struct {
	repo  domain.Repository
	grid  *domain.Grid
	clock domain.Clock
}

func NewGetAvailability(
	repo domain.Repository,
	grid *domain.Grid,
	clock domain.Clock,
) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		grid:  grid,
		clock: clock,
	}
}

// Execute reads the active bookings of date on every call; occupancy is never
// cached.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	date string,
) (domain.Availability, error) {

	now := uc.clock()

	day, err := domain.CheckQueryDate(date, now)
	if err != nil {
		return domain.Availability{Date: date}, err
	}

	booked, err := uc.repo.ListActiveTimes(ctx, day.Format(domain.DateLayout))
	if err != nil {
		return domain.Availability{Date: date}, err
	}

	return domain.ComputeAvailability(uc.grid, date, now, booked)
}
