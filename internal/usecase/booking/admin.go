package booking

import (
	"context"

	domain "github.com/BruksfildServices01/garage-booking/internal/domain/booking"
	"github.com/BruksfildServices01/garage-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/garage-booking/internal/models"
	"github.com/BruksfildServices01/garage-booking/internal/timezone"
)

const RecentBookingsLimit = 50

// -------- List --------

type ListRecentBookings struct {
	repo domain.Repository
}

func NewListRecentBookings(repo domain.Repository) *ListRecentBookings {
	return &ListRecentBookings{repo: repo}
}

func (uc *ListRecentBookings) Execute(ctx context.Context) ([]models.Booking, error) {
	return uc.repo.ListRecentBookings(ctx, RecentBookingsLimit)
}

// -------- Notifications --------

type Notifications struct {
	NewBookings    int64            `json:"new_bookings_count"`
	TotalBookings  int64            `json:"total_bookings_count"`
	ActiveServices int64            `json:"active_services_count"`
	Recent         []models.Booking `json:"recent_bookings"`
}

type GetNotifications struct {
	repo     domain.Repository
	services catalog.Repository
	clock    domain.Clock
}

func NewGetNotifications(
	repo domain.Repository,
	services catalog.Repository,
	clock domain.Clock,
) *GetNotifications {
	return &GetNotifications{
		repo:     repo,
		services: services,
		clock:    clock,
	}
}

func (uc *GetNotifications) Execute(ctx context.Context) (*Notifications, error) {
	st, err := uc.repo.Stats(ctx, timezone.StartOfDay(uc.clock()))
	if err != nil {
		return nil, err
	}

	active, err := uc.services.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	recent := st.Recent
	if recent == nil {
		recent = []models.Booking{}
	}

	return &Notifications{
		NewBookings:    st.NewPendingToday,
		TotalBookings:  st.TotalBookings,
		ActiveServices: active,
		Recent:         recent,
	}, nil
}
