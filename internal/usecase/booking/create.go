package booking

import (
	"context"

	"github.com/BruksfildServices01/garage-booking/internal/audit"
	domain "github.com/BruksfildServices01/garage-booking/internal/domain/booking"
	"github.com/BruksfildServices01/garage-booking/internal/httperr"
	"github.com/BruksfildServices01/garage-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	domain.Payload

	Date string
	Time string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	grid     *domain.Grid
	clock    domain.Clock
	audit    *audit.Dispatcher
	notifier Notifier
}

func NewCreateBooking(
	repo domain.Repository,
	grid *domain.Grid,
	clock domain.Clock,
	audit *audit.Dispatcher,
	notifier Notifier,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		grid:     grid,
		clock:    clock,
		audit:    audit,
		notifier: notifierOrNoop(notifier),
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// Payload
	// --------------------------------------------------
	payload := in.Payload.Normalize()
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Slot
	// --------------------------------------------------
	target, err := domain.ValidateTarget(uc.grid, in.Date, in.Time, uc.clock())
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Insert (conflict checked inside the repository)
	// --------------------------------------------------
	b := &models.Booking{
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Service: payload.Service,
		Message: payload.Message,
		Date:    target.Date,
		Time:    target.Time,
		Status:  string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		if httperr.IsKind(err, httperr.KindSlotConflict) {
			uc.dispatchConflict(target)
		}
		return nil, err
	}

	// --------------------------------------------------
	// Side effects
	// --------------------------------------------------
	uc.dispatch(audit.Event{
		Actor:    actorPublic,
		Action:   audit.ActionBookingCreated,
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]string{
			"date": b.Date,
			"time": b.Time,
		},
	})

	uc.notifier.BookingConfirmed(*b, false)

	return b, nil
}

func (uc *CreateBooking) dispatchConflict(target domain.Target) {
	uc.dispatch(audit.Event{
		Actor:  actorPublic,
		Action: audit.ActionBookingConflict,
		Entity: "booking",
		Metadata: map[string]string{
			"date": target.Date,
			"time": target.Time,
		},
	})
}

func (uc *CreateBooking) dispatch(ev audit.Event) {
	if uc.audit != nil {
		uc.audit.Dispatch(ev)
	}
}
