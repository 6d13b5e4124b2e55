package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/BruksfildServices01/garage-booking/internal/db/dbtest"
	domain "github.com/BruksfildServices01/garage-booking/internal/domain/booking"
	"github.com/BruksfildServices01/garage-booking/internal/httperr"
	infraRepo "github.com/BruksfildServices01/garage-booking/internal/infra/repository"
	"github.com/BruksfildServices01/garage-booking/internal/models"
)

type recordingNotifier struct {
	mu    sync.Mutex
	calls []notification
}

type notification struct {
	booking     models.Booking
	rescheduled bool
}

func (r *recordingNotifier) BookingConfirmed(b models.Booking, rescheduled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, notification{booking: b, rescheduled: rescheduled})
}

type BookingSuite struct {
	suite.Suite

	ctx      context.Context
	now      time.Time
	notifier *recordingNotifier

	availability *GetAvailability
	create       *CreateBooking
	cancel       *CancelBooking
	reschedule   *RescheduleBooking
	get          *GetBooking
}

func TestBookingSuite(t *testing.T) {
	suite.Run(t, new(BookingSuite))
}

func (s *BookingSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	s.notifier = &recordingNotifier{}

	repo := infraRepo.NewBookingGormRepository(dbtest.New(s.T()))
	grid := domain.MustGrid(domain.DefaultHours())
	clock := func() time.Time { return s.now }

	s.availability = NewGetAvailability(repo, grid, clock)
	s.create = NewCreateBooking(repo, grid, clock, nil, s.notifier)
	s.cancel = NewCancelBooking(repo, clock, nil)
	s.reschedule = NewRescheduleBooking(repo, grid, clock, nil, s.notifier)
	s.get = NewGetBooking(repo)
}

func (s *BookingSuite) book(date, slot string) (*models.Booking, error) {
	return s.create.Execute(s.ctx, CreateBookingInput{
		Payload: domain.Payload{Name: "Jan", Email: "jan@example.com"},
		Date:    date,
		Time:    slot,
	})
}

func (s *BookingSuite) mustBook(date, slot string) *models.Booking {
	b, err := s.book(date, slot)
	s.Require().NoError(err)
	return b
}

func (s *BookingSuite) TestCreateReturnsConfirmedBooking() {
	b := s.mustBook("2025-06-01", "10:30")

	s.NotZero(b.ID)
	s.Equal("confirmed", b.Status)
	s.Equal(domain.DefaultService, b.Service)

	s.Require().Len(s.notifier.calls, 1)
	s.False(s.notifier.calls[0].rescheduled)
	s.Equal(b.ID, s.notifier.calls[0].booking.ID)

	got, err := s.get.Execute(s.ctx, b.ID)
	s.Require().NoError(err)
	s.Equal("10:30", got.Time)
}

func (s *BookingSuite) TestCreateNormalisesTime() {
	b := s.mustBook("2025-06-02", "8:00")
	s.Equal("08:00", b.Time)
}

func (s *BookingSuite) TestCreateRejections() {
	tests := []struct {
		name string
		date string
		time string
		kind httperr.Kind
		code string
	}{
		{"before opening", "2025-06-02", "07:30", httperr.KindValidation, "outside_business_hours"},
		{"after closing", "2025-06-02", "17:00", httperr.KindValidation, "outside_business_hours"},
		{"off grid", "2025-06-02", "09:15", httperr.KindValidation, "outside_business_hours"},
		{"past date", "2025-05-31", "10:00", httperr.KindValidation, "past_date"},
		{"slot starting now", "2025-06-01", "10:00", httperr.KindValidation, "past_date"},
		{"garbage", "tomorrow", "10:00", httperr.KindValidation, "invalid_date_or_time"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.book(tt.date, tt.time)
			s.True(httperr.IsKind(err, tt.kind), "got %v", err)
			s.Equal(tt.code, httperr.CodeOf(err))
		})
	}

	_, err := s.create.Execute(s.ctx, CreateBookingInput{
		Payload: domain.Payload{Name: "Jan", Email: "nope"},
		Date:    "2025-06-02",
		Time:    "10:00",
	})
	s.Equal("invalid_email", httperr.CodeOf(err))

	s.Empty(s.notifier.calls)
}

func (s *BookingSuite) TestConflictLaw() {
	s.mustBook("2025-06-01", "10:30")

	_, err := s.book("2025-06-01", "10:30")
	s.True(httperr.IsKind(err, httperr.KindSlotConflict))

	s.mustBook("2025-06-01", "11:00")
	s.mustBook("2025-06-02", "10:30")
}

func (s *BookingSuite) TestLunchSlotsAreBookable() {
	s.mustBook("2025-06-02", "12:00")
	s.mustBook("2025-06-02", "12:30")
}

func (s *BookingSuite) TestCancelFreesSlotForAvailability() {
	b := s.mustBook("2025-06-02", "10:00")

	before, err := s.availability.Execute(s.ctx, "2025-06-02")
	s.Require().NoError(err)
	s.NotContains(before.Available(), "10:00")
	s.Contains(before.Booked(), "10:00")

	_, err = s.cancel.Execute(s.ctx, b.ID)
	s.Require().NoError(err)

	after, err := s.availability.Execute(s.ctx, "2025-06-02")
	s.Require().NoError(err)
	s.Contains(after.Available(), "10:00")

	_, err = s.cancel.Execute(s.ctx, b.ID)
	s.True(httperr.IsKind(err, httperr.KindNotFound))

	_, err = s.cancel.Execute(s.ctx, 0)
	s.True(httperr.IsKind(err, httperr.KindValidation))
}

func (s *BookingSuite) TestAvailabilityToday() {
	s.mustBook("2025-06-01", "11:00")

	a, err := s.availability.Execute(s.ctx, "2025-06-01")
	s.Require().NoError(err)
	s.True(a.IsToday)
	s.Len(a.Slots, 18)

	for _, v := range a.Available() {
		s.Greater(v, "10:00")
		s.NotEqual("11:00", v)
	}
}

func (s *BookingSuite) TestAvailabilityRejectsBadDates() {
	_, err := s.availability.Execute(s.ctx, "2025-05-31")
	s.True(httperr.IsKind(err, httperr.KindPastDate))

	_, err = s.availability.Execute(s.ctx, "31-05-2025")
	s.True(httperr.IsKind(err, httperr.KindInvalidDate))
}

func (s *BookingSuite) TestReschedule() {
	b := s.mustBook("2025-06-02", "10:00")
	s.mustBook("2025-06-02", "11:00")

	moved, err := s.reschedule.Execute(s.ctx, RescheduleBookingInput{BookingID: b.ID, Date: "2025-06-03", Time: "09:00"})
	s.Require().NoError(err)
	s.Equal("2025-06-03", moved.Date)
	s.Equal("09:00", moved.Time)

	last := s.notifier.calls[len(s.notifier.calls)-1]
	s.True(last.rescheduled)
	s.Equal("Jan", last.booking.Name)

	// own slot
	_, err = s.reschedule.Execute(s.ctx, RescheduleBookingInput{BookingID: b.ID, Date: "2025-06-03", Time: "09:00"})
	s.NoError(err)

	// someone else's slot
	_, err = s.reschedule.Execute(s.ctx, RescheduleBookingInput{BookingID: b.ID, Date: "2025-06-02", Time: "11:00"})
	s.True(httperr.IsKind(err, httperr.KindSlotConflict))

	// off grid target
	_, err = s.reschedule.Execute(s.ctx, RescheduleBookingInput{BookingID: b.ID, Date: "2025-06-03", Time: "18:00"})
	s.True(httperr.IsKind(err, httperr.KindValidation))

	_, err = s.reschedule.Execute(s.ctx, RescheduleBookingInput{BookingID: 4242, Date: "2025-06-03", Time: "10:00"})
	s.True(httperr.IsKind(err, httperr.KindNotFound))
}

func (s *BookingSuite) TestRescheduleCancelledBooking() {
	b := s.mustBook("2025-06-02", "10:00")
	_, err := s.cancel.Execute(s.ctx, b.ID)
	s.Require().NoError(err)

	_, err = s.reschedule.Execute(s.ctx, RescheduleBookingInput{BookingID: b.ID, Date: "2025-06-03", Time: "10:00"})
	s.True(httperr.IsKind(err, httperr.KindNotFound))
}

func TestConcurrentCreateOneWinner(t *testing.T) {
	repo := infraRepo.NewBookingGormRepository(dbtest.New(t))
	grid := domain.MustGrid(domain.DefaultHours())
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	uc := NewCreateBooking(repo, grid, func() time.Time { return now }, nil, nil)

	const n = 10
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), CreateBookingInput{
				Payload: domain.Payload{Name: "Klant", Email: "klant@example.com"},
				Date:    "2025-06-02",
				Time:    "10:00",
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		assert.True(t, httperr.IsKind(err, httperr.KindSlotConflict), "got %v", err)
	}
	require.Equal(t, 1, winners)
}
