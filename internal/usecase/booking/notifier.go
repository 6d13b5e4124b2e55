package booking

import "github.com/BruksfildServices01/garage-booking/internal/models"

// Notifier is told about every booking that now holds a slot. It must not
// block the caller.
type Notifier interface {
	BookingConfirmed(b models.Booking, rescheduled bool)
}

type noopNotifier struct{}

func (noopNotifier) BookingConfirmed(models.Booking, bool) {}

func notifierOrNoop(n Notifier) Notifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}

const actorPublic = "public"
