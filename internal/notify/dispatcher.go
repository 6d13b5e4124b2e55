package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/garage-booking/internal/models"
)

type job struct {
	booking     models.Booking
	rescheduled bool
}

// Dispatcher sends booking e-mails off the request path. A failed or skipped
// e-mail never affects the booking itself.
type Dispatcher struct {
	sender     Sender
	garage     string
	adminEmail string
	log        *zap.Logger
	timeout    time.Duration

	queue     chan job
	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(sender Sender, garage, adminEmail string, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		sender:     sender,
		garage:     garage,
		adminEmail: adminEmail,
		log:        log,
		timeout:    time.Minute,
		queue:      make(chan job, 100),
		done:       make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for j := range d.queue {
		d.deliver(j)
	}
}

func (d *Dispatcher) deliver(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	fields := []zap.Field{
		zap.Uint("booking_id", j.booking.ID),
		zap.Bool("rescheduled", j.rescheduled),
	}

	customer, err := CustomerMessage(d.garage, j.booking, j.rescheduled)
	if err != nil {
		d.log.Error("render customer mail", append(fields, zap.Error(err))...)
	} else {
		d.send(ctx, customer, "customer", fields)
	}

	if d.adminEmail == "" {
		return
	}

	admin, err := AdminMessage(d.garage, d.adminEmail, j.booking, j.rescheduled)
	if err != nil {
		d.log.Error("render admin mail", append(fields, zap.Error(err))...)
		return
	}
	d.send(ctx, admin, "admin", fields)
}

func (d *Dispatcher) send(ctx context.Context, m Message, who string, fields []zap.Field) {
	err := d.sender.Send(ctx, m)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotConfigured):
		d.log.Debug("mail skipped, smtp not configured", append(fields, zap.String("recipient", who))...)
	default:
		d.log.Warn("mail failed", append(fields, zap.String("recipient", who), zap.Error(err))...)
	}
}

// BookingConfirmed queues the customer confirmation and the admin notice.
func (d *Dispatcher) BookingConfirmed(b models.Booking, rescheduled bool) {
	select {
	case d.queue <- job{booking: b, rescheduled: rescheduled}:
	default:
		d.log.Warn("mail queue full, dropping booking mail", zap.Uint("booking_id", b.ID))
	}
}

func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	<-d.done
}
