package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/garage-booking/internal/domain/booking"
	"github.com/BruksfildServices01/garage-booking/internal/httperr"
	"github.com/BruksfildServices01/garage-booking/internal/models"
)

const cancelled = string(domain.StatusCancelled)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// SQLite has no SELECT ... FOR UPDATE; its writers are serialised anyway.
func (r *BookingGormRepository) forUpdate(tx *gorm.DB) *gorm.DB {
	if r.db.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func writeError(op string, err error) error {
	if err == nil {
		return nil
	}
	if httperr.KindOf(err) != httperr.KindUnknown {
		return err
	}
	if isDuplicateKey(err) {
		return httperr.ErrSlotConflict("slot_taken")
	}
	return httperr.Storage(op, err)
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) ListActiveTimes(
	ctx context.Context,
	date string,
) ([]string, error) {

	var times []string
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("booking_date = ? AND status <> ?", date, cancelled).
		Order("booking_time ASC").
		Pluck("booking_time", &times).Error; err != nil {
		return nil, httperr.Storage("list active times", err)
	}

	return times, nil
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.
			Model(&models.Booking{}).
			Where(
				"booking_date = ? AND booking_time = ? AND status <> ?",
				b.Date, b.Time, cancelled,
			).
			Limit(1).
			Pluck("id", &ids).Error; err != nil {
			return err
		}

		if len(ids) > 0 {
			return httperr.ErrSlotConflict("slot_taken")
		}

		// a concurrent insert that passed the same check loses on the unique index
		if domain.Status(b.Status).IsActive() {
			key := domain.SlotKey(b.Date, b.Time)
			b.ActiveSlot = &key
		}

		return tx.Create(b).Error
	})

	return writeError("create booking", err)
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("booking_not_found")
		}
		return nil, httperr.Storage("get booking", err)
	}

	return &b, nil
}

func (r *BookingGormRepository) CancelBooking(
	ctx context.Context,
	id uint,
	now time.Time,
) (*models.Booking, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status <> ?", id, cancelled).
		Updates(map[string]any{
			"status":       cancelled,
			"active_slot":  nil,
			"cancelled_at": now,
		})
	if res.Error != nil {
		return nil, httperr.Storage("cancel booking", res.Error)
	}

	b, err := r.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if res.RowsAffected == 0 {
		return nil, httperr.ErrNotFound("booking_already_cancelled")
	}

	return b, nil
}

func (r *BookingGormRepository) RescheduleBooking(
	ctx context.Context,
	id uint,
	target domain.Target,
) (*models.Booking, error) {

	var b models.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.forUpdate(tx).First(&b, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrNotFound("booking_not_found")
			}
			return err
		}

		if err := domain.CanReschedule(domain.Status(b.Status)); err != nil {
			return err
		}

		var ids []uint
		if err := tx.
			Model(&models.Booking{}).
			Where(
				"booking_date = ? AND booking_time = ? AND status <> ? AND id <> ?",
				target.Date, target.Time, cancelled, b.ID,
			).
			Limit(1).
			Pluck("id", &ids).Error; err != nil {
			return err
		}

		if len(ids) > 0 {
			return httperr.ErrSlotConflict("slot_taken")
		}

		key := target.Key()
		b.Date = target.Date
		b.Time = target.Time
		b.Status = string(domain.StatusConfirmed)
		b.ActiveSlot = &key
		b.CancelledAt = nil

		return tx.Save(&b).Error
	})

	if err != nil {
		return nil, writeError("reschedule booking", err)
	}

	return &b, nil
}

// --------------------------------------------------
// Admin
// --------------------------------------------------

func (r *BookingGormRepository) ListRecentBookings(
	ctx context.Context,
	limit int,
) ([]models.Booking, error) {

	var out []models.Booking
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, httperr.Storage("list recent bookings", err)
	}

	return out, nil
}

func (r *BookingGormRepository) Stats(
	ctx context.Context,
	since time.Time,
) (*domain.Stats, error) {

	var st domain.Stats
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.Booking{}).
		Where("status = ? AND created_at >= ?", string(domain.StatusPending), since).
		Count(&st.NewPendingToday).Error; err != nil {
		return nil, httperr.Storage("count pending bookings", err)
	}

	if err := db.Model(&models.Booking{}).
		Count(&st.TotalBookings).Error; err != nil {
		return nil, httperr.Storage("count bookings", err)
	}

	recent, err := r.ListRecentBookings(ctx, 5)
	if err != nil {
		return nil, err
	}
	st.Recent = recent

	return &st, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
