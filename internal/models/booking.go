package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:255;not null" json:"name"`
	Email   string `gorm:"size:255;not null;index:idx_bookings_email" json:"email"`
	Phone   string `gorm:"size:20" json:"phone"`
	Service string `gorm:"size:255" json:"service"`
	Message string `gorm:"type:text" json:"message"`

	Date string `gorm:"column:booking_date;size:10;not null;index:idx_bookings_date_time,priority:1" json:"date"`
	Time string `gorm:"column:booking_time;size:5;not null;index:idx_bookings_date_time,priority:2" json:"time"`

	Status string `gorm:"size:20;not null;default:'confirmed';index:idx_bookings_status" json:"status"`

	// "YYYY-MM-DD HH:MM" while the booking is active, NULL once cancelled.
	ActiveSlot *string `gorm:"size:16;uniqueIndex:uq_bookings_active_slot" json:"-"`

	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
