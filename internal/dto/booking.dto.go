package dto

import (
	"fmt"

	"github.com/BruksfildServices01/garage-booking/internal/domain/booking"
)

// --------- Requests ---------

type BookingIDRequest struct {
	BookingID uint `json:"booking_id" form:"booking_id" binding:"required"`
}

type RescheduleRequest struct {
	BookingID uint   `json:"booking_id" form:"booking_id" binding:"required"`
	Date      string `json:"date" form:"date" binding:"required"`
	Time      string `json:"time" form:"time" binding:"required"`
}

type CreateBookingRequest struct {
	booking.Payload

	Date string `json:"date" form:"date"`
	Time string `json:"time" form:"time"`
}

type ServiceInfoRequest struct {
	ServiceName string `json:"service_name" form:"service_name"`
}

// --------- Availability ---------

type TimeSlotDTO struct {
	Value   string `json:"value"`
	Display string `json:"display"`
}

type TimeSlotStatusDTO struct {
	Value     string `json:"value"`
	Display   string `json:"display"`
	Status    string `json:"status"`
	Available bool   `json:"available"`
	IsBooked  bool   `json:"is_booked"`
	IsPast    bool   `json:"is_past"`
}

type AvailabilityDTO struct {
	Success        bool                `json:"success"`
	Date           string              `json:"date"`
	IsToday        bool                `json:"is_today"`
	AvailableTimes []TimeSlotDTO       `json:"available_times"`
	AllTimes       []TimeSlotStatusDTO `json:"all_times"`
	BookedTimes    []string            `json:"booked_times"`
	TotalSlots     int                 `json:"total_slots"`
	AvailableCount int                 `json:"available_count"`
	Message        string              `json:"message"`
}

func NewAvailabilityDTO(a booking.Availability) AvailabilityDTO {
	out := AvailabilityDTO{
		Success:        true,
		Date:           a.Date,
		IsToday:        a.IsToday,
		AvailableTimes: make([]TimeSlotDTO, 0, len(a.Slots)),
		AllTimes:       make([]TimeSlotStatusDTO, 0, len(a.Slots)),
		BookedTimes:    a.Booked(),
		TotalSlots:     len(a.Slots),
	}

	for _, s := range a.Slots {
		available := s.Status == booking.SlotAvailable

		out.AllTimes = append(out.AllTimes, TimeSlotStatusDTO{
			Value:     s.Value,
			Display:   s.Value,
			Status:    string(s.Status),
			Available: available,
			IsBooked:  s.Status == booking.SlotBooked,
			IsPast:    s.Status == booking.SlotPast,
		})

		if available {
			out.AvailableTimes = append(out.AvailableTimes, TimeSlotDTO{Value: s.Value, Display: s.Value})
		}
	}

	out.AvailableCount = len(out.AvailableTimes)
	if out.AvailableCount > 0 {
		out.Message = fmt.Sprintf("%d beschikbare tijden gevonden", out.AvailableCount)
	} else {
		out.Message = "Geen beschikbare tijden"
	}

	return out
}
