package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/garage-booking/internal/dto"
	"github.com/BruksfildServices01/garage-booking/internal/httperr"
	ucBooking "github.com/BruksfildServices01/garage-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type EmailChecker interface {
	Valid(ctx context.Context, email string) bool
}

type BookingHandler struct {
	availability *ucBooking.GetAvailability
	create       *ucBooking.CreateBooking
	cancel       *ucBooking.CancelBooking
	reschedule   *ucBooking.RescheduleBooking
	get          *ucBooking.GetBooking

	emails EmailChecker
	log    *zap.Logger
}

func NewBookingHandler(
	availability *ucBooking.GetAvailability,
	create *ucBooking.CreateBooking,
	cancel *ucBooking.CancelBooking,
	reschedule *ucBooking.RescheduleBooking,
	get *ucBooking.GetBooking,
	emails EmailChecker,
	log *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		availability: availability,
		create:       create,
		cancel:       cancel,
		reschedule:   reschedule,
		get:          get,
		emails:       emails,
		log:          log,
	}
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *BookingHandler) Availability(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Datum is verplicht.")
		return
	}

	a, err := h.availability.Execute(c.Request.Context(), date)
	if err != nil {
		fail(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAvailabilityDTO(a))
}

// ======================================================
// CREATE
// ======================================================

// Book accepts the site's form post as well as JSON.
func (h *BookingHandler) Book(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Ongeldige gegevens.")
		return
	}

	if req.Date == "" || req.Time == "" {
		httperr.BadRequest(c, "missing_fields", "Verplichte velden ontbreken.")
		return
	}

	if h.emails != nil && req.Email != "" && !h.emails.Valid(c.Request.Context(), strings.TrimSpace(req.Email)) {
		httperr.BadRequest(c, "invalid_email_domain", "Het domein van het e-mailadres lijkt niet geldig.")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		Payload: req.Payload,
		Date:    req.Date,
		Time:    req.Time,
	})
	if err != nil {
		fail(c, h.log, err)
		return
	}

	h.log.Info("booking created",
		zap.Uint("booking_id", b.ID),
		zap.String("date", b.Date),
		zap.String("time", b.Time),
	)

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Afspraak succesvol geboekt! Een bevestigingsmail wordt verzonden.",
		"booking_id": b.ID,
		"booking":    b,
	})
}

// ======================================================
// STATUS
// ======================================================

func (h *BookingHandler) Status(c *gin.Context) {
	var req dto.BookingIDRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "missing_booking_id", "Booking ID is verplicht.")
		return
	}

	b, err := h.get.Execute(c.Request.Context(), req.BookingID)
	if err != nil {
		fail(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"booking": b,
	})
}

// ======================================================
// CANCEL
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	var req dto.BookingIDRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "missing_booking_id", "Booking ID is verplicht.")
		return
	}

	b, err := h.cancel.Execute(c.Request.Context(), req.BookingID)
	if err != nil {
		fail(c, h.log, err)
		return
	}

	h.log.Info("booking cancelled", zap.Uint("booking_id", b.ID))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Afspraak succesvol geannuleerd",
	})
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *BookingHandler) Reschedule(c *gin.Context) {
	var req dto.RescheduleRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "missing_fields", "Booking ID, nieuwe datum en tijd zijn verplicht.")
		return
	}

	b, err := h.reschedule.Execute(c.Request.Context(), ucBooking.RescheduleBookingInput{
		BookingID: req.BookingID,
		Date:      req.Date,
		Time:      req.Time,
	})
	if err != nil {
		fail(c, h.log, err)
		return
	}

	h.log.Info("booking rescheduled",
		zap.Uint("booking_id", b.ID),
		zap.String("date", b.Date),
		zap.String("time", b.Time),
	)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Afspraak succesvol verplaatst",
		"booking_id": b.ID,
		"booking":    b,
	})
}
