package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func TooManyRequests(c *gin.Context, code, message string) {
	Write(c, http.StatusTooManyRequests, code, message)
}

func Unavailable(c *gin.Context, code, message string) {
	Write(c, http.StatusServiceUnavailable, code, message)
}

// StatusFor maps an error kind to the HTTP status the API answers with.
func StatusFor(kind Kind) int {
	switch kind {
	case KindValidation, KindInvalidDate, KindPastDate:
		return http.StatusBadRequest
	case KindSlotConflict, KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

var messages = map[string]string{
	"invalid_request":           "Ongeldige gegevens.",
	"invalid_date":              "Ongeldige datum.",
	"invalid_date_or_time":      "Ongeldige datum of tijd.",
	"past_date":                 "Kan geen afspraken in het verleden maken.",
	"outside_business_hours":    "Ongeldige tijd geselecteerd.",
	"slot_taken":                "Deze tijd is al geboekt. Selecteer een andere tijd.",
	"booking_not_found":         "Afspraak niet gevonden of al geannuleerd.",
	"booking_already_cancelled": "Afspraak niet gevonden of al geannuleerd.",
	"service_not_found":         "Service niet gevonden.",
	"service_exists":            "Service met deze naam bestaat al.",
}

// FromError writes the response for err using its kind and code. Storage and
// unknown failures never leak their message.
func FromError(c *gin.Context, err error) {
	kind := KindOf(err)
	status := StatusFor(kind)

	if status == http.StatusInternalServerError {
		Internal(c, "internal_error", "Er is een fout opgetreden. Probeer het opnieuw.")
		return
	}

	code := CodeOf(err)
	msg, ok := messages[code]
	if !ok {
		msg = code
	}

	// The public API answers not-found and already-cancelled the same way.
	if code == "booking_already_cancelled" {
		code = "booking_not_found"
	}

	Write(c, status, code, msg)
}
