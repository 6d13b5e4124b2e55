package booking

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/garage-booking/internal/httperr"
)

const DefaultService = "General Service"

// Payload is the customer part of a booking. It plays no role in allocation.
type Payload struct {
	Name    string `json:"name" form:"name" validate:"required,max=255"`
	Email   string `json:"email" form:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone" form:"phone" validate:"omitempty,max=20"`
	Service string `json:"service" form:"service" validate:"omitempty,max=255"`
	Message string `json:"message" form:"message" validate:"omitempty,max=2000"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize trims every field and fills the default service.
func (p Payload) Normalize() Payload {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Service = strings.TrimSpace(p.Service)
	p.Message = strings.TrimSpace(p.Message)
	if p.Service == "" {
		p.Service = DefaultService
	}
	return p
}

// Validate returns a validation error naming the first offending field.
func (p Payload) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return httperr.ErrValidation("invalid_" + strings.ToLower(verrs[0].Field()))
	}
	return httperr.ErrValidation("invalid_request")
}
