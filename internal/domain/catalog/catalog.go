package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/garage-booking/internal/httperr"
	"github.com/BruksfildServices01/garage-booking/internal/models"
)

type Repository interface {
	ListActive(ctx context.Context) ([]models.Service, error)
	CountActive(ctx context.Context) (int64, error)
	GetActiveByName(ctx context.Context, name string) (*models.Service, error)
	Create(ctx context.Context, s *models.Service) error
	Update(ctx context.Context, id uint, in ServiceInput) (*models.Service, error)
	Delete(ctx context.Context, id uint) error
	ListAll(ctx context.Context) ([]models.Service, error)
}

// ServiceInput carries the editable fields of a service. Nil fields are left
// untouched on update.
type ServiceInput struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	DurationMin *int     `json:"duration" validate:"omitempty,min=1,max=1440"`
	Price       *float64 `json:"price" validate:"omitempty,min=0"`
	Active      *bool    `json:"active"`
}

var validate = validator.New()

func (in ServiceInput) Validate(requireName bool) error {
	if requireName && (in.Name == nil || strings.TrimSpace(*in.Name) == "") {
		return httperr.ErrValidation("invalid_name")
	}

	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return httperr.ErrValidation("invalid_" + strings.ToLower(verrs[0].Field()))
	}
	return httperr.ErrValidation("invalid_request")
}

// NewService builds a service from in with the catalogue defaults.
func NewService(in ServiceInput) *models.Service {
	s := &models.Service{
		DurationMin: 60,
		Active:      true,
	}
	if in.Name != nil {
		s.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		s.Description = *in.Description
	}
	if in.DurationMin != nil {
		s.DurationMin = *in.DurationMin
	}
	if in.Price != nil {
		s.Price = *in.Price
	}
	if in.Active != nil {
		s.Active = *in.Active
	}
	return s
}

// Defaults is the catalogue a fresh database starts with.
func Defaults() []models.Service {
	return []models.Service{
		{Name: "APK Keuring", Description: "Volledige APK keuring voor uw voertuig", DurationMin: 60, Price: 35, Active: true},
		{Name: "Onderhoudsbeurt", Description: "Complete onderhoudsbeurt volgens fabrieksspecificaties", DurationMin: 120, Price: 150, Active: true},
		{Name: "Banden Service", Description: "Bandenwissel en uitbalanceren", DurationMin: 45, Price: 25, Active: true},
		{Name: "Airco Service", Description: "Airconditioning service en vulling", DurationMin: 90, Price: 75, Active: true},
		{Name: "Reparaties", Description: "Algemene reparaties aan uw voertuig", DurationMin: 180, Price: 0, Active: true},
		{Name: "Diagnose", Description: "Computerdiagnose van motorproblemen", DurationMin: 30, Price: 45, Active: true},
	}
}
