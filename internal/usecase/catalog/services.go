package catalog

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/garage-booking/internal/audit"
	domain "github.com/BruksfildServices01/garage-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/garage-booking/internal/httperr"
	"github.com/BruksfildServices01/garage-booking/internal/models"
)

// Services groups the catalogue operations. Reads are public, writes are
// admin only and audited.
type Services struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewServices(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *Services {
	return &Services{
		repo:  repo,
		audit: audit,
	}
}

func (uc *Services) ListActive(ctx context.Context) ([]models.Service, error) {
	return uc.repo.ListActive(ctx)
}

func (uc *Services) Info(ctx context.Context, name string) (*models.Service, error) {
	if strings.TrimSpace(name) == "" {
		return nil, httperr.ErrValidation("invalid_service_name")
	}
	return uc.repo.GetActiveByName(ctx, name)
}

func (uc *Services) Create(
	ctx context.Context,
	actor string,
	in domain.ServiceInput,
) (*models.Service, error) {

	if err := in.Validate(true); err != nil {
		return nil, err
	}

	s := domain.NewService(in)
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}

	uc.dispatch(actor, audit.ActionServiceCreated, s.ID, map[string]string{"name": s.Name})
	return s, nil
}

func (uc *Services) Update(
	ctx context.Context,
	actor string,
	id uint,
	in domain.ServiceInput,
) (*models.Service, error) {

	if err := in.Validate(false); err != nil {
		return nil, err
	}

	s, err := uc.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	uc.dispatch(actor, audit.ActionServiceUpdated, s.ID, map[string]string{"name": s.Name})
	return s, nil
}

func (uc *Services) Delete(
	ctx context.Context,
	actor string,
	id uint,
) error {

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.dispatch(actor, audit.ActionServiceDeleted, id, nil)
	return nil
}

func (uc *Services) dispatch(actor, action string, id uint, meta map[string]string) {
	if uc.audit == nil {
		return
	}
	ev := audit.Event{
		Actor:    actor,
		Action:   action,
		Entity:   "service",
		EntityID: &id,
	}
	if len(meta) > 0 {
		ev.Metadata = meta
	}
	uc.audit.Dispatch(ev)
}
