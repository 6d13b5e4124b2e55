package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/garage-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/garage-booking/internal/httperr"
	"github.com/BruksfildServices01/garage-booking/internal/models"
)

type ServiceGormRepository struct {
	db *gorm.DB
}

func NewServiceGormRepository(db *gorm.DB) *ServiceGormRepository {
	return &ServiceGormRepository{db: db}
}

func (r *ServiceGormRepository) ListActive(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, httperr.Storage("list services", err)
	}
	return out, nil
}

func (r *ServiceGormRepository) ListAll(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, httperr.Storage("list all services", err)
	}
	return out, nil
}

func (r *ServiceGormRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("active = ?", true).
		Count(&n).Error; err != nil {
		return 0, httperr.Storage("count services", err)
	}
	return n, nil
}

func (r *ServiceGormRepository) GetActiveByName(ctx context.Context, name string) (*models.Service, error) {
	var s models.Service
	if err := r.db.WithContext(ctx).
		Where("name = ? AND active = ?", strings.TrimSpace(name), true).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("service_not_found")
		}
		return nil, httperr.Storage("get service", err)
	}
	return &s, nil
}

func (r *ServiceGormRepository) Create(ctx context.Context, s *models.Service) error {
	err := r.db.WithContext(ctx).Create(s).Error
	if err != nil {
		if isDuplicateKey(err) {
			return httperr.ErrConflict("service_exists")
		}
		return httperr.Storage("create service", err)
	}
	return nil
}

func (r *ServiceGormRepository) Update(
	ctx context.Context,
	id uint,
	in catalog.ServiceInput,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("service_not_found")
		}
		return nil, httperr.Storage("get service", err)
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

	if err := r.db.WithContext(ctx).Save(&s).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, httperr.ErrConflict("service_exists")
		}
		return nil, httperr.Storage("update service", err)
	}

	return &s, nil
}

func (r *ServiceGormRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Service{}, id)
	if res.Error != nil {
		return httperr.Storage("delete service", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound("service_not_found")
	}
	return nil
}

// SeedDefaults inserts the default catalogue into an empty services table.
func (r *ServiceGormRepository) SeedDefaults(ctx context.Context) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Service{}).Count(&n).Error; err != nil {
		return 0, httperr.Storage("count services", err)
	}
	if n > 0 {
		return 0, nil
	}

	defaults := catalog.Defaults()
	if err := r.db.WithContext(ctx).Create(&defaults).Error; err != nil {
		return 0, httperr.Storage("seed services", err)
	}
	return len(defaults), nil
}

var _ catalog.Repository = (*ServiceGormRepository)(nil)
