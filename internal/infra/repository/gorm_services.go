package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/daycare-scheduler/internal/models"
)

func (s *GormStore) CreateService(ctx context.Context, svc *models.Service) error {
	return translate(s.db.WithContext(ctx).Create(svc).Error, "service")
}

func (s *GormStore) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var svc models.Service
	if err := s.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, translate(err, "service")
	}
	return &svc, nil
}

func (s *GormStore) ListServices(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	q := s.db.WithContext(ctx).Order("id ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var services []models.Service
	if err := q.Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (s *GormStore) FindServices(ctx context.Context, ids []uint) ([]models.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var services []models.Service
	if err := s.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (s *GormStore) SaveService(ctx context.Context, svc *models.Service) error {
	return translate(s.db.WithContext(ctx).Save(svc).Error, "service")
}

func (s *GormStore) DeleteService(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Service{}, id)
	if res.Error != nil {
		return translate(res.Error, "service")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "service")
	}
	return nil
}
