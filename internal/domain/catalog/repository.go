package catalog

import (
	"context"

	"github.com/BruksfildServices01/daycare-scheduler/internal/models"
)

type Repository interface {
	CreateService(ctx context.Context, s *models.Service) error
	GetService(ctx context.Context, id uint) (*models.Service, error)
	ListServices(ctx context.Context, activeOnly bool) ([]models.Service, error)
	SaveService(ctx context.Context, s *models.Service) error
	// DeleteService fails with Conflict while any booking references it.
	DeleteService(ctx context.Context, id uint) error
}
