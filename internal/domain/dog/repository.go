package dog

import (
	"context"

	"github.com/BruksfildServices01/daycare-scheduler/internal/models"
)

type Repository interface {
	CreateDog(ctx context.Context, d *models.Dog) error
	GetDog(ctx context.Context, id uint) (*models.Dog, error)
	// ListDogs returns every dog when ownerID is nil.
	ListDogs(ctx context.Context, ownerID *uint) ([]models.Dog, error)
	SaveDog(ctx context.Context, d *models.Dog) error
	// DeleteDog also removes the dog's bookings and their service lines.
	DeleteDog(ctx context.Context, id uint) error
}
