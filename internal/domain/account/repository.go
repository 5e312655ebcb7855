package account

import (
	"context"

	"github.com/BruksfildServices01/daycare-scheduler/internal/models"
)

type Repository interface {
	// CreateUser fails with Conflict when the email is taken.
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	SaveUser(ctx context.Context, u *models.User) error
	// DeleteUser cascades to the user's dogs and their bookings.
	DeleteUser(ctx context.Context, id uint) error
}
