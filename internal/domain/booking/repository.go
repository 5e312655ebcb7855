package booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/daycare-scheduler/internal/models"
)

// Repository is the persistence surface of the booking lifecycle.
// Implementations report missing rows as httperr NotFound.
type Repository interface {
	// WithTx runs fn against a repository bound to one transaction.
	WithTx(ctx context.Context, fn func(tx Repository) error) error

	// -------- Dog --------
	GetDog(ctx context.Context, id uint) (*models.Dog, error)
	LockDog(ctx context.Context, id uint) (*models.Dog, error)

	// -------- Booking --------
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListBookings(ctx context.Context, ownerID *uint) ([]models.Booking, error)
	ListActiveBookingsForDog(
		ctx context.Context,
		dogID uint,
		date time.Time,
		excludeID uint,
	) ([]models.Booking, error)
	CreateBooking(ctx context.Context, b *models.Booking) error
	SaveBooking(ctx context.Context, b *models.Booking) error
	DeleteBooking(ctx context.Context, id uint) error
	SetGrandTotal(ctx context.Context, bookingID uint, total decimal.Decimal) error

	// -------- Service lines --------
	FindServices(ctx context.Context, ids []uint) ([]models.Service, error)
	ClearBookingServices(ctx context.Context, bookingID uint) error
	AddBookingServices(ctx context.Context, rows []models.BookingService) error
	ListBookingServices(ctx context.Context, bookingIDs ...uint) ([]models.BookingService, error)
}
