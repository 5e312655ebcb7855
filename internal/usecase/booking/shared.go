package booking

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/daycare-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/pricing"
	"github.com/BruksfildServices01/daycare-scheduler/internal/models"
)

// View is a booking with its priced service lines. GrandTotal is computed
// from current catalog prices and shadows the stored column.
type View struct {
	models.Booking
	Services   []pricing.PricedLine `json:"services"`
	GrandTotal decimal.Decimal      `json:"grandTotal"`
}

func newView(b models.Booking, s pricing.Summary) View {
	if s.Services == nil {
		s.Services = []pricing.PricedLine{}
	}
	return View{Booking: b, Services: s.Services, GrandTotal: s.GrandTotal}
}

// loadOwned resolves booking -> dog -> owner and applies the access policy.
func loadOwned(
	ctx context.Context,
	repo domain.Repository,
	actor access.Actor,
	bookingID uint,
) (*models.Booking, error) {

	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	b, err := repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	dog, err := repo.GetDog(ctx, b.DogID)
	if err != nil {
		return nil, err
	}

	if err := access.Authorize(actor, dog.OwnerID); err != nil {
		return nil, err
	}
	return b, nil
}

// ensureNoConflict must run inside the transaction that writes the booking.
func ensureNoConflict(
	ctx context.Context,
	tx domain.Repository,
	dogID uint,
	w domain.Window,
	excludeID uint,
) error {

	existing, err := tx.ListActiveBookingsForDog(ctx, dogID, w.Date, excludeID)
	if err != nil {
		return err
	}
	if domain.FindConflict(existing, w) != nil {
		return domain.ErrSlotAlreadyBooked()
	}
	return nil
}

// replaceServices swaps the booking's lines for lines and writes back the
// total. The whole id set is checked before anything is removed.
func replaceServices(
	ctx context.Context,
	tx domain.Repository,
	bookingID uint,
	lines []pricing.Line,
) (pricing.Summary, error) {

	if len(lines) > 0 {
		found, err := tx.FindServices(ctx, pricing.IDs(lines))
		if err != nil {
			return pricing.Summary{}, err
		}
		if err := pricing.EnsureAvailable(lines, found); err != nil {
			return pricing.Summary{}, err
		}
	}

	if err := tx.ClearBookingServices(ctx, bookingID); err != nil {
		return pricing.Summary{}, err
	}

	rows := make([]models.BookingService, len(lines))
	for i, l := range lines {
		rows[i] = models.BookingService{
			BookingID: bookingID,
			ServiceID: l.ServiceID,
			Quantity:  l.Quantity,
		}
	}
	if err := tx.AddBookingServices(ctx, rows); err != nil {
		return pricing.Summary{}, err
	}

	return refreshTotal(ctx, tx, bookingID)
}

// refreshTotal reprices current lines and stores the result.
func refreshTotal(
	ctx context.Context,
	tx domain.Repository,
	bookingID uint,
) (pricing.Summary, error) {

	links, err := tx.ListBookingServices(ctx, bookingID)
	if err != nil {
		return pricing.Summary{}, err
	}
	summary := pricing.Summarize(links)
	if err := pricing.CheckTotal(summary); err != nil {
		return pricing.Summary{}, err
	}
	if err := tx.SetGrandTotal(ctx, bookingID, summary.GrandTotal); err != nil {
		return pricing.Summary{}, err
	}
	return summary, nil
}

func summarize(
	ctx context.Context,
	repo domain.Repository,
	bookingID uint,
) (pricing.Summary, error) {

	links, err := repo.ListBookingServices(ctx, bookingID)
	if err != nil {
		return pricing.Summary{}, err
	}
	return pricing.Summarize(links), nil
}
